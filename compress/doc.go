// Package compress provides byte-level compression codecs for serialized
// waveform blob payloads.
//
// Waveform data is compressed in two stages: the waveform codec exploits
// the ADC-specific shape of the data (zero suppression, delta bit code),
// and this package optionally squeezes the serialized payload further with
// a general-purpose algorithm:
//
//   - None: no compression (fastest, largest)
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, moderate ratio
//
// Zstd is backed by valyala/gozstd when cgo is available and by the pure-Go
// klauspost/compress implementation otherwise; the two produce compatible
// streams.
//
// All codecs are stateless and safe for concurrent use; returned slices are
// newly allocated and owned by the caller.
package compress
