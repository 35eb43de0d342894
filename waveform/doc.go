// Package waveform implements the lossless compression codec for detector
// waveform samples (signed 16-bit ADC sequences).
//
// Two composable techniques are provided:
//
//   - Zero suppression: contiguous "active" blocks relative to a threshold
//     are retained together with their position and length; everything else
//     is dropped and reinflated as zeros on decompression. An optional
//     nearest-neighbor variant merges blocks separated by short gaps and
//     pads block boundaries outward, so a single physical pulse is not
//     fragmented by brief dips below threshold.
//   - Delta bit code: sample-to-sample differences are packed into 16-bit
//     words using a fixed prefix code; differences with magnitude above 3
//     fall back to literal words carrying the full sample value.
//
// The four compression modes compose these techniques:
//
//	format.CompressionNone            pass-through
//	format.CompressionHuffman         delta bit code only
//	format.CompressionZeroSuppression zero suppression only
//	format.CompressionZeroHuffman     zero suppression, then delta bit code
//
// All codecs operate on one complete in-memory waveform at a time and hold
// no shared state. Retained samples are reconstructed bit-exactly; the
// suppressing modes reinflate discarded stretches as zeros, so a waveform
// whose inactive samples are exact zeros round-trips unchanged. Compression
// writes
// into the caller's buffer whenever the encoded form fits; decompression
// fills a caller-provided buffer pre-sized to the original length.
package waveform
