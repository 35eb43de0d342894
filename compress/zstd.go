package compress

// ZstdCompressor provides Zstandard compression for waveform payloads.
//
// Zstd trades compression speed for ratio, which suits archival of readout
// events: payloads are written once and decompressed rarely. The backing
// implementation is selected at build time — valyala/gozstd (cgo) when
// available, klauspost/compress/zstd otherwise — and the two produce
// compatible streams.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
