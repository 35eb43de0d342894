package format

type (
	CompressionType        uint8
	PayloadCompressionType uint8
)

const (
	// Waveform compression modes. The numeric values are part of the
	// writer/reader contract: they are persisted alongside compressed
	// waveforms and must stay stable across versions.
	CompressionNone            CompressionType = 0 // CompressionNone represents uncompressed waveforms.
	CompressionHuffman         CompressionType = 1 // CompressionHuffman represents the delta bit code only.
	CompressionZeroSuppression CompressionType = 2 // CompressionZeroSuppression represents zero suppression only.
	CompressionZeroHuffman     CompressionType = 3 // CompressionZeroHuffman represents zero suppression followed by the delta bit code.

	// Byte-level payload compression applied to serialized blob payloads.
	PayloadCompressionNone PayloadCompressionType = 0x1 // PayloadCompressionNone represents no payload compression.
	PayloadCompressionZstd PayloadCompressionType = 0x2 // PayloadCompressionZstd represents Zstandard payload compression.
	PayloadCompressionS2   PayloadCompressionType = 0x3 // PayloadCompressionS2 represents S2 payload compression.
	PayloadCompressionLZ4  PayloadCompressionType = 0x4 // PayloadCompressionLZ4 represents LZ4 payload compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionHuffman:
		return "Huffman"
	case CompressionZeroSuppression:
		return "ZeroSuppression"
	case CompressionZeroHuffman:
		return "ZeroHuffman"
	default:
		return "Unknown"
	}
}

func (p PayloadCompressionType) String() string {
	switch p {
	case PayloadCompressionNone:
		return "None"
	case PayloadCompressionZstd:
		return "Zstd"
	case PayloadCompressionS2:
		return "S2"
	case PayloadCompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
