package compress

import (
	"fmt"

	"github.com/arloliu/wavec/format"
)

// Compressor compresses a serialized waveform payload.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// The input slice is not modified; the returned slice is newly
	// allocated and owned by the caller (the no-op codec returns the
	// input as-is).
	Compress(data []byte) ([]byte, error)
}

// Decompressor is the inverse of Compressor.
//
// The interfaces are split because compression and decompression may have
// asymmetric implementations and resource requirements.
type Decompressor interface {
	// Decompress decompresses data previously produced by the matching
	// Compress. Corrupted or incompatible input is reported as an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec is a factory function that creates a Codec for the specified
// payload compression type.
//
// The target parameter names the usage in error messages.
func CreateCodec(compressionType format.PayloadCompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.PayloadCompressionNone:
		return NewNoOpCompressor(), nil
	case format.PayloadCompressionZstd:
		return NewZstdCompressor(), nil
	case format.PayloadCompressionS2:
		return NewS2Compressor(), nil
	case format.PayloadCompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.PayloadCompressionType]Codec{
	format.PayloadCompressionNone: NewNoOpCompressor(),
	format.PayloadCompressionZstd: NewZstdCompressor(),
	format.PayloadCompressionS2:   NewS2Compressor(),
	format.PayloadCompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified payload compression type.
func GetCodec(compressionType format.PayloadCompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported payload compression type: %s", compressionType)
}
