package waveform

import (
	"fmt"
	"math"

	"github.com/arloliu/wavec/errs"
	"github.com/arloliu/wavec/format"
	"github.com/arloliu/wavec/internal/options"
	"github.com/arloliu/wavec/internal/pool"
)

const (
	// DefaultZeroThreshold is the zero suppression threshold used when
	// the caller does not configure one, matching the detector readout's
	// historical default.
	DefaultZeroThreshold uint16 = 5

	// MaxWaveformLen is the longest waveform the zero-suppressed encoding
	// can describe: the original length is stored in a single 16-bit word.
	MaxWaveformLen = math.MaxInt16
)

// Compressor compresses one complete in-memory waveform.
type Compressor interface {
	// Compress encodes the waveform and returns the encoded words.
	//
	// The input is mutated: the encoded form is written into the
	// waveform's backing array whenever it fits, and the returned slice
	// must be used in place of the input either way.
	Compress(adc []int16) ([]int16, error)
}

// Decompressor reconstructs a waveform from its encoded words.
type Decompressor interface {
	// Decompress fills out with the exact original samples.
	//
	// The output buffer must be pre-sized to the original waveform
	// length; the codec neither allocates nor reshapes it. The input is
	// not modified, and input and output must not alias.
	Decompress(compressed []int16, out []int16) error
}

// Codec combines both directions of one compression mode.
//
// Codecs hold no per-call state; a single instance may be used from
// multiple goroutines on separate waveforms.
type Codec interface {
	Compressor
	Decompressor
}

// codecConfig carries the zero suppression parameters for CreateCodec.
type codecConfig struct {
	threshold   uint16
	neighbor    int
	hasNeighbor bool
}

// CodecOption configures CreateCodec.
type CodecOption = options.Option[*codecConfig]

// WithThreshold sets the zero suppression threshold: a sample is active
// when its magnitude strictly exceeds the threshold.
func WithThreshold(threshold uint16) CodecOption {
	return options.NoError(func(c *codecConfig) {
		c.threshold = threshold
	})
}

// WithNeighborDistance enables nearest-neighbor block merging with the
// given tolerance: active regions separated by a gap no larger than the
// distance are merged, and block boundaries are padded outward by it.
func WithNeighborDistance(distance int) CodecOption {
	return options.New(func(c *codecConfig) error {
		if distance < 0 {
			return fmt.Errorf("negative neighbor distance %d", distance)
		}
		c.neighbor = distance
		c.hasNeighbor = true

		return nil
	})
}

// NoOpCodec passes waveforms through unchanged in both directions.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a pass-through codec for format.CompressionNone.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns the waveform unchanged.
func (NoOpCodec) Compress(adc []int16) ([]int16, error) {
	return adc, nil
}

// Decompress copies the stored samples element-wise into out. The output
// buffer must match the stored length exactly.
func (NoOpCodec) Decompress(compressed []int16, out []int16) error {
	if len(out) != len(compressed) {
		return fmt.Errorf("output buffer holds %d samples, waveform has %d: %w",
			len(out), len(compressed), errs.ErrSizeMismatch)
	}
	copy(out, compressed)

	return nil
}

// HuffmanCodec applies the delta bit code without zero suppression.
type HuffmanCodec struct{}

var _ Codec = HuffmanCodec{}

// NewHuffmanCodec creates a codec for format.CompressionHuffman.
func NewHuffmanCodec() HuffmanCodec {
	return HuffmanCodec{}
}

// Compress encodes the waveform with the delta bit code.
func (HuffmanCodec) Compress(adc []int16) ([]int16, error) {
	return HuffmanEncode(adc)
}

// Decompress decodes a delta bit code stream into out.
func (HuffmanCodec) Decompress(compressed []int16, out []int16) error {
	return HuffmanDecode(compressed, out)
}

// ZeroSuppressCodec applies zero suppression, optionally with
// nearest-neighbor block merging.
type ZeroSuppressCodec struct {
	threshold   uint16
	neighbor    int
	hasNeighbor bool
}

var _ Codec = ZeroSuppressCodec{}

// NewZeroSuppressCodec creates a codec for format.CompressionZeroSuppression
// without block merging.
func NewZeroSuppressCodec(threshold uint16) ZeroSuppressCodec {
	return ZeroSuppressCodec{threshold: threshold}
}

// NewZeroSuppressNearestCodec creates a zero suppression codec that merges
// blocks within the given neighbor distance.
func NewZeroSuppressNearestCodec(threshold uint16, neighbor int) ZeroSuppressCodec {
	return ZeroSuppressCodec{threshold: threshold, neighbor: neighbor, hasNeighbor: true}
}

// Compress zero-suppresses the waveform.
func (c ZeroSuppressCodec) Compress(adc []int16) ([]int16, error) {
	if len(adc) > MaxWaveformLen {
		return nil, fmt.Errorf("%d samples: %w", len(adc), errs.ErrWaveformTooLong)
	}

	if c.hasNeighbor {
		return ZeroSuppressNearest(adc, c.threshold, c.neighbor), nil
	}

	return ZeroSuppress(adc, c.threshold), nil
}

// Decompress reinflates a zero-suppressed waveform. The encoding is
// self-describing, so the suppression parameters are not needed here.
func (ZeroSuppressCodec) Decompress(compressed []int16, out []int16) error {
	return ZeroUnsuppress(compressed, out)
}

// ZeroHuffmanCodec composes zero suppression with the delta bit code.
type ZeroHuffmanCodec struct {
	zs ZeroSuppressCodec
}

var _ Codec = ZeroHuffmanCodec{}

// NewZeroHuffmanCodec creates a codec for format.CompressionZeroHuffman
// without block merging.
func NewZeroHuffmanCodec(threshold uint16) ZeroHuffmanCodec {
	return ZeroHuffmanCodec{zs: NewZeroSuppressCodec(threshold)}
}

// NewZeroHuffmanNearestCodec creates a ZeroHuffman codec that merges blocks
// within the given neighbor distance during suppression.
func NewZeroHuffmanNearestCodec(threshold uint16, neighbor int) ZeroHuffmanCodec {
	return ZeroHuffmanCodec{zs: NewZeroSuppressNearestCodec(threshold, neighbor)}
}

// Compress zero-suppresses the waveform, then encodes the suppressed words
// with the delta bit code.
func (c ZeroHuffmanCodec) Compress(adc []int16) ([]int16, error) {
	suppressed, err := c.zs.Compress(adc)
	if err != nil {
		return nil, err
	}

	return HuffmanEncode(suppressed)
}

// Decompress decodes the delta bit code into the zero-suppressed words,
// then reinflates them into out.
//
// The suppressed stream length is not recorded anywhere, so it is derived
// from the bitstream itself before decoding.
func (ZeroHuffmanCodec) Decompress(compressed []int16, out []int16) error {
	size, err := HuffmanDecodedLen(compressed)
	if err != nil {
		return err
	}

	scratch, cleanup := pool.GetInt16Slice(size)
	defer cleanup()

	if err := HuffmanDecode(compressed, scratch); err != nil {
		return err
	}

	return ZeroUnsuppress(scratch, out)
}

// CreateCodec is a factory that creates a Codec for the given compression
// mode with explicit zero suppression parameters.
//
// Modes that do not suppress ignore the options. An unknown mode is an
// error here; the silent pass-through fallback applies only to the
// top-level Compress dispatch.
func CreateCodec(compression format.CompressionType, opts ...CodecOption) (Codec, error) {
	cfg := codecConfig{threshold: DefaultZeroThreshold}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	switch compression {
	case format.CompressionNone:
		return NewNoOpCodec(), nil
	case format.CompressionHuffman:
		return NewHuffmanCodec(), nil
	case format.CompressionZeroSuppression:
		if cfg.hasNeighbor {
			return NewZeroSuppressNearestCodec(cfg.threshold, cfg.neighbor), nil
		}

		return NewZeroSuppressCodec(cfg.threshold), nil
	case format.CompressionZeroHuffman:
		if cfg.hasNeighbor {
			return NewZeroHuffmanNearestCodec(cfg.threshold, cfg.neighbor), nil
		}

		return NewZeroHuffmanCodec(cfg.threshold), nil
	default:
		return nil, fmt.Errorf("compression #%d: %w", compression, errs.ErrUnknownCompression)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone:            NewNoOpCodec(),
	format.CompressionHuffman:         NewHuffmanCodec(),
	format.CompressionZeroSuppression: NewZeroSuppressCodec(DefaultZeroThreshold),
	format.CompressionZeroHuffman:     NewZeroHuffmanCodec(DefaultZeroThreshold),
}

// GetCodec retrieves a built-in Codec with default suppression parameters.
func GetCodec(compression format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compression]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compression #%d: %w", compression, errs.ErrUnknownCompression)
}

// Compress encodes one waveform according to the compression mode,
// overwriting the input's backing array where the encoded form fits.
// Callers must use the returned slice in place of the input.
//
// An unrecognized mode falls back to identity without error. This matches
// the historical writer behavior: data compressed by an unknown writer
// stays readable as long as the mode value itself was persisted.
func Compress(adc []int16, compression format.CompressionType, opts ...CodecOption) ([]int16, error) {
	switch compression {
	case format.CompressionNone,
		format.CompressionHuffman,
		format.CompressionZeroSuppression,
		format.CompressionZeroHuffman:
		codec, err := CreateCodec(compression, opts...)
		if err != nil {
			return nil, err
		}

		return codec.Compress(adc)
	default:
		return adc, nil
	}
}

// Uncompress reconstructs one waveform into out, which the caller pre-sizes
// to the known original length. Unlike Compress, an unknown mode is a hard
// error: the decode path must never guess.
func Uncompress(compressed []int16, out []int16, compression format.CompressionType) error {
	codec, err := GetCodec(compression)
	if err != nil {
		return err
	}

	return codec.Decompress(compressed, out)
}
