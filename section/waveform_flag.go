package section

import (
	"fmt"

	"github.com/arloliu/wavec/endian"
	"github.com/arloliu/wavec/errs"
	"github.com/arloliu/wavec/format"
)

// WaveformFlag is the packed option section at the start of the header:
// a 16-bit flag word carrying the magic number and endianness, followed by
// the waveform compression mode and the payload compression type.
type WaveformFlag struct {
	// Options holds the magic number (bits 4-15) and the endianness bit.
	// It is always serialized little-endian so readers can interpret it
	// before the byte order of the rest of the blob is known.
	Options uint16
	// CompressionType is the waveform compression mode (format.CompressionType).
	CompressionType uint8
	// PayloadCompression is the byte-level payload compression (format.PayloadCompressionType).
	PayloadCompression uint8
}

// NewWaveformFlag creates a flag with the v1 magic number, little-endian
// byte order, no waveform compression and no payload compression.
func NewWaveformFlag() WaveformFlag {
	return WaveformFlag{
		Options:            MagicWaveformV1,
		CompressionType:    uint8(format.CompressionNone),
		PayloadCompression: uint8(format.PayloadCompressionNone),
	}
}

// IsLittleEndian returns true when the blob sections use little-endian byte order.
func (f WaveformFlag) IsLittleEndian() bool {
	return f.Options&EndiannessMask == 0
}

// WithLittleEndian selects little-endian byte order for the blob sections.
func (f *WaveformFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian selects big-endian byte order for the blob sections.
func (f *WaveformFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// GetEndianEngine returns the endian engine matching the endianness bit.
func (f WaveformFlag) GetEndianEngine() endian.EndianEngine {
	if f.IsLittleEndian() {
		return endian.GetLittleEndianEngine()
	}

	return endian.GetBigEndianEngine()
}

// SetCompression records the waveform compression mode.
func (f *WaveformFlag) SetCompression(compression format.CompressionType) {
	f.CompressionType = uint8(compression)
}

// Compression returns the waveform compression mode.
func (f WaveformFlag) Compression() format.CompressionType {
	return format.CompressionType(f.CompressionType)
}

// SetPayloadCompression records the payload compression type.
func (f *WaveformFlag) SetPayloadCompression(compression format.PayloadCompressionType) {
	f.PayloadCompression = uint8(compression)
}

// PayloadCompressionType returns the payload compression type.
func (f WaveformFlag) PayloadCompressionType() format.PayloadCompressionType {
	return format.PayloadCompressionType(f.PayloadCompression)
}

// Validate checks the magic number and both compression fields.
func (f WaveformFlag) Validate() error {
	if f.Options&MagicNumberMask != MagicWaveformV1 {
		return fmt.Errorf("magic 0x%04X: %w", f.Options&MagicNumberMask, errs.ErrInvalidMagicNumber)
	}

	switch format.CompressionType(f.CompressionType) {
	case format.CompressionNone, format.CompressionHuffman,
		format.CompressionZeroSuppression, format.CompressionZeroHuffman:
	default:
		return fmt.Errorf("compression #%d: %w", f.CompressionType, errs.ErrInvalidHeaderFlags)
	}

	switch format.PayloadCompressionType(f.PayloadCompression) {
	case format.PayloadCompressionNone, format.PayloadCompressionZstd,
		format.PayloadCompressionS2, format.PayloadCompressionLZ4:
	default:
		return fmt.Errorf("payload compression #%d: %w", f.PayloadCompression, errs.ErrInvalidHeaderFlags)
	}

	return nil
}
