// Package section defines the fixed-size sections of the waveform blob
// format: the header, its packed flag word, and the per-channel index
// entries.
package section

// Flag word layout (Options field, always serialized little-endian).
const (
	ReservedMask    = 0x0001 // Mask for reserved bit (bit 0)
	EndiannessMask  = 0x0002 // Mask for endianness bit (bit 1): 0 = little-endian
	ReservedBitMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicWaveformV1 is the version 1 magic number for the waveform blob format.
	MagicWaveformV1 = 0xADC0
)

// Offsets and section sizes in the blob.
const (
	HeaderSize        = 32         // fixed header size in bytes
	IndexEntrySize    = 16         // fixed per-channel index entry size in bytes
	IndexOffsetOffset = HeaderSize // byte offset where the index section starts

	// MaxChannelCount is the maximum number of channels in a single blob.
	MaxChannelCount = 65535

	// NeighborDisabled marks the header's neighbor distance field when the
	// writer used plain zero suppression without block merging.
	NeighborDisabled = int16(-1)
)
