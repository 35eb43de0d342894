package section

import (
	"time"

	"github.com/arloliu/wavec/errs"
)

// WaveformHeader is the fixed-size header at the start of a waveform blob.
//
// Byte layout (offsets in the serialized form):
//
//	0-3    flag section (options word, compression mode, payload compression)
//	4-11   capture time, unix microseconds
//	12-15  channel count
//	16-19  index section byte offset
//	20-23  payload section byte offset
//	24-25  zero suppression threshold
//	26-27  neighbor distance (NeighborDisabled when merging was off)
//	28-31  CRC32 (IEEE) of the stored payload section
type WaveformHeader struct {
	// CaptureTime is the readout time of the event, unix microseconds.
	CaptureTime int64
	// ChannelCount is the number of channels stored in the blob.
	ChannelCount uint32
	// IndexOffset is the byte offset to the start of the channel index section.
	IndexOffset uint32
	// PayloadOffset is the byte offset to the start of the (possibly
	// compressed) sample payload section.
	PayloadOffset uint32
	// ZeroThreshold is the zero suppression threshold the writer used.
	ZeroThreshold uint16
	// NeighborDistance is the block merge tolerance, or NeighborDisabled.
	NeighborDistance int16
	// PayloadCRC is the CRC32 (IEEE) checksum of the payload section as stored.
	PayloadCRC uint32

	// Flag is the packed option section.
	Flag WaveformFlag
}

// NewWaveformHeader creates a header with the given capture time.
// Channel count, offsets and checksum are filled in when the encoder finishes.
func NewWaveformHeader(captureTime time.Time) *WaveformHeader {
	return &WaveformHeader{
		CaptureTime:      captureTime.UnixMicro(),
		Flag:             NewWaveformFlag(),
		IndexOffset:      IndexOffsetOffset,
		NeighborDistance: NeighborDisabled,
	}
}

// Parse parses the header from a byte slice of exactly HeaderSize bytes
// and validates the flag section.
func (h *WaveformHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The options word is always little-endian; it determines the byte
	// order of everything after it.
	h.Flag.Options = uint16(data[0]) | uint16(data[1])<<8
	h.Flag.CompressionType = data[2]
	h.Flag.PayloadCompression = data[3]

	engine := h.Flag.GetEndianEngine()

	h.CaptureTime = int64(engine.Uint64(data[4:12])) //nolint:gosec
	h.ChannelCount = engine.Uint32(data[12:16])
	h.IndexOffset = engine.Uint32(data[16:20])
	h.PayloadOffset = engine.Uint32(data[20:24])
	h.ZeroThreshold = engine.Uint16(data[24:26])
	h.NeighborDistance = int16(engine.Uint16(data[26:28])) //nolint:gosec
	h.PayloadCRC = engine.Uint32(data[28:32])

	return h.Flag.Validate()
}

// Bytes serializes the header into a fresh HeaderSize-byte slice.
func (h *WaveformHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = h.Flag.CompressionType
	b[3] = h.Flag.PayloadCompression
	engine.PutUint64(b[4:12], uint64(h.CaptureTime)) //nolint:gosec
	engine.PutUint32(b[12:16], h.ChannelCount)
	engine.PutUint32(b[16:20], h.IndexOffset)
	engine.PutUint32(b[20:24], h.PayloadOffset)
	engine.PutUint16(b[24:26], h.ZeroThreshold)
	engine.PutUint16(b[26:28], uint16(h.NeighborDistance)) //nolint:gosec
	engine.PutUint32(b[28:32], h.PayloadCRC)

	return b
}

// CaptureTimeAsTime returns the capture time as a time.Time value.
func (h *WaveformHeader) CaptureTimeAsTime() time.Time {
	return time.UnixMicro(h.CaptureTime).UTC()
}
