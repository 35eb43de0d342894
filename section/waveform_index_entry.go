package section

import (
	"github.com/arloliu/wavec/endian"
	"github.com/arloliu/wavec/errs"
)

// WaveformIndexEntry is the fixed-size index record for one channel.
//
// Byte layout: channel ID (0-7), original sample count (8-11), byte offset
// of the channel's encoded words within the uncompressed payload (12-15).
// Entries appear in insertion order with non-decreasing offsets; an empty
// channel occupies zero payload bytes.
type WaveformIndexEntry struct {
	// ChannelID identifies the channel: either a caller-assigned ID or
	// the xxHash64 of a channel name.
	ChannelID uint64
	// SampleCount is the original (uncompressed) waveform length.
	SampleCount uint32
	// Offset is the byte offset of the channel's encoded words within the
	// uncompressed payload section.
	Offset uint32
}

// AppendBytes serializes the entry, appending to buf.
func (e WaveformIndexEntry) AppendBytes(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint64(buf, e.ChannelID)
	buf = engine.AppendUint32(buf, e.SampleCount)
	buf = engine.AppendUint32(buf, e.Offset)

	return buf
}

// ParseWaveformIndexEntry parses one entry from a byte slice of exactly
// IndexEntrySize bytes.
func ParseWaveformIndexEntry(data []byte, engine endian.EndianEngine) (WaveformIndexEntry, error) {
	if len(data) != IndexEntrySize {
		return WaveformIndexEntry{}, errs.ErrInvalidIndexEntry
	}

	return WaveformIndexEntry{
		ChannelID:   engine.Uint64(data[0:8]),
		SampleCount: engine.Uint32(data[8:12]),
		Offset:      engine.Uint32(data[12:16]),
	}, nil
}
