package blob

import (
	"fmt"
	"hash/crc32"
	"iter"
	"time"

	"github.com/arloliu/wavec/compress"
	"github.com/arloliu/wavec/endian"
	"github.com/arloliu/wavec/errs"
	"github.com/arloliu/wavec/format"
	"github.com/arloliu/wavec/internal/pool"
	"github.com/arloliu/wavec/section"
	"github.com/arloliu/wavec/waveform"
)

// WaveformBlob is a decoded, read-only view over one serialized blob.
//
// Construction validates the header, the channel index and the payload
// checksum, and decompresses the payload once; per-channel access then
// only runs the waveform codec. The zero value is not usable.
type WaveformBlob struct {
	data    []byte
	payload []byte
	engine  endian.EndianEngine
	header  section.WaveformHeader
	entries []section.WaveformIndexEntry
	index   map[uint64]int
}

// NewWaveformBlob parses and validates a serialized waveform blob.
//
// The blob keeps a reference to data; callers must not mutate it while
// the blob is in use.
func NewWaveformBlob(data []byte) (WaveformBlob, error) {
	if len(data) < section.HeaderSize {
		return WaveformBlob{}, fmt.Errorf("blob has %d bytes: %w", len(data), errs.ErrInvalidHeaderSize)
	}

	blob := WaveformBlob{data: data}
	if err := blob.header.Parse(data[:section.HeaderSize]); err != nil {
		return WaveformBlob{}, err
	}

	blob.engine = blob.header.Flag.GetEndianEngine()

	if err := blob.parseIndex(); err != nil {
		return WaveformBlob{}, err
	}

	if err := blob.decodePayload(); err != nil {
		return WaveformBlob{}, err
	}

	if err := blob.validateOffsets(); err != nil {
		return WaveformBlob{}, err
	}

	return blob, nil
}

func (b *WaveformBlob) parseIndex() error {
	count := int(b.header.ChannelCount)
	if count == 0 {
		return errs.ErrNoChannelsAdded
	}
	if count > section.MaxChannelCount {
		return fmt.Errorf("%d channels: %w", count, errs.ErrChannelCountExceeded)
	}

	if int(b.header.IndexOffset) != section.HeaderSize {
		return fmt.Errorf("index offset %d: %w", b.header.IndexOffset, errs.ErrInvalidIndexEntry)
	}

	indexEnd := section.HeaderSize + count*section.IndexEntrySize
	if int(b.header.PayloadOffset) != indexEnd || indexEnd > len(b.data) {
		return fmt.Errorf("payload offset %d with %d channels: %w",
			b.header.PayloadOffset, count, errs.ErrInvalidPayloadOffset)
	}

	b.entries = make([]section.WaveformIndexEntry, count)
	b.index = make(map[uint64]int, count)

	pos := section.HeaderSize
	for i := range count {
		entry, err := section.ParseWaveformIndexEntry(b.data[pos:pos+section.IndexEntrySize], b.engine)
		if err != nil {
			return err
		}

		if _, dup := b.index[entry.ChannelID]; dup {
			return fmt.Errorf("channel %d appears twice: %w", entry.ChannelID, errs.ErrInvalidIndexEntry)
		}

		b.entries[i] = entry
		b.index[entry.ChannelID] = i
		pos += section.IndexEntrySize
	}

	return nil
}

func (b *WaveformBlob) decodePayload() error {
	stored := b.data[b.header.PayloadOffset:]
	if crc32.ChecksumIEEE(stored) != b.header.PayloadCRC {
		return errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(b.header.Flag.PayloadCompressionType())
	if err != nil {
		return err
	}

	b.payload, err = codec.Decompress(stored)
	if err != nil {
		return fmt.Errorf("decompress payload: %w", err)
	}

	return nil
}

// validateOffsets checks that every index entry points inside the
// decompressed payload, at an even byte boundary, in non-decreasing
// order (an empty channel yields a zero-length word range).
func (b *WaveformBlob) validateOffsets() error {
	prev := uint32(0)
	for _, entry := range b.entries {
		if int(entry.Offset) > len(b.payload) || entry.Offset%2 != 0 || entry.Offset < prev {
			return fmt.Errorf("channel %d at byte %d: %w",
				entry.ChannelID, entry.Offset, errs.ErrInvalidPayloadOffset)
		}
		prev = entry.Offset
	}

	if len(b.payload)%2 != 0 {
		return fmt.Errorf("payload holds %d bytes: %w", len(b.payload), errs.ErrInvalidPayloadOffset)
	}

	return nil
}

// Bytes returns the raw serialized blob.
func (b WaveformBlob) Bytes() []byte {
	return b.data
}

// CaptureTime returns the readout time recorded in the header.
func (b WaveformBlob) CaptureTime() time.Time {
	return b.header.CaptureTimeAsTime()
}

// Compression returns the waveform compression mode of the blob.
func (b WaveformBlob) Compression() format.CompressionType {
	return b.header.Flag.Compression()
}

// PayloadCompression returns the byte-level payload compression type.
func (b WaveformBlob) PayloadCompression() format.PayloadCompressionType {
	return b.header.Flag.PayloadCompressionType()
}

// ZeroThreshold returns the zero suppression threshold the writer used.
func (b WaveformBlob) ZeroThreshold() uint16 {
	return b.header.ZeroThreshold
}

// NeighborDistance returns the block merge tolerance the writer used,
// or section.NeighborDisabled when merging was off.
func (b WaveformBlob) NeighborDistance() int16 {
	return b.header.NeighborDistance
}

// ChannelCount returns the number of channels stored in the blob.
func (b WaveformBlob) ChannelCount() int {
	return len(b.entries)
}

// ChannelIDs returns the channel IDs in insertion order.
func (b WaveformBlob) ChannelIDs() []uint64 {
	ids := make([]uint64, len(b.entries))
	for i, entry := range b.entries {
		ids[i] = entry.ChannelID
	}

	return ids
}

// HasChannelID reports whether the blob contains the given channel.
func (b WaveformBlob) HasChannelID(channelID uint64) bool {
	_, ok := b.index[channelID]
	return ok
}

// Len returns the original sample count of the given channel, or 0 when
// the channel is not present.
func (b WaveformBlob) Len(channelID uint64) int {
	pos, ok := b.index[channelID]
	if !ok {
		return 0
	}

	return int(b.entries[pos].SampleCount)
}

// Samples reconstructs the original waveform of the given channel into a
// freshly allocated slice.
func (b WaveformBlob) Samples(channelID uint64) ([]int16, error) {
	pos, ok := b.index[channelID]
	if !ok {
		return nil, fmt.Errorf("channel %d: %w", channelID, errs.ErrChannelNotFound)
	}

	entry := b.entries[pos]
	end := len(b.payload)
	if pos+1 < len(b.entries) {
		end = int(b.entries[pos+1].Offset)
	}

	raw := b.payload[entry.Offset:end]

	words, cleanup := pool.GetInt16Slice(len(raw) / 2)
	defer cleanup()

	for i := range words {
		words[i] = int16(b.engine.Uint16(raw[2*i:])) //nolint:gosec
	}

	out := make([]int16, entry.SampleCount)
	if err := waveform.Uncompress(words, out, b.Compression()); err != nil {
		return nil, fmt.Errorf("channel %d: %w", channelID, err)
	}

	return out, nil
}

// All returns an iterator over the channel's original samples.
//
// A missing channel or a decode failure yields an empty sequence; use
// Samples when the error matters.
func (b WaveformBlob) All(channelID uint64) iter.Seq[int16] {
	return func(yield func(int16) bool) {
		samples, err := b.Samples(channelID)
		if err != nil {
			return
		}

		for _, sample := range samples {
			if !yield(sample) {
				return
			}
		}
	}
}
