package blob

import (
	"fmt"
	"hash/crc32"
	"math"
	"time"

	"github.com/arloliu/wavec/compress"
	"github.com/arloliu/wavec/endian"
	"github.com/arloliu/wavec/errs"
	"github.com/arloliu/wavec/format"
	"github.com/arloliu/wavec/internal/hash"
	"github.com/arloliu/wavec/internal/options"
	"github.com/arloliu/wavec/internal/pool"
	"github.com/arloliu/wavec/section"
	"github.com/arloliu/wavec/waveform"
)

// WaveformEncoderConfig holds the encoder settings applied by options.
type WaveformEncoderConfig struct {
	header *section.WaveformHeader
	engine endian.EndianEngine
}

// WaveformEncoderOption configures NewWaveformEncoder.
type WaveformEncoderOption = options.Option[*WaveformEncoderConfig]

// WithLittleEndian selects little-endian byte order for the blob. This is
// the default.
func WithLittleEndian() WaveformEncoderOption {
	return options.NoError(func(c *WaveformEncoderConfig) {
		c.header.Flag.WithLittleEndian()
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian selects big-endian byte order for the blob.
func WithBigEndian() WaveformEncoderOption {
	return options.NoError(func(c *WaveformEncoderConfig) {
		c.header.Flag.WithBigEndian()
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithCompression selects the waveform compression mode applied to every
// channel added to the blob.
func WithCompression(compression format.CompressionType) WaveformEncoderOption {
	return options.New(func(c *WaveformEncoderConfig) error {
		switch compression {
		case format.CompressionNone, format.CompressionHuffman,
			format.CompressionZeroSuppression, format.CompressionZeroHuffman:
			c.header.Flag.SetCompression(compression)

			return nil
		default:
			return fmt.Errorf("compression #%d: %w", compression, errs.ErrUnknownCompression)
		}
	})
}

// WithZeroThreshold sets the zero suppression threshold recorded in the
// header and used by the suppressing modes.
func WithZeroThreshold(threshold uint16) WaveformEncoderOption {
	return options.NoError(func(c *WaveformEncoderConfig) {
		c.header.ZeroThreshold = threshold
	})
}

// WithNeighborDistance enables nearest-neighbor block merging with the
// given tolerance for the suppressing modes.
func WithNeighborDistance(distance int) WaveformEncoderOption {
	return options.New(func(c *WaveformEncoderConfig) error {
		if distance < 0 || distance > math.MaxInt16 {
			return fmt.Errorf("neighbor distance %d out of range", distance)
		}
		c.header.NeighborDistance = int16(distance)

		return nil
	})
}

// WithPayloadCompression selects the byte-level compression applied to the
// assembled payload section on Finish.
func WithPayloadCompression(compression format.PayloadCompressionType) WaveformEncoderOption {
	return options.New(func(c *WaveformEncoderConfig) error {
		switch compression {
		case format.PayloadCompressionNone, format.PayloadCompressionZstd,
			format.PayloadCompressionS2, format.PayloadCompressionLZ4:
			c.header.Flag.SetPayloadCompression(compression)

			return nil
		default:
			return fmt.Errorf("invalid payload compression: %s", compression)
		}
	})
}

// NewWaveformEncoderConfig creates a config with the defaults: little-endian,
// no waveform compression, no payload compression, the default zero
// suppression threshold, and block merging disabled.
func NewWaveformEncoderConfig(captureTime time.Time) *WaveformEncoderConfig {
	header := section.NewWaveformHeader(captureTime)
	header.ZeroThreshold = waveform.DefaultZeroThreshold

	return &WaveformEncoderConfig{
		header: header,
		engine: endian.GetLittleEndianEngine(),
	}
}

// WaveformEncoder assembles one waveform blob channel by channel.
//
// Channels are compressed as they are added; Finish applies the payload
// compression, fills in the header and returns the decoded view of the
// finished blob. An encoder is single-use and not safe for concurrent use.
type WaveformEncoder struct {
	*WaveformEncoderConfig

	codec        waveform.Codec
	payloadCodec compress.Codec
	entries      []section.WaveformIndexEntry
	seen         map[uint64]struct{}
	payload      *pool.ByteBuffer
}

// NewWaveformEncoder creates an encoder for one readout event.
func NewWaveformEncoder(captureTime time.Time, opts ...WaveformEncoderOption) (*WaveformEncoder, error) {
	config := NewWaveformEncoderConfig(captureTime)
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	codecOpts := []waveform.CodecOption{waveform.WithThreshold(config.header.ZeroThreshold)}
	if config.header.NeighborDistance != section.NeighborDisabled {
		codecOpts = append(codecOpts, waveform.WithNeighborDistance(int(config.header.NeighborDistance)))
	}

	codec, err := waveform.CreateCodec(config.header.Flag.Compression(), codecOpts...)
	if err != nil {
		return nil, err
	}

	payloadCodec, err := compress.CreateCodec(config.header.Flag.PayloadCompressionType(), "payload")
	if err != nil {
		return nil, err
	}

	return &WaveformEncoder{
		WaveformEncoderConfig: config,
		codec:                 codec,
		payloadCodec:          payloadCodec,
		seen:                  make(map[uint64]struct{}),
		payload:               pool.GetBlobBuffer(),
	}, nil
}

// AddChannel compresses one channel's waveform and appends it to the blob
// under the given channel ID. The samples slice is not modified.
func (e *WaveformEncoder) AddChannel(channelID uint64, samples []int16) error {
	if e.payload == nil {
		return fmt.Errorf("encoder already finished")
	}
	if len(e.entries) >= section.MaxChannelCount {
		return fmt.Errorf("%d channels: %w", len(e.entries), errs.ErrChannelCountExceeded)
	}
	if _, dup := e.seen[channelID]; dup {
		return fmt.Errorf("channel %d: %w", channelID, errs.ErrChannelAlreadyAdded)
	}
	if len(samples) > waveform.MaxWaveformLen {
		return fmt.Errorf("channel %d has %d samples: %w", channelID, len(samples), errs.ErrWaveformTooLong)
	}

	// The codec mutates its input, so it runs on a pooled copy.
	scratch, cleanup := pool.GetInt16Slice(len(samples))
	defer cleanup()
	copy(scratch, samples)

	words, err := e.codec.Compress(scratch)
	if err != nil {
		return fmt.Errorf("compress channel %d: %w", channelID, err)
	}

	if e.payload.Len() > math.MaxUint32-2*len(words) {
		return fmt.Errorf("payload exceeds 4GiB: %w", errs.ErrInvalidPayloadOffset)
	}

	entry := section.WaveformIndexEntry{
		ChannelID:   channelID,
		SampleCount: uint32(len(samples)),
		Offset:      uint32(e.payload.Len()),
	}

	e.payload.Grow(2 * len(words))
	buf := e.payload.Bytes()
	for _, word := range words {
		buf = e.engine.AppendUint16(buf, uint16(word)) //nolint:gosec
	}
	e.payload.B = buf

	e.entries = append(e.entries, entry)
	e.seen[channelID] = struct{}{}

	return nil
}

// AddChannelName is AddChannel with the channel ID derived from the name
// by xxHash64. Use ChannelID to compute the same ID on the read side.
func (e *WaveformEncoder) AddChannelName(name string, samples []int16) error {
	return e.AddChannel(hash.ID(name), samples)
}

// ChannelID returns the 64-bit ID AddChannelName derives from a name.
func ChannelID(name string) uint64 {
	return hash.ID(name)
}

// Finish compresses the payload section, completes the header and
// serializes the blob. The returned WaveformBlob is the parsed view of the
// exact bytes a reader would receive.
//
// The encoder cannot be used after Finish.
func (e *WaveformEncoder) Finish() (WaveformBlob, error) {
	if e.payload == nil {
		return WaveformBlob{}, fmt.Errorf("encoder already finished")
	}
	if len(e.entries) == 0 {
		return WaveformBlob{}, errs.ErrNoChannelsAdded
	}

	stored, err := e.payloadCodec.Compress(e.payload.Bytes())
	if err != nil {
		return WaveformBlob{}, fmt.Errorf("compress payload: %w", err)
	}

	count := len(e.entries)
	e.header.ChannelCount = uint32(count)
	e.header.IndexOffset = section.HeaderSize
	e.header.PayloadOffset = uint32(section.HeaderSize + count*section.IndexEntrySize)
	e.header.PayloadCRC = crc32.ChecksumIEEE(stored)

	data := make([]byte, 0, int(e.header.PayloadOffset)+len(stored))
	data = append(data, e.header.Bytes()...)
	for _, entry := range e.entries {
		data = entry.AppendBytes(data, e.engine)
	}
	data = append(data, stored...)

	pool.PutBlobBuffer(e.payload)
	e.payload = nil

	return NewWaveformBlob(data)
}
