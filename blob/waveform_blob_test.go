package blob

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavec/errs"
	"github.com/arloliu/wavec/format"
	"github.com/arloliu/wavec/section"
)

var testCaptureTime = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// testWaveforms have exact-zero baselines so every compression mode,
// including the suppressing ones, reconstructs them bit for bit.
func testWaveforms() map[uint64][]int16 {
	return map[uint64][]int16{
		1: {0, 0, 0, 40, 120, 250, 120, 40, 0, 0, 0, 0},
		2: {0, 0, 0, 0, 0, 0, 0, 0},
		3: {-100, -101, -99, -100, -250, -100},
		4: {0, 9, 0, 0, 8, 0, 12, 0, 0, 0, 0, -7, 0},
	}
}

func encodeTestBlob(t *testing.T, opts ...WaveformEncoderOption) WaveformBlob {
	t.Helper()

	encoder, err := NewWaveformEncoder(testCaptureTime, opts...)
	require.NoError(t, err)

	for _, id := range []uint64{1, 2, 3, 4} {
		require.NoError(t, encoder.AddChannel(id, testWaveforms()[id]))
	}

	decoded, err := encoder.Finish()
	require.NoError(t, err)

	return decoded
}

func verifyTestBlob(t *testing.T, decoded WaveformBlob) {
	t.Helper()

	require.True(t, decoded.CaptureTime().Equal(testCaptureTime))
	require.Equal(t, 4, decoded.ChannelCount())
	require.Equal(t, []uint64{1, 2, 3, 4}, decoded.ChannelIDs())

	for id, original := range testWaveforms() {
		require.True(t, decoded.HasChannelID(id))
		require.Equal(t, len(original), decoded.Len(id))

		samples, err := decoded.Samples(id)
		require.NoError(t, err)
		require.Equal(t, original, samples, "channel %d", id)
	}
}

func TestWaveformBlob_RoundTripAllModes(t *testing.T) {
	modes := []format.CompressionType{
		format.CompressionNone,
		format.CompressionHuffman,
		format.CompressionZeroSuppression,
		format.CompressionZeroHuffman,
	}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			decoded := encodeTestBlob(t, WithCompression(mode))
			require.Equal(t, mode, decoded.Compression())
			verifyTestBlob(t, decoded)

			// The serialized bytes decode to the same content.
			reparsed, err := NewWaveformBlob(decoded.Bytes())
			require.NoError(t, err)
			verifyTestBlob(t, reparsed)
		})
	}
}

func TestWaveformBlob_RoundTripAllPayloadCompressions(t *testing.T) {
	payloads := []format.PayloadCompressionType{
		format.PayloadCompressionNone,
		format.PayloadCompressionZstd,
		format.PayloadCompressionS2,
		format.PayloadCompressionLZ4,
	}

	for _, payload := range payloads {
		t.Run(payload.String(), func(t *testing.T) {
			decoded := encodeTestBlob(t,
				WithCompression(format.CompressionZeroHuffman),
				WithPayloadCompression(payload),
			)
			require.Equal(t, payload, decoded.PayloadCompression())
			verifyTestBlob(t, decoded)
		})
	}
}

func TestWaveformBlob_RoundTripBigEndian(t *testing.T) {
	decoded := encodeTestBlob(t,
		WithBigEndian(),
		WithCompression(format.CompressionZeroHuffman),
	)
	verifyTestBlob(t, decoded)
}

func TestWaveformBlob_RoundTripMergedBlocks(t *testing.T) {
	decoded := encodeTestBlob(t,
		WithCompression(format.CompressionZeroHuffman),
		WithZeroThreshold(5),
		WithNeighborDistance(2),
	)

	require.Equal(t, uint16(5), decoded.ZeroThreshold())
	require.Equal(t, int16(2), decoded.NeighborDistance())
	verifyTestBlob(t, decoded)
}

func TestWaveformBlob_HeaderDefaults(t *testing.T) {
	decoded := encodeTestBlob(t)

	require.Equal(t, format.CompressionNone, decoded.Compression())
	require.Equal(t, format.PayloadCompressionNone, decoded.PayloadCompression())
	require.Equal(t, uint16(5), decoded.ZeroThreshold())
	require.Equal(t, section.NeighborDisabled, decoded.NeighborDistance())
}

func TestWaveformBlob_ChannelNames(t *testing.T) {
	encoder, err := NewWaveformEncoder(testCaptureTime,
		WithCompression(format.CompressionZeroHuffman))
	require.NoError(t, err)

	original := []int16{0, 0, 40, 250, 40, 0, 0}
	require.NoError(t, encoder.AddChannelName("plane0.wire42", original))

	decoded, err := encoder.Finish()
	require.NoError(t, err)

	id := ChannelID("plane0.wire42")
	require.True(t, decoded.HasChannelID(id))

	samples, err := decoded.Samples(id)
	require.NoError(t, err)
	require.Equal(t, original, samples)

	require.False(t, decoded.HasChannelID(ChannelID("plane0.wire43")))
}

func TestWaveformBlob_EmptyChannel(t *testing.T) {
	for _, mode := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionHuffman,
		format.CompressionZeroSuppression,
		format.CompressionZeroHuffman,
	} {
		encoder, err := NewWaveformEncoder(testCaptureTime, WithCompression(mode))
		require.NoError(t, err)

		require.NoError(t, encoder.AddChannel(7, nil))
		require.NoError(t, encoder.AddChannel(8, []int16{0, 0, 99, 0}))

		decoded, err := encoder.Finish()
		require.NoError(t, err)

		require.Equal(t, 0, decoded.Len(7))
		samples, err := decoded.Samples(7)
		require.NoError(t, err, "mode %s", mode)
		require.Empty(t, samples)
	}
}

func TestWaveformBlob_AllIterator(t *testing.T) {
	decoded := encodeTestBlob(t, WithCompression(format.CompressionZeroHuffman))

	var collected []int16
	for sample := range decoded.All(1) {
		collected = append(collected, sample)
	}
	require.Equal(t, testWaveforms()[1], collected)

	// Early break is honored.
	count := 0
	for range decoded.All(1) {
		count++
		if count == 3 {
			break
		}
	}
	require.Equal(t, 3, count)

	// A missing channel yields an empty sequence.
	for range decoded.All(0xFFFF) {
		t.Fatal("unexpected sample from missing channel")
	}
}

func TestWaveformBlob_ChannelNotFound(t *testing.T) {
	decoded := encodeTestBlob(t)

	_, err := decoded.Samples(0xFFFF)
	require.ErrorIs(t, err, errs.ErrChannelNotFound)
	require.Equal(t, 0, decoded.Len(0xFFFF))
}

func TestNewWaveformBlob_TooShort(t *testing.T) {
	_, err := NewWaveformBlob(make([]byte, section.HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestNewWaveformBlob_BadMagic(t *testing.T) {
	data := append([]byte(nil), encodeTestBlob(t).Bytes()...)
	data[1] ^= 0xFF

	_, err := NewWaveformBlob(data)
	require.ErrorIs(t, err, errs.ErrInvalidMagicNumber)
}

func TestNewWaveformBlob_TruncatedIndex(t *testing.T) {
	data := encodeTestBlob(t).Bytes()

	_, err := NewWaveformBlob(data[:section.HeaderSize])
	require.ErrorIs(t, err, errs.ErrInvalidPayloadOffset)
}

func TestNewWaveformBlob_ChecksumMismatch(t *testing.T) {
	data := append([]byte(nil), encodeTestBlob(t).Bytes()...)
	data[len(data)-1] ^= 0xFF

	_, err := NewWaveformBlob(data)
	require.ErrorIs(t, err, errs.ErrChecksumMismatch)
}

func TestWaveformEncoder_DuplicateChannel(t *testing.T) {
	encoder, err := NewWaveformEncoder(testCaptureTime)
	require.NoError(t, err)

	require.NoError(t, encoder.AddChannel(1, []int16{0, 99, 0}))

	err = encoder.AddChannel(1, []int16{0, 50, 0})
	require.ErrorIs(t, err, errs.ErrChannelAlreadyAdded)
}

func TestWaveformEncoder_WaveformTooLong(t *testing.T) {
	encoder, err := NewWaveformEncoder(testCaptureTime)
	require.NoError(t, err)

	err = encoder.AddChannel(1, make([]int16, 40000))
	require.ErrorIs(t, err, errs.ErrWaveformTooLong)
}

func TestWaveformEncoder_FinishWithoutChannels(t *testing.T) {
	encoder, err := NewWaveformEncoder(testCaptureTime)
	require.NoError(t, err)

	_, err = encoder.Finish()
	require.ErrorIs(t, err, errs.ErrNoChannelsAdded)
}

func TestWaveformEncoder_SingleUse(t *testing.T) {
	encoder, err := NewWaveformEncoder(testCaptureTime)
	require.NoError(t, err)

	require.NoError(t, encoder.AddChannel(1, []int16{0, 99, 0}))

	_, err = encoder.Finish()
	require.NoError(t, err)

	_, err = encoder.Finish()
	require.Error(t, err)

	require.Error(t, encoder.AddChannel(2, []int16{0, 50, 0}))
}

func TestWaveformEncoder_InvalidOptions(t *testing.T) {
	_, err := NewWaveformEncoder(testCaptureTime, WithCompression(format.CompressionType(0x99)))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)

	_, err = NewWaveformEncoder(testCaptureTime, WithPayloadCompression(format.PayloadCompressionType(0x7F)))
	require.Error(t, err)

	_, err = NewWaveformEncoder(testCaptureTime, WithNeighborDistance(-1))
	require.Error(t, err)

	_, err = NewWaveformEncoder(testCaptureTime, WithNeighborDistance(100000))
	require.Error(t, err)
}

func TestWaveformEncoder_SamplesInputNotModified(t *testing.T) {
	encoder, err := NewWaveformEncoder(testCaptureTime,
		WithCompression(format.CompressionZeroHuffman))
	require.NoError(t, err)

	original := []int16{0, 0, 40, 250, 40, 0, 0}
	samples := append([]int16(nil), original...)

	require.NoError(t, encoder.AddChannel(1, samples))
	require.Equal(t, original, samples)
}
