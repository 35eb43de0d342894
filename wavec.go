// Package wavec compresses detector waveforms: sequences of signed 16-bit
// ADC samples read out from many channels at once.
//
// Two lossless techniques are provided, separately and combined. Zero
// suppression drops the stretches of a waveform that never rise above a
// noise threshold, keeping only the active blocks with enough metadata to
// reinflate them. The delta bit code packs sample-to-sample differences
// into 16-bit words, spending as little as a single bit on unchanged
// stretches. The four modes in format.CompressionType select between them.
//
// The waveform package exposes the codecs directly for callers that manage
// their own framing. The blob package wraps them in a self-describing
// binary container that holds a whole readout event, with per-channel
// indexing and optional byte-level payload compression. This package
// re-exports the common entry points of both.
package wavec

import (
	"time"

	"github.com/arloliu/wavec/blob"
	"github.com/arloliu/wavec/format"
	"github.com/arloliu/wavec/internal/hash"
	"github.com/arloliu/wavec/waveform"
)

// Compress encodes one waveform in place according to the compression mode.
// Callers must use the returned slice instead of adc afterwards.
//
// See waveform.Compress for the unknown-mode pass-through behavior.
func Compress(adc []int16, compression format.CompressionType, opts ...waveform.CodecOption) ([]int16, error) {
	return waveform.Compress(adc, compression, opts...)
}

// Uncompress reconstructs one waveform into out, which the caller pre-sizes
// to the original waveform length.
func Uncompress(compressed []int16, out []int16, compression format.CompressionType) error {
	return waveform.Uncompress(compressed, out, compression)
}

// ChannelID derives the 64-bit channel ID from a channel name, matching
// what the blob encoder's AddChannelName stores.
func ChannelID(name string) uint64 {
	return hash.ID(name)
}

// NewWaveformEncoder creates a blob encoder for one readout event with the
// given options.
func NewWaveformEncoder(captureTime time.Time, opts ...blob.WaveformEncoderOption) (*blob.WaveformEncoder, error) {
	return blob.NewWaveformEncoder(captureTime, opts...)
}

// NewDefaultWaveformEncoder creates a blob encoder with the recommended
// settings for detector readout: combined zero suppression and delta coding
// for the waveforms, and Zstd compression of the assembled payload.
func NewDefaultWaveformEncoder(captureTime time.Time) (*blob.WaveformEncoder, error) {
	return blob.NewWaveformEncoder(captureTime,
		blob.WithCompression(format.CompressionZeroHuffman),
		blob.WithPayloadCompression(format.PayloadCompressionZstd),
	)
}

// DecodeWaveformBlob parses and validates a serialized waveform blob.
func DecodeWaveformBlob(data []byte) (blob.WaveformBlob, error) {
	return blob.NewWaveformBlob(data)
}
