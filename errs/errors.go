// Package errs defines the sentinel errors returned by wavec packages.
//
// All errors are plain sentinel values so callers can match them with
// errors.Is after call sites wrap them with additional context.
package errs

import "errors"

// Codec errors.
var (
	// ErrUnknownCompression is returned when the decode path receives a
	// compression type it does not support. The encode path deliberately
	// treats unknown types as a pass-through instead.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrCorruptHuffmanWord is returned when a coded word in a delta bit
	// stream has no set bits in its valid range, or contains a zero gap
	// that no difference code produces.
	ErrCorruptHuffmanWord = errors.New("corrupt huffman coded word")

	// ErrInvalidBlockBounds is returned when zero-suppressed block
	// metadata references samples outside the recorded waveform, or the
	// encoding is shorter than its own block table claims.
	ErrInvalidBlockBounds = errors.New("invalid zero suppression block bounds")

	// ErrSizeMismatch is returned when an output buffer does not match
	// the original waveform length recorded in the compressed data.
	ErrSizeMismatch = errors.New("output buffer size mismatch")

	// ErrSampleOutOfRange is returned when a sample cannot be stored as a
	// literal word: mid-stream literals carry the sign in bit 14, so only
	// magnitudes up to 16383 are representable.
	ErrSampleOutOfRange = errors.New("sample magnitude exceeds literal range")

	// ErrWaveformTooLong is returned when a waveform exceeds the maximum
	// length the zero-suppressed encoding can record in a 16-bit word.
	ErrWaveformTooLong = errors.New("waveform exceeds maximum length")
)

// Blob container errors.
var (
	ErrInvalidHeaderSize    = errors.New("invalid header size")
	ErrInvalidMagicNumber   = errors.New("invalid magic number")
	ErrInvalidHeaderFlags   = errors.New("invalid header flags")
	ErrInvalidIndexEntry    = errors.New("invalid index entry")
	ErrInvalidPayloadOffset = errors.New("invalid payload offset")
	ErrChecksumMismatch     = errors.New("payload checksum mismatch")
	ErrChannelAlreadyAdded  = errors.New("channel already added")
	ErrChannelNotFound      = errors.New("channel not found")
	ErrNoChannelsAdded      = errors.New("no channels added")
	ErrChannelCountExceeded = errors.New("channel count exceeded")
)
