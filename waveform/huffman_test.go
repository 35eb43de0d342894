package waveform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/wavec/errs"
)

// huffmanRoundTrip encodes a copy of original and decodes it back,
// asserting the reconstruction and the scanned length both match.
func huffmanRoundTrip(t *testing.T, original []int16) {
	t.Helper()

	encoded, err := HuffmanEncode(append([]int16(nil), original...))
	require.NoError(t, err)
	require.LessOrEqual(t, len(encoded), max(len(original), 1))

	size, err := HuffmanDecodedLen(encoded)
	require.NoError(t, err)
	require.Equal(t, len(original), size)

	out := make([]int16, len(original))
	require.NoError(t, HuffmanDecode(encoded, out))
	require.Equal(t, original, out)
}

func TestHuffmanEncode_ShortInputsUnchanged(t *testing.T) {
	empty, err := HuffmanEncode([]int16{})
	require.NoError(t, err)
	require.Empty(t, empty)

	single, err := HuffmanEncode([]int16{-12345})
	require.NoError(t, err)
	require.Equal(t, []int16{-12345}, single)
}

func TestHuffmanEncode_RunOfFour(t *testing.T) {
	encoded, err := HuffmanEncode([]int16{7, 7, 7, 7, 7})
	require.NoError(t, err)

	// First word is the raw sample; the four unchanged samples collapse
	// into a single run-of-4 bit at position 14.
	require.Equal(t, []int16{7, int16(-16384)}, encoded) // 0xC000
}

func TestHuffmanEncode_UnitSteps(t *testing.T) {
	encoded, err := HuffmanEncode([]int16{0, 1, 2, 3, 4})
	require.NoError(t, err)

	// Four +1 codes, three bits each, packed from bit 14 downward.
	require.Equal(t, []int16{0, int16(-28088)}, encoded) // 0x9248
}

func TestHuffmanEncode_LiteralFallback(t *testing.T) {
	encoded, err := HuffmanEncode([]int16{0, 10})
	require.NoError(t, err)
	require.Equal(t, []int16{0, 10}, encoded)

	encoded, err = HuffmanEncode([]int16{0, -10})
	require.NoError(t, err)
	require.Equal(t, []int16{0, 16394}, encoded) // 0x400A: sign flag + magnitude
}

func TestHuffmanEncode_FlushBeforeLiteral(t *testing.T) {
	encoded, err := HuffmanEncode([]int16{0, 1, 10})
	require.NoError(t, err)

	// The +1 code flushes as its own word before the literal.
	require.Equal(t, []int16{0, int16(-28672), 10}, encoded) // 0x9000
}

func TestHuffmanEncode_WordUnderflowFlushes(t *testing.T) {
	encoded, err := HuffmanEncode([]int16{0, -3, -6, -9})
	require.NoError(t, err)

	// A -3 code is 8 bits wide, so only one fits per word.
	word := int16(-32640) // 0x8080
	require.Equal(t, []int16{0, word, word, word}, encoded)
}

func TestHuffmanEncode_LiteralOutOfRange(t *testing.T) {
	_, err := HuffmanEncode([]int16{0, 20000})
	require.ErrorIs(t, err, errs.ErrSampleOutOfRange)

	_, err = HuffmanEncode([]int16{0, -20000})
	require.ErrorIs(t, err, errs.ErrSampleOutOfRange)
}

func TestHuffmanEncode_FirstSampleUnrestricted(t *testing.T) {
	// The first word is stored verbatim, so it may exceed the literal range.
	huffmanRoundTrip(t, []int16{-32768, -32768, -32768})
}

func TestHuffmanDecode_EmptyStream(t *testing.T) {
	require.NoError(t, HuffmanDecode(nil, nil))

	err := HuffmanDecode(nil, make([]int16, 3))
	require.ErrorIs(t, err, errs.ErrSizeMismatch)
}

func TestHuffmanDecode_CorruptEmptyCodedWord(t *testing.T) {
	stream := []int16{5, int16(-32768)} // 0x8000: coded flag, no code bits

	err := HuffmanDecode(stream, make([]int16, 3))
	require.ErrorIs(t, err, errs.ErrCorruptHuffmanWord)

	_, err = HuffmanDecodedLen(stream)
	require.ErrorIs(t, err, errs.ErrCorruptHuffmanWord)
}

func TestHuffmanDecode_StopsWhenOutputFull(t *testing.T) {
	encoded, err := HuffmanEncode([]int16{7, 7, 7, 7, 7})
	require.NoError(t, err)

	// The run-of-4 code overshoots a 3-sample output; decoding stops
	// cleanly at the buffer boundary.
	out := make([]int16, 3)
	require.NoError(t, HuffmanDecode(encoded, out))
	require.Equal(t, []int16{7, 7, 7}, out)
}

func TestHuffman_RoundTrip(t *testing.T) {
	waveforms := map[string][]int16{
		"constant":      {42, 42, 42, 42, 42, 42, 42, 42, 42},
		"ramp up":       {0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
		"ramp down":     {9, 8, 7, 6, 5, 4, 3, 2, 1, 0},
		"small steps":   {100, 102, 99, 101, 100, 103, 100, 98, 100},
		"literals":      {0, 100, -100, 1000, -1000, 16383, -16383},
		"mixed":         {500, 500, 500, 500, 501, 503, 500, 1200, 1201, 1201, 1201, 1201, 600},
		"pulse":         {0, 0, 0, 0, 5, 40, 120, 250, 120, 40, 5, 0, 0, 0, 0},
		"two samples":   {-7, -7},
		"long plateaus": {3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 10, 10, 10, 10, 10, 10, 10, 10},
	}

	for name, original := range waveforms {
		t.Run(name, func(t *testing.T) {
			huffmanRoundTrip(t, original)
		})
	}
}

func TestHuffmanDecodedLen_MatchesDecode(t *testing.T) {
	encoded, err := HuffmanEncode([]int16{0, 0, 0, 0, 0, 1, 2, 2, 2, 2, 50, 50, 47})
	require.NoError(t, err)

	size, err := HuffmanDecodedLen(encoded)
	require.NoError(t, err)
	require.Equal(t, 13, size)
}
