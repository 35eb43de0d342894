package waveform

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/wavec/errs"
	"github.com/arloliu/wavec/internal/pool"
)

// The delta bit code packs sample-to-sample differences into 16-bit words.
// Bit 15 distinguishes coded words (set) from literal words (clear); coded
// words carry fixed-width difference codes packed from bit 14 downward,
// each code a single set bit at the bottom of its width slot:
//
//	no change for 4 samples  1
//	no change for 1 sample   01
//	+1 change                001
//	-1 change                0001
//	+2 change                00001
//	-2 change                000001
//	+3 change                0000001
//	-3 change                00000001
//
// Differences with magnitude above 3 flush the in-progress coded word and
// emit the full sample value as a literal word instead, with bit 14 flagging
// values that must be negated on decode. Unused low-order bits of a coded
// word stay zero. The first word of a stream is always the first raw sample
// value, never coded.
const (
	codedFlag = 0x8000 // bit 15: word holds packed difference codes
	signFlag  = 0x4000 // bit 14: literal value is negated on decode

	// MaxLiteral is the largest sample magnitude a literal word can carry;
	// bit 14 is reserved for the sign flag.
	MaxLiteral = 0x3FFF
)

// HuffmanEncode compresses a waveform with the delta bit code, writing the
// result into the backing array of adc and returning the shortened slice.
// The encoded form never exceeds the input length.
//
// Waveforms of fewer than two samples are returned unchanged. The first
// sample is stored verbatim and may take any int16 value; every later
// sample that needs a literal word must have magnitude at most MaxLiteral,
// otherwise errs.ErrSampleOutOfRange is returned.
func HuffmanEncode(adc []int16) ([]int16, error) {
	if len(adc) < 2 {
		return adc, nil
	}

	samples, sampleCleanup := pool.GetInt16Slice(len(adc))
	defer sampleCleanup()
	copy(samples, adc)

	diffs, diffCleanup := pool.GetInt16Slice(len(adc))
	defer diffCleanup()
	diffs[0] = 0
	for i := 1; i < len(samples); i++ {
		diffs[i] = samples[i] - samples[i-1]
	}

	out := adc
	cur := 1 // out[0] keeps the first raw sample value

	acc := uint16(codedFlag)
	curb := 15 // next free bit position, moving downward

	// appendCode places a single set bit at the bottom of a width-bit
	// slot, flushing the accumulator first when the slot would underflow
	// below bit 0.
	appendCode := func(width int) {
		if curb >= width {
			curb -= width
			acc |= 1 << curb

			return
		}

		out[cur] = int16(acc)
		cur++
		curb = 15 - width
		acc = codedFlag | 1<<curb
	}

	for i := 1; i < len(samples); i++ {
		diff := int(diffs[i])

		if diff > 3 || diff < -3 {
			// Flush the in-progress coded word unless it is empty.
			if curb != 15 {
				out[cur] = int16(acc)
				cur++
				acc = codedFlag
				curb = 15
			}

			v := int(samples[i])
			switch {
			case v > MaxLiteral || -v > MaxLiteral:
				return nil, fmt.Errorf("sample %d at index %d: %w", v, i, errs.ErrSampleOutOfRange)
			case v > 0:
				out[cur] = int16(v)
			default:
				out[cur] = int16(uint16(-v) | signFlag)
			}
			cur++

			continue
		}

		switch diff {
		case 0:
			// A zero difference followed by three more zeros is
			// encoded as a single run-of-4 bit.
			if i+3 < len(samples) && diffs[i+1] == 0 && diffs[i+2] == 0 && diffs[i+3] == 0 {
				appendCode(1)
				i += 3
			} else {
				appendCode(2)
			}
		case 1:
			appendCode(3)
		case -1:
			appendCode(4)
		case 2:
			appendCode(5)
		case -2:
			appendCode(6)
		case 3:
			appendCode(7)
		case -3:
			appendCode(8)
		}
	}

	// Flush the final coded word; an empty accumulator is never emitted
	// since a coded word without set bits is indistinguishable from
	// corruption.
	if curb != 15 {
		out[cur] = int16(acc)
		cur++
	}

	return out[:cur], nil
}

// HuffmanDecode reconstructs a waveform from its delta bit code stream.
//
// The output buffer must be pre-sized by the caller: the stream itself does
// not record the sample count. Decoding stops without error once the output
// buffer is full. A coded word with no set bits below bit 15, or a zero gap
// longer than any difference code, is reported as errs.ErrCorruptHuffmanWord.
func HuffmanDecode(adc []int16, out []int16) error {
	if len(out) == 0 {
		return nil
	}
	if len(adc) == 0 {
		return fmt.Errorf("empty stream cannot fill %d samples: %w", len(out), errs.ErrSizeMismatch)
	}

	// The first word is a raw sample value by construction.
	out[0] = adc[0]
	curADC := adc[0]
	curu := 1

	for i := 1; i < len(adc) && curu < len(out); i++ {
		word := uint16(adc[i])

		if word&codedFlag == 0 {
			if word&signFlag != 0 {
				curADC = -int16(word &^ signFlag)
			} else {
				curADC = int16(word)
			}
			out[curu] = curADC
			curu++

			continue
		}

		payload := word &^ uint16(codedFlag)
		if payload == 0 {
			return fmt.Errorf("coded word %d has no set bits: %w", i, errs.ErrCorruptHuffmanWord)
		}
		lowest := bits.TrailingZeros16(payload)

		// Walk bit positions downward; the run of zeros before each set
		// bit selects the difference.
		for b := 14; b >= lowest && curu < len(out); b-- {
			zerocnt := 0
			for b-zerocnt > lowest && word&(1<<uint(b-zerocnt)) == 0 {
				zerocnt++
			}
			b -= zerocnt

			switch zerocnt {
			case 0: // run of 4 unchanged samples
				for s := 0; s < 4 && curu < len(out); s++ {
					out[curu] = curADC
					curu++
				}
			case 1:
				out[curu] = curADC
				curu++
			case 2:
				curADC++
				out[curu] = curADC
				curu++
			case 3:
				curADC--
				out[curu] = curADC
				curu++
			case 4:
				curADC += 2
				out[curu] = curADC
				curu++
			case 5:
				curADC -= 2
				out[curu] = curADC
				curu++
			case 6:
				curADC += 3
				out[curu] = curADC
				curu++
			case 7:
				curADC -= 3
				out[curu] = curADC
				curu++
			default:
				return fmt.Errorf("coded word %d has a %d-bit zero gap: %w", i, zerocnt, errs.ErrCorruptHuffmanWord)
			}
		}
	}

	return nil
}

// HuffmanDecodedLen scans a delta bit code stream and returns the exact
// number of samples it decodes to, without reconstructing any values.
//
// It is used to size intermediate buffers when the decoded length is not
// known a priori, such as the zero-suppressed stage of a ZeroHuffman
// stream. Corruption is reported exactly as HuffmanDecode would.
func HuffmanDecodedLen(adc []int16) (int, error) {
	if len(adc) == 0 {
		return 0, nil
	}

	count := 1
	for i := 1; i < len(adc); i++ {
		word := uint16(adc[i])

		if word&codedFlag == 0 {
			count++
			continue
		}

		payload := word &^ uint16(codedFlag)
		if payload == 0 {
			return 0, fmt.Errorf("coded word %d has no set bits: %w", i, errs.ErrCorruptHuffmanWord)
		}
		lowest := bits.TrailingZeros16(payload)

		for b := 14; b >= lowest; b-- {
			zerocnt := 0
			for b-zerocnt > lowest && word&(1<<uint(b-zerocnt)) == 0 {
				zerocnt++
			}
			b -= zerocnt

			switch {
			case zerocnt == 0:
				count += 4
			case zerocnt <= 7:
				count++
			default:
				return 0, fmt.Errorf("coded word %d has a %d-bit zero gap: %w", i, zerocnt, errs.ErrCorruptHuffmanWord)
			}
		}
	}

	return count, nil
}
