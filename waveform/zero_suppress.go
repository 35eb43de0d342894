package waveform

import (
	"fmt"

	"github.com/arloliu/wavec/errs"
	"github.com/arloliu/wavec/internal/pool"
)

// Zero-suppressed encoding layout, as a flat sequence of 16-bit words:
//
//	[0]              original waveform length (N)
//	[1]              number of blocks (B)
//	[2 .. 2+B)       block start index, one per block, ascending
//	[2+B .. 2+2B)    block length in samples, one per block
//	[2+2B .. end)    retained sample values, block order, in-block order
//
// Blocks never overlap and the sum of block lengths equals the number of
// retained samples. The encoding can be longer than the input for
// pathological waveforms (e.g. samples alternating around the threshold);
// profitability is not enforced.

// ZeroSuppress compresses a waveform by discarding runs of samples at or
// below the threshold, keeping only the active blocks plus their position
// and length.
//
// A block opens at the first sample whose magnitude exceeds the threshold
// and closes at the first subsequent at-or-below-threshold sample; that
// closing sample is included in the block. A block still open at the last
// sample is counted as closed. Adjacent blocks separated by even a single
// inactive sample remain distinct; use ZeroSuppressNearest for merging.
//
// The result is written into the backing array of adc when it fits and a
// fresh slice is allocated otherwise; callers must use the returned slice.
// The waveform must not exceed MaxWaveformLen samples.
func ZeroSuppress(adc []int16, threshold uint16) []int16 {
	adcsize := len(adc)
	thr := int(threshold)

	suppressed, cleanup := pool.GetInt16Slice(adcsize)
	defer cleanup()
	suppressed = suppressed[:0]

	var (
		blockBegin []int16
		blockSize  []int16
	)

	inBlock := false
	for i := 0; i < adcsize; i++ {
		v := int(adc[i])
		if v < 0 {
			v = -v
		}

		if v > thr {
			if !inBlock {
				blockBegin = append(blockBegin, int16(i))
				blockSize = append(blockSize, 0)
				inBlock = true
			}
			suppressed = append(suppressed, adc[i])
			blockSize[len(blockSize)-1]++
		} else if inBlock {
			// The closing sub-threshold sample belongs to the block.
			suppressed = append(suppressed, adc[i])
			blockSize[len(blockSize)-1]++
			inBlock = false
		}
	}

	return packBlocks(adc, blockBegin, blockSize, suppressed)
}

// ZeroSuppressNearest is the block-merging variant of ZeroSuppress.
//
// Each block start is pulled back by neighbor samples (clamped at index 0),
// and a block does not close until neighbor consecutive sub-threshold
// samples have passed and a look-ahead confirms one of the next two samples
// is also sub-threshold. A new active sample arriving within neighbor
// samples of the previous block's end re-opens that block instead of
// starting a new one. Out-of-range look-ahead near the end of the waveform
// counts as below threshold, and a block still open at the last sample is
// counted as closed.
//
// Negative neighbor distances are treated as zero. The same buffer and
// length constraints as ZeroSuppress apply.
func ZeroSuppressNearest(adc []int16, threshold uint16, neighbor int) []int16 {
	adcsize := len(adc)
	thr := int(threshold)
	if neighbor < 0 {
		neighbor = 0
	}

	below := func(i int) bool {
		if i < 0 || i >= adcsize {
			return true
		}
		v := int(adc[i])
		if v < 0 {
			v = -v
		}

		return v <= thr
	}

	var (
		blockBegin []int
		blockSize  []int
	)

	inBlock := false
	endCheck := 0

	for i := 0; i < adcsize; i++ {
		if !inBlock {
			if below(i) {
				continue
			}

			last := len(blockBegin) - 1
			if last >= 0 && i-neighbor <= blockBegin[last]+blockSize[last]+1 {
				// Within the merge tolerance of the previous block:
				// re-open it, absorbing the gap.
				blockSize[last] = i - blockBegin[last] + 1
			} else {
				begin := i - neighbor
				if begin < 0 {
					begin = 0
				}
				blockBegin = append(blockBegin, begin)
				blockSize = append(blockSize, i-begin+1)
			}
			inBlock = true
			endCheck = 0

			continue
		}

		last := len(blockBegin) - 1
		if !below(i) {
			// Coverage invariant: the block always spans
			// [begin, begin+size). Recomputing from i re-syncs the
			// length after a gap that was too short to close on.
			blockSize[last] = i - blockBegin[last] + 1
			endCheck = 0
		} else if endCheck < neighbor {
			endCheck++
			blockSize[last]++
		} else if below(i+1) || below(i+2) {
			endCheck = 0
			inBlock = false
		}
	}

	// Gather retained samples block by block.
	total := 0
	for _, size := range blockSize {
		total += size
	}

	suppressed, cleanup := pool.GetInt16Slice(total)
	defer cleanup()
	suppressed = suppressed[:0]

	begin16 := make([]int16, len(blockBegin))
	size16 := make([]int16, len(blockSize))
	for i := range blockBegin {
		begin16[i] = int16(blockBegin[i])
		size16[i] = int16(blockSize[i])
		suppressed = append(suppressed, adc[blockBegin[i]:blockBegin[i]+blockSize[i]]...)
	}

	return packBlocks(adc, begin16, size16, suppressed)
}

// packBlocks assembles the flat zero-suppressed encoding, reusing the
// input's backing array when the encoding fits.
func packBlocks(adc []int16, blockBegin, blockSize, suppressed []int16) []int16 {
	nblocks := len(blockBegin)
	encLen := 2 + 2*nblocks + len(suppressed)

	out := adc
	if encLen > cap(adc) {
		out = make([]int16, encLen)
	}
	out = out[:encLen]

	out[0] = int16(len(adc))
	out[1] = int16(nblocks)
	copy(out[2:], blockBegin)
	copy(out[2+nblocks:], blockSize)
	copy(out[2+2*nblocks:], suppressed)

	return out
}

// ZeroUnsuppress reconstructs a waveform from its zero-suppressed encoding:
// zero everywhere except inside recorded blocks, which receive the retained
// sample values in block order and in-block order.
//
// The output buffer must be pre-sized to the original waveform length
// recorded in the encoding; a mismatch is reported as errs.ErrSizeMismatch.
// Malformed block metadata (out-of-range starts or lengths, or a sample
// stream shorter than the block table claims) is reported as
// errs.ErrInvalidBlockBounds.
func ZeroUnsuppress(adc []int16, out []int16) error {
	if len(adc) < 2 {
		return fmt.Errorf("zero-suppressed data too short (%d words): %w", len(adc), errs.ErrInvalidBlockBounds)
	}

	length := int(adc[0])
	nblocks := int(adc[1])

	if length < 0 || nblocks < 0 || 2+2*nblocks > len(adc) {
		return fmt.Errorf("block table exceeds encoding (%d blocks, %d words): %w", nblocks, len(adc), errs.ErrInvalidBlockBounds)
	}
	if len(out) != length {
		return fmt.Errorf("output buffer holds %d samples, waveform has %d: %w", len(out), length, errs.ErrSizeMismatch)
	}

	for i := range out {
		out[i] = 0
	}

	idx := 2 + 2*nblocks
	for i := 0; i < nblocks; i++ {
		begin := int(adc[2+i])
		size := int(adc[2+nblocks+i])

		if begin < 0 || size < 0 || begin+size > length {
			return fmt.Errorf("block %d spans [%d, %d) outside waveform of %d samples: %w",
				i, begin, begin+size, length, errs.ErrInvalidBlockBounds)
		}
		if idx+size > len(adc) {
			return fmt.Errorf("block %d sample data truncated: %w", i, errs.ErrInvalidBlockBounds)
		}

		copy(out[begin:begin+size], adc[idx:idx+size])
		idx += size
	}

	return nil
}
