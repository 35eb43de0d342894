package pool

import "sync"

// int16SlicePool reuses sample scratch buffers across codec invocations.
// Waveform codecs need a handful of working buffers proportional to the
// waveform length; pooling them keeps per-call allocations flat.
var int16SlicePool = sync.Pool{
	New: func() any { return &[]int16{} },
}

// GetInt16Slice retrieves and resizes an int16 slice from the pool.
//
// The returned slice has exactly the requested length. If the pooled slice
// has insufficient capacity, a new slice is allocated. The caller must call
// the returned cleanup function (typically with defer) to return the slice
// to the pool.
//
// The returned slice is NOT zeroed; callers that rely on zero values must
// clear it themselves.
//
// Example:
//
//	scratch, cleanup := pool.GetInt16Slice(len(adc))
//	defer cleanup()
func GetInt16Slice(size int) ([]int16, func()) {
	ptr, _ := int16SlicePool.Get().(*[]int16)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]int16, size)
		*ptr = slice
	} else {
		slice = slice[:size]
		*ptr = slice
	}

	return slice, func() { int16SlicePool.Put(ptr) }
}
