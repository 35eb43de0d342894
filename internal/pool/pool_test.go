package pool

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInt16Slice_Sizing(t *testing.T) {
	slice, cleanup := GetInt16Slice(100)
	require.Len(t, slice, 100)
	cleanup()

	slice, cleanup = GetInt16Slice(0)
	require.Len(t, slice, 0)
	cleanup()
}

func TestGetInt16Slice_ReuseGrowsCapacity(t *testing.T) {
	slice, cleanup := GetInt16Slice(64)
	for i := range slice {
		slice[i] = int16(i)
	}
	cleanup()

	// A fresh request is independent of earlier contents: the slice is
	// not zeroed, callers only rely on length.
	slice, cleanup = GetInt16Slice(128)
	defer cleanup()
	require.Len(t, slice, 128)
}

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte("waveform"))
	require.Equal(t, 8, bb.Len())
	require.Equal(t, []byte("waveform"), bb.Bytes())

	n, err := bb.Write([]byte(" blob"))
	require.NoError(t, err)
	require.Equal(t, 5, n)
	require.Equal(t, []byte("waveform blob"), bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 13)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{1, 2, 3})

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap()-bb.Len(), 1024)
	require.Equal(t, []byte{1, 2, 3}, bb.Bytes())
}

func TestByteBuffer_WriteTo(t *testing.T) {
	bb := NewByteBuffer(8)
	bb.MustWrite([]byte{9, 8, 7})

	var out bytes.Buffer
	n, err := bb.WriteTo(&out)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, []byte{9, 8, 7}, out.Bytes())
}

func TestByteBufferPool_RetainsSmallBuffers(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.MustWrite([]byte{1, 2, 3})
	p.Put(bb)

	bb = p.Get()
	require.Equal(t, 0, bb.Len())
	p.Put(bb)
}

func TestByteBufferPool_DropsOversizedBuffers(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	bb := p.Get()
	bb.Grow(1024)
	p.Put(bb) // exceeds the threshold; silently dropped

	require.NotPanics(t, func() {
		fresh := p.Get()
		p.Put(fresh)
	})
}

func TestGetBlobBuffer(t *testing.T) {
	bb := GetBlobBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("payload"))
	PutBlobBuffer(bb)
}
