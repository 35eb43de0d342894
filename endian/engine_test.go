package endian

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetEngines(t *testing.T) {
	require.Equal(t, binary.ByteOrder(binary.LittleEndian), binary.ByteOrder(GetLittleEndianEngine()))
	require.Equal(t, binary.ByteOrder(binary.BigEndian), binary.ByteOrder(GetBigEndianEngine()))
}

func TestEndianEngine_AppendAndRead(t *testing.T) {
	for _, engine := range []EndianEngine{GetLittleEndianEngine(), GetBigEndianEngine()} {
		var buf []byte
		buf = engine.AppendUint16(buf, 0xBEEF)
		buf = engine.AppendUint32(buf, 0xDEADBEEF)
		buf = engine.AppendUint64(buf, 0xCAFEF00DDEADBEEF)
		require.Len(t, buf, 14)

		require.Equal(t, uint16(0xBEEF), engine.Uint16(buf[0:2]))
		require.Equal(t, uint32(0xDEADBEEF), engine.Uint32(buf[2:6]))
		require.Equal(t, uint64(0xCAFEF00DDEADBEEF), engine.Uint64(buf[6:14]))
	}
}

func TestEndianEngine_ByteOrderDiffers(t *testing.T) {
	le := GetLittleEndianEngine().AppendUint16(nil, 0x0102)
	be := GetBigEndianEngine().AppendUint16(nil, 0x0102)

	require.Equal(t, []byte{0x02, 0x01}, le)
	require.Equal(t, []byte{0x01, 0x02}, be)
}

func TestCheckEndianness_ConsistentWithHelpers(t *testing.T) {
	native := CheckEndianness()

	if IsNativeLittleEndian() {
		require.Equal(t, binary.ByteOrder(binary.LittleEndian), native)
		require.True(t, CompareNativeEndian(GetLittleEndianEngine()))
		require.False(t, CompareNativeEndian(GetBigEndianEngine()))
	} else {
		require.Equal(t, binary.ByteOrder(binary.BigEndian), native)
		require.True(t, CompareNativeEndian(GetBigEndianEngine()))
		require.False(t, CompareNativeEndian(GetLittleEndianEngine()))
	}
}
