package record

import (
	"testing"

	"github.com/meterkit/go-mbus/bitio"
	"github.com/meterkit/go-mbus/mbuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDIBPlainByte(t *testing.T) {
	// ext=0, storageLSB=1, function=Max(1), rawType=0b0010 (Binary width 2)
	b := byte(0b0_1_01_0010)
	c := bitio.New([]byte{b})
	dib, err := ParseDIB(c)
	require.NoError(t, err)
	assert.Equal(t, RawBinary, dib.RawType.Kind)
	assert.Equal(t, 2, dib.RawType.Width)
	assert.Equal(t, Max, dib.Function)
	assert.Equal(t, uint64(1), dib.Storage)
	assert.False(t, dib.IsOBIS)
	assert.True(t, c.Aligned())
}

func TestParseDIBRealType(t *testing.T) {
	b := byte(0b0_0_00_0101)
	c := bitio.New([]byte{b})
	dib, err := ParseDIB(c)
	require.NoError(t, err)
	assert.Equal(t, RawReal, dib.RawType.Kind)
}

func TestParseDIBReservedRawType(t *testing.T) {
	b := byte(0b0_0_00_1111)
	_, err := ParseDIB(bitio.New([]byte{b}))
	require.Error(t, err)
}

func TestParseDIBSelectionForReadoutUnsupported(t *testing.T) {
	b := byte(0b0_0_00_1000)
	_, err := ParseDIB(bitio.New([]byte{b}))
	require.Error(t, err)
	assert.Equal(t, mbuserr.Unsupported, err.(*mbuserr.Error).Kind())
}

func TestParseDIBDIFEAccumulates(t *testing.T) {
	// first byte: ext=1, storageLSB=0, function=0, rawType=0 (None)
	first := byte(0b1_0_00_0000)
	// DIFE: nextExt=0, device=1, tariff=2, storage=5
	dife := byte(0b0_1_10_0101)
	c := bitio.New([]byte{first, dife})
	dib, err := ParseDIB(c)
	require.NoError(t, err)
	assert.False(t, dib.IsOBIS)
	assert.Equal(t, uint16(2), dib.Device)     // 1<<1
	assert.Equal(t, uint32(8), dib.Tariff)     // 2<<2
	assert.Equal(t, uint64(80), dib.Storage)   // 5<<4, plus LSB 0
	assert.True(t, c.Aligned())
}

func TestParseDIBTerminalAllZeroDIFEIsOBIS(t *testing.T) {
	first := byte(0b1_0_00_0000)
	dife := byte(0x00)
	c := bitio.New([]byte{first, dife})
	dib, err := ParseDIB(c)
	require.NoError(t, err)
	assert.True(t, dib.IsOBIS)
}

func TestParseDIBExceedsMaxDIFEChain(t *testing.T) {
	buf := make([]byte, 12)
	buf[0] = 0b1_0_00_0000 // ext=1
	for i := 1; i < 12; i++ {
		buf[i] = 0b1_0_00_0001 // ext=1, nonzero so chain never closes early
	}
	_, err := ParseDIB(bitio.New(buf))
	require.Error(t, err)
	assert.Equal(t, mbuserr.Structural, err.(*mbuserr.Error).Kind())
}
