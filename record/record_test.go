package record

import (
	"testing"

	"github.com/meterkit/go-mbus/bitio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordEnergySigned(t *testing.T) {
	// DIB: binary width 2, instantaneous, no extension.
	// VIB: table 10 Energy (0x03).
	// Data: 0x1234 little-endian signed.
	buf := []byte{0x02, 0x03, 0x34, 0x12}
	rec, err := ParseRecord(bitio.New(buf))
	require.NoError(t, err)
	assert.Equal(t, RawBinary, rec.DIB.RawType.Kind)
	assert.Equal(t, 2, rec.DIB.RawType.Width)
	assert.Equal(t, KindEnergy, rec.VIB.ValueType.Kind)
	assert.Equal(t, DataSigned, rec.Data.Kind)
	assert.Equal(t, int64(0x1234), rec.Data.Signed)
}

func TestParseRecordDateWidthMismatchDowngradesToInvalid(t *testing.T) {
	// VIB selects Type G date (table10 0x6C, wants a 2-byte binary field),
	// but the DIB declares only a 1-byte binary field: the value type
	// downgrades to Invalid and the payload decodes as a plain signed byte.
	buf := []byte{0x01, 0x6C, 0xAB}
	rec, err := ParseRecord(bitio.New(buf))
	require.NoError(t, err)
	assert.Equal(t, KindInvalid, rec.VIB.ValueType.Kind)
	assert.Equal(t, DataSigned, rec.Data.Kind)
	assert.Equal(t, int64(int8(0xAB)), rec.Data.Signed)
}

func TestParseRecordDateWidthMatchDecodesDate(t *testing.T) {
	buf := []byte{0x02, 0x6C, 0xAF, 0x16}
	rec, err := ParseRecord(bitio.New(buf))
	require.NoError(t, err)
	assert.Equal(t, KindTypeGDate, rec.VIB.ValueType.Kind)
	assert.Equal(t, DataDate, rec.Data.Kind)
	assert.Equal(t, TypeGDate{Day: 15, Month: 6, Year: 13}, rec.Data.Date)
}

func TestParseRecordLVARDispatch(t *testing.T) {
	// DIB raw-type LVAR (nibble 0b1101 = 0x0D).
	buf := []byte{0x0D, 0x03, 0x03, 'C', 'B', 'A'}
	rec, err := ParseRecord(bitio.New(buf))
	require.NoError(t, err)
	assert.Equal(t, RawLVAR, rec.DIB.RawType.Kind)
	assert.Equal(t, DataString, rec.Data.Kind)
	assert.Equal(t, "ABC", rec.Data.String)
}

func TestParseRecordDIFEExtensionPropagatesIntoDIB(t *testing.T) {
	// First DIB byte 0x80 sets the extension bit with raw type None;
	// the DIFE byte 0x65 contributes device/tariff/storage at index 1.
	buf := []byte{0x80, 0x65, 0x03}
	rec, err := ParseRecord(bitio.New(buf))
	require.NoError(t, err)
	assert.Equal(t, uint16(2), rec.DIB.Device)
	assert.Equal(t, uint32(8), rec.DIB.Tariff)
}
