package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageEmptyBuffer(t *testing.T) {
	_, err := ParseMessage(nil)
	require.Error(t, err)
}

func TestParseMessageDlmsNoHeader(t *testing.T) {
	msg, err := ParseMessage([]byte{0x01, 0xAA, 0xBB})
	require.NoError(t, err)
	dlms, ok := msg.(Dlms)
	require.True(t, ok)
	assert.Equal(t, byte(0x01), dlms.CI())
	assert.Equal(t, []byte{0xAA, 0xBB}, dlms.Data)
	assert.Equal(t, HeaderNone, dlms.Header().Shape)
}

// testLongHeader is a valid 12-byte long TPL header (identifier 0,
// manufacturer "ABB", version 1, device type 0, no security).
var testLongHeader = []byte{0x00, 0x00, 0x00, 0x00, 0x42, 0x04, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00}

func TestParseMessageApplicationResetEmptyBody(t *testing.T) {
	// CI 0x50 carries a long header; nothing follows it.
	msg, err := ParseMessage(append([]byte{0x50}, testLongHeader...))
	require.NoError(t, err)
	_, ok := msg.(ApplicationReset)
	assert.True(t, ok)
}

func TestParseMessageApplicationSelectNonEmptyBody(t *testing.T) {
	buf := append(append([]byte{0x50}, testLongHeader...), 0x01, 0x02)
	msg, err := ParseMessage(buf)
	require.NoError(t, err)
	sel, ok := msg.(ApplicationSelect)
	require.True(t, ok)
	assert.Equal(t, []byte{0x01, 0x02}, sel.Data)
}

func TestParseMessageSetBaudRate(t *testing.T) {
	msg, err := ParseMessage([]byte{0xBA})
	require.NoError(t, err)
	br, ok := msg.(SetBaudRateMessage)
	require.True(t, ok)
	assert.Equal(t, Baud1200, br.Rate)
}

func TestParseMessageFormatFrameUnsupported(t *testing.T) {
	_, err := ParseMessage([]byte{0x69})
	require.Error(t, err)
}

func TestParseMessageCompactFrameUnsupported(t *testing.T) {
	_, err := ParseMessage([]byte{0x73})
	require.Error(t, err)
}

func TestParseMessageApplicationErrorFromDevice(t *testing.T) {
	// CI 0x6E carries a short header (access number, status, security
	// mode) before the error-code byte.
	msg, err := ParseMessage([]byte{0x6E, 0x00, 0x00, 0x00, 0x00, 0x02})
	require.NoError(t, err)
	ae, ok := msg.(ApplicationErrorFromDevice)
	require.True(t, ok)
	assert.Equal(t, ErrBufferOverflow, ae.Error.Code)
}

func TestParseMessageReservedCI(t *testing.T) {
	_, err := ParseMessage([]byte{0x20})
	require.Error(t, err)
}

// ResponseFromDevice (CI 0x72) carries a long header; an empty frame body
// after it is a legitimate empty record stream, not a failure.
func TestParseMessageResponseFromDeviceEmptyFrame(t *testing.T) {
	buf := append([]byte{0x72}, bcdBytes(1)[:]...)
	code := PackManufacturerCode("ABB")
	buf = append(buf, byte(code), byte(code>>8))
	buf = append(buf, 0x01, 0x02) // version, device type
	buf = append(buf, 0x00, 0x00, 0x00, 0x00) // short header fields
	msg, err := ParseMessage(buf)
	require.NoError(t, err)
	resp, ok := msg.(ResponseFromDevice)
	require.True(t, ok)
	assert.Empty(t, resp.Frame.Records)
}
