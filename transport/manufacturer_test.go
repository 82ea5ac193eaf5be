package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestUnpackManufacturerCodeKnownValue(t *testing.T) {
	code := PackManufacturerCode("ABB")
	s, err := UnpackManufacturerCode(code)
	require.NoError(t, err)
	assert.Equal(t, "ABB", s)
}

func TestUnpackManufacturerCodeRejectsNonUppercase(t *testing.T) {
	// 0 maps to byte 64 ('@'), outside A-Z.
	_, err := UnpackManufacturerCode(0)
	require.Error(t, err)
}

func TestIsVersionByte3Manufacturer(t *testing.T) {
	assert.True(t, isVersionByte3Manufacturer("SBC"))
	assert.True(t, isVersionByte3Manufacturer("SEO"))
	assert.True(t, isVersionByte3Manufacturer("GTE"))
	assert.False(t, isVersionByte3Manufacturer("ABB"))
}

func TestLookupDeviceNameUnknownReturnsEmpty(t *testing.T) {
	name := lookupDeviceName([4]byte{}, "ZZZ", 0x01, DeviceType{})
	assert.Equal(t, "", name)
}

func TestLookupDeviceNameVersionRange(t *testing.T) {
	name := lookupDeviceName([4]byte{}, "AMT", 0x50, DeviceType{})
	assert.Equal(t, "Aquametro SAPHIR", name)
}

func TestLookupDeviceNameMediumDiscriminates(t *testing.T) {
	name := lookupDeviceName([4]byte{}, "BEC", 0x00, DeviceType{Code: mediumElectricity})
	assert.Equal(t, "Berg DCMi", name)

	name = lookupDeviceName([4]byte{}, "BEC", 0x00, DeviceType{Code: 0x01})
	assert.Equal(t, "", name)
}

// Every 3-letter code packed by PackManufacturerCode round-trips through
// UnpackManufacturerCode.
func TestManufacturerCodeRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		letters := make([]byte, 3)
		for i := range letters {
			letters[i] = byte(rapid.IntRange(int('A'), int('Z')).Draw(t, "letter"))
		}
		code := string(letters)
		packed := PackManufacturerCode(code)
		got, err := UnpackManufacturerCode(packed)
		require.NoError(t, err)
		assert.Equal(t, code, got)
	})
}
