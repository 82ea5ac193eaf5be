package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaudRateTable(t *testing.T) {
	cases := map[byte]int{
		0xB8: 300,
		0xB9: 600,
		0xBA: 1200,
		0xBB: 2400,
		0xBC: 4800,
		0xBD: 9600,
		0xBE: 19200,
		0xBF: 38400,
	}
	for ci, want := range cases {
		br, err := ParseBaudRate(ci)
		require.NoError(t, err)
		assert.Equal(t, want, br.Int())
	}
}

func TestParseBaudRateOutOfRange(t *testing.T) {
	_, err := ParseBaudRate(0xC0)
	require.Error(t, err)
}
