package mbuserr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		Framing:     "framing",
		Structural:  "structural",
		Value:       "value",
		Unsupported: "unsupported",
		Assertion:   "assertion",
		Kind(99):    "unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestNewSetsInnermostLabel(t *testing.T) {
	err := New(Value, "invalid BCD nibble")
	assert.Equal(t, Value, err.Kind())
	assert.Equal(t, "invalid BCD nibble", err.Label())
	assert.Equal(t, []string{"invalid BCD nibble"}, err.Context())
}

func TestWithContextIsOrderedAndImmutable(t *testing.T) {
	inner := New(Structural, "unexpected end of input")
	outer := inner.WithContext("signed 4 byte BCD number").WithContext("frame record")

	assert.Equal(t, []string{"unexpected end of input"}, inner.Context(), "original must not mutate")
	assert.Equal(t, []string{
		"unexpected end of input",
		"signed 4 byte BCD number",
		"frame record",
	}, outer.Context())
	assert.Equal(t, "unexpected end of input", outer.Label())
}

func TestHasLabel(t *testing.T) {
	err := New(Framing, "bad start byte").WithContext("telegram")
	assert.True(t, err.HasLabel("bad start byte"))
	assert.True(t, err.HasLabel("telegram"))
	assert.False(t, err.HasLabel("checksum"))
}

func TestWrapAttachesCauseAndUnwraps(t *testing.T) {
	cause := errors.New("invalid UTF-8")
	err := Wrap(Value, "length prefix ascii", cause)

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "invalid UTF-8")
	assert.Contains(t, err.Error(), "invalid length prefix ascii")
}

func TestErrorStringOrdersOutermostFirst(t *testing.T) {
	err := New(Structural, "invalid BCD nibble").WithContext("final byte").WithContext("frame record")
	assert.Equal(t, "structural: invalid frame record: invalid final byte: invalid invalid BCD nibble", err.Error())
}
