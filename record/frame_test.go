package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrameEmptyBufferHasNoMoreData(t *testing.T) {
	frame, err := ParseFrame(nil)
	require.NoError(t, err)
	assert.False(t, frame.MoreDataFollows)
	assert.Empty(t, frame.Records)
}

func TestParseFrameSkipsIdleFiller(t *testing.T) {
	// idle filler, then a single None-kind record (DIB=0x00, VIB=0x03).
	buf := []byte{0x2F, 0x00, 0x03}
	frame, err := ParseFrame(buf)
	require.NoError(t, err)
	require.Len(t, frame.Records, 1)
	assert.Equal(t, KindEnergy, frame.Records[0].VIB.ValueType.Kind)
}

func TestParseFrameMoreDataFollowsCapturesTrailer(t *testing.T) {
	buf := []byte{0x00, 0x03, 0x1F, 0xAA, 0xBB}
	frame, err := ParseFrame(buf)
	require.NoError(t, err)
	require.Len(t, frame.Records, 1)
	assert.True(t, frame.MoreDataFollows)
	assert.Equal(t, []byte{0xAA, 0xBB}, frame.ManufacturerSpecific)
}

func TestParseFrameEndMarkerCapturesTrailer(t *testing.T) {
	buf := []byte{0x00, 0x03, 0x0F, 0xCC}
	frame, err := ParseFrame(buf)
	require.NoError(t, err)
	require.Len(t, frame.Records, 1)
	assert.False(t, frame.MoreDataFollows)
	assert.Equal(t, []byte{0xCC}, frame.ManufacturerSpecific)
}

func TestParseFrameMultipleRecords(t *testing.T) {
	buf := []byte{0x00, 0x03, 0x00, 0x03, 0x00, 0x03}
	frame, err := ParseFrame(buf)
	require.NoError(t, err)
	assert.Len(t, frame.Records, 3)
	assert.False(t, frame.MoreDataFollows)
}

func TestParseFrameTruncatedRecordFails(t *testing.T) {
	buf := []byte{0x02, 0x03, 0x34} // binary width 2, but only 1 data byte present
	_, err := ParseFrame(buf)
	require.Error(t, err)
}
