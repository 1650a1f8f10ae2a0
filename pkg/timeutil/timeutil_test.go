package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayZoneDefault(t *testing.T) {
	loc := DisplayZone("")
	require.NotNil(t, loc)
	assert.Equal(t, "Asia/Jerusalem", loc.String())
}

func TestDisplayZoneNamed(t *testing.T) {
	loc := DisplayZone("UTC")
	require.NotNil(t, loc)
	assert.Equal(t, "UTC", loc.String())
}

func TestDisplayZoneBadNameFallsBack(t *testing.T) {
	loc := DisplayZone("Not/AZone")
	require.NotNil(t, loc)

	// the fallback is a fixed UTC+2 offset
	_, offset := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC).In(loc).Zone()
	assert.Equal(t, 2*60*60, offset)
}

func TestToDisplay(t *testing.T) {
	utc := time.Date(2025, 11, 1, 23, 30, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+2", 2*3600)

	local := ToDisplay(utc, loc)
	assert.Equal(t, 2, local.Day())
	assert.Equal(t, 1, local.Hour())
}

func TestFormatStamp(t *testing.T) {
	utc := time.Date(2025, 11, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-11-01 23:30 UTC", FormatStamp(utc, time.UTC))
}
