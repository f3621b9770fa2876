package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDates(t *testing.T) {
	dates, err := GenerateDates("2026-01-30", 4)

	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}, dates)
}

func TestGenerateDates_InvalidStart(t *testing.T) {
	_, err := GenerateDates("30.01.2026", 4)

	require.Error(t, err)
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "520 грн", FormatPrice(52000))
	assert.Equal(t, "0 грн", FormatPrice(0))
}

func TestFormatClockTime(t *testing.T) {
	// 2026-01-04 08:02 UTC
	epoch := time.Date(2026, 1, 4, 8, 2, 0, 0, time.UTC).Unix()

	assert.Equal(t, "08:02", FormatClockTime(epoch, time.UTC))

	kyiv, err := time.LoadLocation("Europe/Kiev")
	require.NoError(t, err)
	assert.Equal(t, "10:02", FormatClockTime(epoch, kyiv))
}
