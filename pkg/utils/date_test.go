package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	start, end, err := ParseDateRange("2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *start)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *end)

	start, end, err = ParseDateRange("", "")
	require.NoError(t, err)
	assert.Nil(t, start)
	assert.Nil(t, end)

	_, _, err = ParseDateRange("2024-01-01", "")
	assert.Error(t, err)

	_, _, err = ParseDateRange("2024-02-01", "2024-01-01")
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, _, err = ParseDateRange("01/02/2024", "2024-01-01")
	assert.Error(t, err)
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 33.33, RoundWithTwoDecimalPlace(100.0/3))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestRatioAndMicros(t *testing.T) {
	assert.Equal(t, 0.0, Ratio(10, 0))
	assert.Equal(t, 2.5, Ratio(5, 2))
	assert.Equal(t, 12.35, FromMicros(12_345_678))
}
