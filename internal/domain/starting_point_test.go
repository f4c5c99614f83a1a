package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartingPoint(t *testing.T) {
	tests := []struct {
		input       string
		expected    StartingPoint
		expectError bool
	}{
		{input: "day", expected: StartingPointDay},
		{input: "Week", expected: StartingPointWeek},
		{input: " MONTH ", expected: StartingPointMonth},
		{input: "year", expectError: true},
		{input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseStartingPoint(tt.input)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidStartingPoint))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestStartingPointFromInt(t *testing.T) {
	sp, err := StartingPointFromInt(2)
	require.NoError(t, err)
	assert.Equal(t, StartingPointMonth, sp)

	_, err = StartingPointFromInt(3)
	assert.True(t, errors.Is(err, ErrInvalidStartingPoint))

	_, err = StartingPointFromInt(-1)
	assert.True(t, errors.Is(err, ErrInvalidStartingPoint))
}

func TestStartingPoint_String(t *testing.T) {
	assert.Equal(t, "day", StartingPointDay.String())
	assert.Equal(t, "week", StartingPointWeek.String())
	assert.Equal(t, "month", StartingPointMonth.String())
	assert.Equal(t, "unknown", StartingPoint(9).String())
}

func TestStartingPoint_Since(t *testing.T) {
	// Thursday
	now := time.Date(2024, time.February, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		sp       StartingPoint
		now      time.Time
		expected time.Time
	}{
		{"day starts at midnight", StartingPointDay, now, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)},
		{"week starts on monday", StartingPointWeek, now, time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)},
		{"week on a sunday goes back six days", StartingPointWeek, time.Date(2024, 2, 18, 9, 0, 0, 0, time.UTC), time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)},
		{"week on a monday is the same day", StartingPointWeek, time.Date(2024, 2, 12, 9, 0, 0, 0, time.UTC), time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)},
		{"month starts on the first", StartingPointMonth, now, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.sp.Since(tt.now))
		})
	}
}
