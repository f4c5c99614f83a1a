package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "worktime/internal/errors"
)

func TestParseInstant(t *testing.T) {
	now := time.Date(2024, 6, 5, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		input     string
		expected  *time.Time
		expectErr bool
	}{
		{name: "should treat empty as now", input: ""},
		{name: "should subtract minutes", input: "30m", expected: ptr(now.Add(-30 * time.Minute))},
		{name: "should subtract hours", input: "2h", expected: ptr(now.Add(-2 * time.Hour))},
		{name: "should subtract days", input: "1d", expected: ptr(now.Add(-24 * time.Hour))},
		{name: "should read a wall clock time today", input: "09:15", expected: ptr(time.Date(2024, 6, 5, 9, 15, 0, 0, time.UTC))},
		{name: "should read RFC 3339", input: "2024-06-04T08:00:00Z", expected: ptr(time.Date(2024, 6, 4, 8, 0, 0, 0, time.UTC))},
		{name: "should reject weeks", input: "1w", expectErr: true},
		{name: "should reject text", input: "yesterday", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			result, err := parseInstant(tt.input, now)

			// Assert
			if tt.expectErr {
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
				return
			}
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.True(t, tt.expected.Equal(*result), "got %s", result)
		})
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("time_interval_id", []string{"3", " 1 "})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1}, ids)

	for _, bad := range []string{"0", "-2", "x"} {
		_, err := parseIDs("time_interval_id", []string{bad})
		assert.Error(t, err, bad)
	}
}

func TestApp_Confirm(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"yes", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			out := &bytes.Buffer{}
			app := NewAppWithIO(nil, nil, out, strings.NewReader(tt.input))

			assert.Equal(t, tt.expected, app.confirm("Continue?"))
			assert.Equal(t, "Continue? [y/N] ", out.String())
		})
	}
}

func TestRow(t *testing.T) {
	assert.Equal(t, "Total     1:00", row("Total", "1:00", 14))
	assert.Equal(t, "A long label 1:00", row("A long label", "1:00", 5), "at least one space separates the columns")
}

func ptr(t time.Time) *time.Time {
	return &t
}
