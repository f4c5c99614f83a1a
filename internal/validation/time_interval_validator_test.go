package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"worktime/internal/config"
	"worktime/internal/domain"
	apperrors "worktime/internal/errors"
)

func TestTimeIntervalValidator_ValidateClockTime(t *testing.T) {
	validator := NewTimeIntervalValidator()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		projectID   int64
		at          time.Time
		expectError bool
	}{
		{"should accept now", 1, now, false},
		{"should accept earlier today", 1, now.Add(-3 * time.Hour), false},
		{"should accept a time in the future", 1, now.AddDate(0, 1, 0), false},
		{"should accept a time long ago", 1, now.AddDate(-20, 0, 0), false},
		{"should accept the start of the epoch", 1, time.UnixMilli(100), false},
		{"should reject a zero time", 1, time.Time{}, true},
		{"should reject an invalid project id", 0, now, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateClockTime(tt.projectID, tt.at)

			if tt.expectError {
				assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTimeIntervalValidator_ValidateClockOut(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.MaxIntervalDuration = 8 * time.Hour
	validator := NewTimeIntervalValidatorWithConfig(cfg)
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	interval := domain.ClockInAt(1, start)

	assert.NoError(t, validator.ValidateClockOut(interval, start.Add(8*time.Hour)))
	assert.Error(t, validator.ValidateClockOut(interval, start.Add(9*time.Hour)))
	assert.NoError(t, validator.ValidateClockOut(interval, start.Add(-time.Hour)), "ordering is checked by the domain")
}

func TestTimeIntervalValidator_ValidateClockOut_NoLimitByDefault(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	interval := domain.ClockInAt(1, start)

	assert.NoError(t, NewTimeIntervalValidator().ValidateClockOut(interval, start.Add(25*time.Hour)))
	assert.NoError(t, NewTimeIntervalValidatorWithConfig(config.NewConfig()).ValidateClockOut(interval, start.Add(72*time.Hour)))
}

func TestTimeIntervalValidator_ValidatePageOffset(t *testing.T) {
	validator := NewTimeIntervalValidator()

	assert.NoError(t, validator.ValidatePageOffset(0))
	assert.NoError(t, validator.ValidatePageOffset(30))
	assert.Error(t, validator.ValidatePageOffset(-1))
}

func TestTimeIntervalValidator_ValidateIntervalIDs(t *testing.T) {
	validator := NewTimeIntervalValidator()

	assert.NoError(t, validator.ValidateIntervalIDs([]int64{1, 2}))
	assert.Error(t, validator.ValidateIntervalIDs(nil))
	assert.Error(t, validator.ValidateIntervalIDs([]int64{1, 0}))
}
