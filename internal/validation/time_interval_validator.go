package validation

import (
	"time"

	"worktime/internal/config"
	"worktime/internal/domain"
)

// TimeIntervalValidator validates clock and timesheet input
type TimeIntervalValidator struct {
	validator *Validator
}

func NewTimeIntervalValidator() *TimeIntervalValidator {
	return &TimeIntervalValidator{validator: NewValidator()}
}

func NewTimeIntervalValidatorWithConfig(cfg *config.Config) *TimeIntervalValidator {
	return &TimeIntervalValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateClockTime requires a project and an instant. Any instant is
// accepted, including ones in the past or the future.
func (tv *TimeIntervalValidator) ValidateClockTime(projectID int64, at time.Time) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidID(projectID) {
		validationError.AddInvalidValueError("project_id", projectID, "must be a positive integer")
	}
	if at.IsZero() {
		validationError.AddRequiredError("time")
	}

	return validationError.ErrorOrNil()
}

// ValidateClockOut rejects intervals longer than the configured maximum.
// Without a maximum every clock out passes. A stop before the start is left
// to the domain.
func (tv *TimeIntervalValidator) ValidateClockOut(interval domain.TimeInterval, at time.Time) error {
	validationError := NewValidationError()

	duration := at.Sub(interval.StartedAt())
	if duration > 0 && !tv.validator.IsValidDuration(duration) {
		validationError.AddInvalidRangeError("time", at, "interval exceeds the maximum duration of "+tv.validator.maxIntervalDuration().String())
	}

	return validationError.ErrorOrNil()
}

// ValidatePageOffset validates a timesheet page offset
func (tv *TimeIntervalValidator) ValidatePageOffset(offset int) error {
	validationError := NewValidationError()
	if !tv.validator.IsValidOffset(offset) {
		validationError.AddInvalidValueError("offset", offset, "must not be negative")
	}
	return validationError.ErrorOrNil()
}

// ValidateIntervalIDs requires at least one ID and only positive IDs
func (tv *TimeIntervalValidator) ValidateIntervalIDs(ids []int64) error {
	validationError := NewValidationError()

	if len(ids) == 0 {
		validationError.AddRequiredError("time_interval_ids")
		return validationError.ErrorOrNil()
	}
	for _, id := range ids {
		if !tv.validator.IsValidID(id) {
			validationError.AddInvalidValueError("time_interval_ids", id, "must be a positive integer")
		}
	}

	return validationError.ErrorOrNil()
}
