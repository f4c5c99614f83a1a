package domain

import (
	apperrors "worktime/internal/errors"
)

// Sentinel errors raised by the domain and use-case layers.
// Compare with errors.Is; copies carrying context still match.
var (
	ErrInvalidProjectName = &apperrors.AppError{
		Type:    apperrors.ErrorTypeValidation,
		Code:    "INVALID_PROJECT_NAME",
		Message: "project name must not be empty",
	}
	ErrActiveProject         = apperrors.NewConflictError("ACTIVE_PROJECT", "project is already clocked in")
	ErrInactiveProject       = apperrors.NewConflictError("INACTIVE_PROJECT", "project is not clocked in")
	ErrClockOutBeforeClockIn = &apperrors.AppError{
		Type:    apperrors.ErrorTypeValidation,
		Code:    "CLOCK_OUT_BEFORE_CLOCK_IN",
		Message: "clock out must not occur before clock in",
	}
	// A stop of zero marks a running interval, so the epoch itself is not a
	// valid clock out.
	ErrClockOutAtEpoch = &apperrors.AppError{
		Type:    apperrors.ErrorTypeValidation,
		Code:    "CLOCK_OUT_AT_EPOCH",
		Message: "clock out must be after the Unix epoch",
	}
	ErrNoProject = &apperrors.AppError{
		Type:    apperrors.ErrorTypeNotFound,
		Code:    "NO_PROJECT",
		Message: "project does not exist",
	}
	ErrProjectAlreadyExists = apperrors.NewConflictError("PROJECT_ALREADY_EXISTS", "a project with that name already exists")
	ErrInvalidStartingPoint = &apperrors.AppError{
		Type:    apperrors.ErrorTypeValidation,
		Code:    "INVALID_STARTING_POINT",
		Message: "starting point must be one of day, week or month",
	}
)
