package validation

import (
	"worktime/internal/config"
)

// ProjectValidator validates project input beyond the domain's non-empty rule
type ProjectValidator struct {
	validator *Validator
}

func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: NewValidator()}
}

func NewProjectValidatorWithConfig(cfg *config.Config) *ProjectValidator {
	return &ProjectValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateProjectName checks the configured length limits and characters.
func (pv *ProjectValidator) ValidateProjectName(name string) error {
	validationError := NewValidationError()
	trimmed := pv.validator.TrimAndValidateString(name)

	if !pv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("project_name")
		return validationError.ErrorOrNil()
	}

	if !pv.validator.IsValidProjectNameLength(trimmed) {
		validationError.AddInvalidLengthError("project_name", trimmed,
			pv.validator.projectNameMinLength(), pv.validator.projectNameMaxLength())
	}

	if !pv.validator.IsValidProjectName(trimmed) {
		validationError.AddInvalidCharacterError("project_name", trimmed)
	}

	return validationError.ErrorOrNil()
}

// ValidateProjectID validates a project ID
func (pv *ProjectValidator) ValidateProjectID(id int64) error {
	validationError := NewValidationError()
	if !pv.validator.IsValidID(id) {
		validationError.AddInvalidValueError("project_id", id, "must be a positive integer")
	}
	return validationError.ErrorOrNil()
}
