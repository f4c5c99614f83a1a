package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"worktime/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a validator using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a validator using the configured limits
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength counts characters, not bytes, after trimming
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

func (v *Validator) IsValidProjectNameLength(name string) bool {
	return v.IsValidStringLength(name, v.projectNameMinLength(), v.projectNameMaxLength())
}

// IsValidProjectName rejects control characters such as newlines and tabs.
// Any printable character, including non-Latin letters, is allowed.
func (v *Validator) IsValidProjectName(name string) bool {
	for _, r := range name {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// IsValidID checks if an ID is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidOffset accepts zero and positive page offsets
func (v *Validator) IsValidOffset(offset int) bool {
	return offset >= 0
}

// IsValidDuration checks if a duration is within the configured bound.
// A zero bound means unlimited.
func (v *Validator) IsValidDuration(duration time.Duration) bool {
	if duration < 0 {
		return false
	}
	limit := v.maxIntervalDuration()
	return limit == 0 || duration <= limit
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) projectNameMinLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMinLength
	}
	return 1
}

func (v *Validator) projectNameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.ProjectNameMaxLength
	}
	return 255
}

func (v *Validator) maxIntervalDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxIntervalDuration
	}
	return 0
}
