package preferences

import "errors"

var (
	ErrInvalidPreference  = errors.New("invalid preference")
	ErrPreferenceConflict = errors.New("conflicting preferences")
)

// ValidationError reports a field whose value has the wrong shape, is outside
// its enumeration, or is out of range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidPreference }

// ConflictError reports two individually valid fields that may not be
// combined.
type ConflictError struct {
	Rule    string
	Fields  []string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Is(target error) bool { return target == ErrPreferenceConflict }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
