package submission

import (
	"errors"

	"github.com/dalemusser/servehub/internal/app/system/wizard"
)

// Validation failures, in the order Compose checks them.
var (
	ErrMissingDate       = errors.New("missing date")
	ErrMissingTime       = errors.New("missing time")
	ErrNoMembersSelected = errors.New("no members selected")
	ErrInvalidFields     = errors.New("invalid fields")
)

var kinds = map[error]struct {
	code string
	step string
}{
	ErrMissingDate:       {"missing_date", wizard.StepDetails},
	ErrMissingTime:       {"missing_time", wizard.StepDetails},
	ErrNoMembersSelected: {"no_members_selected", wizard.StepMembers},
	ErrInvalidFields:     {"invalid_fields", wizard.StepDetails},
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ValidationError is returned by Compose. Kind is one of the Err* values
// above and Step is the wizard step the user should be sent back to.
type ValidationError struct {
	Kind   error
	Step   string
	Fields []FieldError
}

func newValidationError(kind error, fields ...FieldError) *ValidationError {
	return &ValidationError{Kind: kind, Step: kinds[kind].step, Fields: fields}
}

func (e *ValidationError) Error() string {
	if e.Kind == nil {
		return ""
	}
	return e.Kind.Error()
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// Code is the machine-readable name of Kind, e.g. "missing_date".
func (e *ValidationError) Code() string {
	return kinds[e.Kind].code
}
