package compose

import "errors"

var (
	// ErrUnknownVariant indicates a variant name that LookupVariant does not know.
	ErrUnknownVariant = errors.New("unknown variant")
)

// Fields reported by PreconditionError.
const (
	FieldCredential = "credential"
	FieldContent    = "content"
	FieldTone       = "tone"
	FieldKind       = "kind"
	FieldLevel      = "level"
)

// PreconditionError reports a required input that is missing or outside the
// variant's option sets. It is shown to the user as an informational message.
type PreconditionError struct {
	Field   string
	Message string
}

func (e *PreconditionError) Error() string {
	return e.Message
}
