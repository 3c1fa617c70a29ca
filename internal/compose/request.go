package compose

import (
	"fmt"
	"strings"
)

const (
	MsgMissingCredential = "Please add your API key to continue."
	MsgMissingContent    = "Please enter an original message or a message draft."
)

// Request holds everything collected from the form for one submission.
// It is built by the caller and passed by value; nothing in it outlives the submission.
type Request struct {
	OriginalMessage string
	// Supplement is a draft to reformulate or key points to include, depending on the variant.
	Supplement string
	Tone       Tone
	// Kind is only read by ModeKind variants.
	Kind Kind
	// Level is only read by ModeVerbosity variants.
	Level      int
	Model      string
	Credential string
}

func (r Request) HasOriginal() bool {
	return present(r.OriginalMessage)
}

func (r Request) HasSupplement() bool {
	return present(r.Supplement)
}

// Validate checks the preconditions a request must meet before it is composed and sent.
// credentialRequired is false for providers that run without a key.
func (r Request) Validate(v *Variant, credentialRequired bool) error {
	if credentialRequired && r.Credential == "" {
		return &PreconditionError{Field: FieldCredential, Message: MsgMissingCredential}
	}
	if !r.HasOriginal() && !r.HasSupplement() {
		return &PreconditionError{Field: FieldContent, Message: MsgMissingContent}
	}
	if !v.HasTone(r.Tone) {
		return &PreconditionError{
			Field:   FieldTone,
			Message: fmt.Sprintf("Tone %q is not available; choose one of %s.", r.Tone, joinTones(v.Tones)),
		}
	}
	switch v.Mode {
	case ModeKind:
		if !v.HasKind(r.Kind) {
			return &PreconditionError{
				Field:   FieldKind,
				Message: fmt.Sprintf("Message type %q is not available; choose one of %s.", r.Kind, joinKinds(v.Kinds)),
			}
		}
	case ModeVerbosity:
		if !ValidLevel(r.Level) {
			return &PreconditionError{
				Field:   FieldLevel,
				Message: fmt.Sprintf("Synthetic level must be between %d and %d.", MinLevel, MaxLevel),
			}
		}
	}
	return nil
}

// present treats any non-empty text as given, whitespace included.
func present(s string) bool {
	return s != ""
}

func joinTones(tones []Tone) string {
	names := make([]string, len(tones))
	for i, t := range tones {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func joinKinds(kinds []Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
