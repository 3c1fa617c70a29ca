package reply

import (
	"errors"
	"fmt"

	"github.com/sant0-9/answergpt/internal/compose"
	"github.com/sant0-9/answergpt/internal/invoke"
)

// FailureKind classifies why a submission produced no reply.
type FailureKind string

const (
	FailurePrecondition FailureKind = "precondition"
	FailureService      FailureKind = "service"
	FailureUnknown      FailureKind = "unknown"
)

// Failure is the error half of a Result.
type Failure struct {
	Kind    FailureKind
	Message string
}

// Result is either generated text or a Failure, never both.
type Result struct {
	Text    string
	Failure *Failure
}

func (r Result) OK() bool {
	return r.Failure == nil
}

// Banner is the line shown to the user for a failed result.
func (r Result) Banner() string {
	if r.Failure == nil {
		return ""
	}
	switch r.Failure.Kind {
	case FailureService:
		return fmt.Sprintf("A service error occurred: %s", r.Failure.Message)
	case FailureUnknown:
		return fmt.Sprintf("An unknown error occurred: %s", r.Failure.Message)
	default:
		return r.Failure.Message
	}
}

func success(text string) Result {
	return Result{Text: text}
}

func failure(err error) Result {
	var pre *compose.PreconditionError
	var svc *invoke.ServiceError
	switch {
	case errors.As(err, &pre):
		return Result{Failure: &Failure{Kind: FailurePrecondition, Message: pre.Message}}
	case errors.As(err, &svc):
		return Result{Failure: &Failure{Kind: FailureService, Message: svc.Message}}
	default:
		return Result{Failure: &Failure{Kind: FailureUnknown, Message: err.Error()}}
	}
}
