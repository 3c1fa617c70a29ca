// Package compose turns a reply request into the single instruction string
// sent to the completion provider.
package compose

import (
	"fmt"
	"strings"

	"github.com/sant0-9/answergpt/internal/prompts"
)

const directiveNoSupplement = "Provide a potential reply."

// Composer builds instructions for one variant. It holds no per-request state.
type Composer struct {
	variant  *Variant
	preamble string
}

func NewComposer(v *Variant) *Composer {
	return &Composer{
		variant:  v,
		preamble: prompts.Preamble(),
	}
}

func (c *Composer) Variant() *Variant {
	return c.variant
}

// Compose returns the instruction for req. The clauses are always emitted in the
// same order: preamble, register, original message (if any), directive.
// User text is interpolated verbatim.
func (c *Composer) Compose(req Request) string {
	clauses := []string{c.preamble}
	clauses = append(clauses, c.register(req)...)

	if req.HasOriginal() {
		clauses = append(clauses, fmt.Sprintf("The original message to reply to is: '%s'.", req.OriginalMessage))
	}

	if req.HasSupplement() {
		clauses = append(clauses, fmt.Sprintf(c.variant.supplementFormat, req.Supplement))
	} else {
		clauses = append(clauses, directiveNoSupplement)
	}

	return strings.Join(clauses, " ")
}

func (c *Composer) register(req Request) []string {
	switch c.variant.Mode {
	case ModeVerbosity:
		return []string{
			c.variant.Verbosity.Clause(req.Level),
			fmt.Sprintf("Maintain a %s tone.", req.Tone),
		}
	default:
		return []string{fmt.Sprintf("Write a %s message in a %s tone.", req.Kind, req.Tone)}
	}
}
