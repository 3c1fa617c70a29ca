package prompts

import (
	_ "embed"
	"strings"
)

//go:embed preamble.md
var preamble string

// Preamble returns the persona and style clause every instruction starts with.
func Preamble() string {
	return strings.TrimSpace(preamble)
}
