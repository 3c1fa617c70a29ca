package compose

import "fmt"

const (
	MinLevel = 0
	MaxLevel = 6
)

// VerbosityTable maps each level in MinLevel..MaxLevel to its register clause.
// Level 0 is the most concise, level 6 the most elaborate.
type VerbosityTable [MaxLevel - MinLevel + 1]string

func DefaultVerbosityTable() VerbosityTable {
	return VerbosityTable{
		"Write an extremely concise reply: a few words or a single short sentence.",
		"Write a very short reply of one or two brief sentences.",
		"Write a short reply with simple, direct sentences.",
		"Write a reply of moderate length with clear, everyday sentences.",
		"Write a fairly detailed reply with well-developed sentences.",
		"Write a detailed reply in a polished, formal register.",
		"Write a thorough reply using complex, formal, longer sentences.",
	}
}

// Clause returns the clause for level. Callers constrain the level before composing,
// so a level outside the table is a programming error and panics.
func (t *VerbosityTable) Clause(level int) string {
	if !ValidLevel(level) {
		panic(fmt.Sprintf("compose: verbosity level %d outside %d..%d", level, MinLevel, MaxLevel))
	}
	return t[level-MinLevel]
}

func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}
