package compose

import (
	"fmt"
	"slices"
)

// Tone is the stylistic register requested for the reply
type Tone string

const (
	ToneProfessional Tone = "Professional"
	ToneFriendly     Tone = "Friendly"
	ToneCasual       Tone = "Casual"
	ToneFormal       Tone = "Formal"
)

// Kind is the medium the reply is written for
type Kind string

const (
	KindChat  Kind = "Chat"
	KindEmail Kind = "Email"
)

// Mode selects how the register clause is built
type Mode int

const (
	// ModeKind asks for a message kind and a tone.
	ModeKind Mode = iota
	// ModeVerbosity asks for a verbosity level and a tone.
	ModeVerbosity
)

func (m Mode) String() string {
	switch m {
	case ModeKind:
		return "kind"
	case ModeVerbosity:
		return "verbosity"
	default:
		return "unknown"
	}
}

// Variant enumerates the options offered to the user and which register is active.
type Variant struct {
	Name  string
	Mode  Mode
	Tones []Tone
	// Kinds is empty for variants without a message kind selection.
	Kinds []Kind
	// Verbosity is nil for variants without a verbosity dial.
	Verbosity *VerbosityTable
	// SupplementLabel names the supplementary field in forms and flags.
	SupplementLabel string

	supplementFormat string
}

const (
	VariantNameKind      = "kind"
	VariantNameVerbosity = "verbosity"
)

// KindVariant offers Chat/Email and four tones. The supplement is a draft to reformulate.
func KindVariant() *Variant {
	return &Variant{
		Name:             VariantNameKind,
		Mode:             ModeKind,
		Tones:            []Tone{ToneProfessional, ToneFriendly, ToneCasual, ToneFormal},
		Kinds:            []Kind{KindChat, KindEmail},
		SupplementLabel:  "Message draft",
		supplementFormat: "Reformulate this draft or use the following indications for you to craft the message: '%s'.",
	}
}

// VerbosityVariant offers the 0..6 verbosity dial and two tones. The supplement is a list of key points.
func VerbosityVariant() *Variant {
	table := DefaultVerbosityTable()
	return &Variant{
		Name:             VariantNameVerbosity,
		Mode:             ModeVerbosity,
		Tones:            []Tone{ToneCasual, ToneFormal},
		Verbosity:        &table,
		SupplementLabel:  "Key points",
		supplementFormat: "Incorporate the following key points into the reply: '%s'.",
	}
}

// LookupVariant returns the variant registered under name.
func LookupVariant(name string) (*Variant, error) {
	switch name {
	case VariantNameKind, "":
		return KindVariant(), nil
	case VariantNameVerbosity:
		return VerbosityVariant(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
	}
}

// VariantNames lists the names accepted by LookupVariant.
func VariantNames() []string {
	return []string{VariantNameKind, VariantNameVerbosity}
}

func (v *Variant) HasTone(t Tone) bool {
	return slices.Contains(v.Tones, t)
}

func (v *Variant) HasKind(k Kind) bool {
	return slices.Contains(v.Kinds, k)
}

// DefaultTone is the first tone offered by the variant.
func (v *Variant) DefaultTone() Tone {
	return v.Tones[0]
}

// DefaultKind is the first kind offered, or "" when the variant has none.
func (v *Variant) DefaultKind() Kind {
	if len(v.Kinds) == 0 {
		return ""
	}
	return v.Kinds[0]
}
