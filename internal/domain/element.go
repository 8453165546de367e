package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/octave"
)

// Element is one acoustic element of a duct network
type Element interface {
	ID() string
	Kind() acoustic.ElementKind
	Attenuation() octave.Bands
	Noise() octave.Bands
}

// BranchElement is one branch side of a composite element
type BranchElement interface {
	Side() acoustic.BranchSide
	Attenuation() octave.Bands
	Noise() octave.Bands
}

// Composite is an element that owns branches
type Composite interface {
	Element
	Branches() []BranchElement
}

// Formulas is the empirical formula library elements delegate to.
// acoustic.Library is the standard implementation.
type Formulas interface {
	DuctAttenuation(acoustic.DuctParams) octave.Bands
	DuctNoise(acoustic.DuctParams) octave.Bands
	BendAttenuation(acoustic.BendParams) octave.Bands
	BendNoise(acoustic.BendParams) octave.Bands
	DamperNoise(acoustic.DamperParams) octave.Bands
	TerminalAttenuation(acoustic.TerminalParams) octave.Bands
	TerminalNoise(acoustic.TerminalParams) octave.Bands
	SilencerNoise(acoustic.SilencerParams) octave.Bands
	FanNoise(acoustic.FanParams) octave.Bands
	PlenumAttenuation(acoustic.PlenumParams) octave.Bands
	RoomAttenuation(acoustic.RoomParams) octave.Bands
	BranchAttenuation(acoustic.BranchParams) octave.Bands
	BranchNoise(acoustic.BranchParams) octave.Bands
}

var _ Formulas = acoustic.Library{}

// base carries the identity and formula library of an element
type base struct {
	id       string
	formulas Formulas
}

func newBase(id string, f Formulas) base {
	if f == nil {
		f = acoustic.Standard
	}
	return base{id: id, formulas: f}
}

// ID returns the element identifier
func (b *base) ID() string {
	return b.id
}
