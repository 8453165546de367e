package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/clamp"
)

// BranchConfig is the initial state of a branch
type BranchConfig struct {
	Section  CrossSection
	AirFlow  int
	Rounding int // mm
	Type     acoustic.BranchShape
}

// BranchTemplate is the state shared by every branch variant: a duct
// connection plus the take-off rounding radius and shape.
type BranchTemplate struct {
	DuctConnection

	rounding   int
	branchType acoustic.BranchShape

	roundingChanged   signal
	branchTypeChanged signal
}

func newBranchTemplate(cfg BranchConfig) *BranchTemplate {
	b := &BranchTemplate{
		DuctConnection: *newPort(cfg.Section, cfg.AirFlow),
		branchType:     cfg.Type,
	}
	b.rounding = clamp.Rounding(cfg.Rounding, b.roundingBase())
	return b
}

// roundingBase is the dimension the rounding radius is bounded by
func (b *BranchTemplate) roundingBase() int {
	a, _ := b.Extent()
	return a
}

// Rounding returns the take-off rounding radius in mm.
//
// The value is bounded by the width at the time it was set; a later width
// change does not re-clamp it.
func (b *BranchTemplate) Rounding() int {
	return b.rounding
}

// SetRounding sets the rounding radius, clamped to [0, ceil(0.6*width)]
func (b *BranchTemplate) SetRounding(r int) {
	b.rounding = clamp.Rounding(r, b.roundingBase())
	b.roundingChanged.emit()
}

func (b *BranchTemplate) BranchType() acoustic.BranchShape {
	return b.branchType
}

func (b *BranchTemplate) SetBranchType(t acoustic.BranchShape) {
	if t != acoustic.ShapeStraight && t != acoustic.ShapeRounded {
		return
	}
	b.branchType = t
	b.branchTypeChanged.emit()
}

func (b *BranchTemplate) OnRoundingChanged(fn func())   { b.roundingChanged.subscribe(fn) }
func (b *BranchTemplate) OnBranchTypeChanged(fn func()) { b.branchTypeChanged.subscribe(fn) }

// effectiveRounding is the radius in m handed to the formulas.
// Straight take-offs have none.
func (b *BranchTemplate) effectiveRounding() float64 {
	if b.branchType == acoustic.ShapeStraight {
		return 0
	}
	return float64(b.rounding) / 1000
}
