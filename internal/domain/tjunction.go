package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/octave"
)

// TJunctionConfig is the initial state of a TJunction.
//
// Side ConnectionInlet means air enters through the main port and splits
// into the branches; ConnectionOutlet means the branches merge into it.
type TJunctionConfig struct {
	ID         string
	Main       CrossSection
	AirFlow    int // main airflow in m³/h
	Right      BranchConfig
	Left       BranchConfig
	Side       JunctionConnectionSide
	Turbulence bool
}

// TJunction joins a main duct to a right and a left branch with no straight
// path through. The main airflow always equals right + left.
type TJunction struct {
	base
	main       *DuctConnection
	right      *TJunctionBranch
	left       *TJunctionBranch
	side       JunctionConnectionSide
	turbulence bool
	guard      guard
}

func NewTJunction(cfg TJunctionConfig, f Formulas) *TJunction {
	t := &TJunction{
		base:       newBase(cfg.ID, f),
		main:       newPort(cfg.Main, cfg.AirFlow),
		side:       cfg.Side,
		turbulence: cfg.Turbulence,
	}
	t.right = &TJunctionBranch{BranchTemplate: newBranchTemplate(cfg.Right), side: acoustic.SideRight, node: t}
	t.left = &TJunctionBranch{BranchTemplate: newBranchTemplate(cfg.Left), side: acoustic.SideLeft, node: t}

	if t.side == ConnectionOutlet {
		t.main.SetAirFlow(t.branchTotal())
	} else {
		t.split()
	}
	t.wire()
	return t
}

// split distributes the main airflow over both branches
func (t *TJunction) split() {
	total := t.main.AirFlow()
	r, l := fitBranches(total, t.right.AirFlow(), t.left.AirFlow())
	if r+l != total {
		r, l = rescale(total, r, l)
	}
	t.right.SetAirFlow(r)
	t.left.SetAirFlow(l)
}

func (t *TJunction) wire() {
	t.main.OnAirFlowChanged(func() {
		t.guard.run(t.split)
	})
	for _, b := range []*TJunctionBranch{t.right, t.left} {
		b.OnAirFlowChanged(func() {
			t.guard.run(func() { t.branchChanged(b) })
		})
	}
}

func (t *TJunction) branchChanged(b *TJunctionBranch) {
	if t.side == ConnectionOutlet {
		t.main.SetAirFlow(t.branchTotal())
		return
	}
	total := t.main.AirFlow()
	requested := b.AirFlow()
	if requested <= total {
		b.Sibling().SetAirFlow(total - requested)
		return
	}
	b.SetAirFlow(total)
	b.Sibling().SetAirFlow(0)
}

func (t *TJunction) branchTotal() int {
	return t.right.AirFlow() + t.left.AirFlow()
}

func (t *TJunction) Kind() acoustic.ElementKind { return acoustic.KindTJunction }

func (t *TJunction) Main() *DuctConnection        { return t.main }
func (t *TJunction) Right() *TJunctionBranch      { return t.right }
func (t *TJunction) Left() *TJunctionBranch       { return t.left }
func (t *TJunction) Side() JunctionConnectionSide { return t.side }
func (t *TJunction) AirFlow() int                 { return t.main.AirFlow() }

// SetSide switches between splitting and merging
func (t *TJunction) SetSide(side JunctionConnectionSide) {
	t.side = side
}

// Branch looks up a branch by side. SideMain has no branch.
func (t *TJunction) Branch(side acoustic.BranchSide) *TJunctionBranch {
	switch side {
	case acoustic.SideRight:
		return t.right
	case acoustic.SideLeft:
		return t.left
	default:
		return nil
	}
}

// SetAirFlow sets the main airflow and rescales both branches to it
func (t *TJunction) SetAirFlow(v int) {
	t.main.SetAirFlow(v)
}

// SetTotalAirFlow is SetAirFlow: the main carries the branch total
func (t *TJunction) SetTotalAirFlow(total int) {
	t.main.SetAirFlow(total)
}

func (t *TJunction) Branches() []BranchElement {
	return []BranchElement{t.right, t.left}
}

// Attenuation of the main side. A T-junction has no straight path of its
// own, and acoustic.Standard reports none for it.
func (t *TJunction) Attenuation() octave.Bands {
	return t.formulas.BranchAttenuation(t.params(acoustic.SideMain))
}

// Noise combines the flow noise of both take-offs
func (t *TJunction) Noise() octave.Bands {
	return t.formulas.BranchNoise(t.params(acoustic.SideMain))
}

func (t *TJunction) params(side acoustic.BranchSide) acoustic.BranchParams {
	branch, sibling := t.right, t.left
	if side == acoustic.SideLeft {
		branch, sibling = t.left, t.right
	}
	shape := junctionShape{kind: acoustic.KindTJunction, turbulence: t.turbulence}
	return branchParams(shape, side, t.main, t.main.AirFlow(), branch.BranchTemplate, sibling.BranchTemplate)
}

// TJunctionBranch is the right or left arm of a TJunction
type TJunctionBranch struct {
	*BranchTemplate
	side acoustic.BranchSide
	node *TJunction
}

func (b *TJunctionBranch) Side() acoustic.BranchSide { return b.side }

// Sibling returns the arm on the opposite side of the same junction
func (b *TJunctionBranch) Sibling() *TJunctionBranch {
	return b.node.Branch(b.side.Opposite())
}

func (b *TJunctionBranch) Attenuation() octave.Bands {
	return b.node.formulas.BranchAttenuation(b.node.params(b.side))
}

func (b *TJunctionBranch) Noise() octave.Bands {
	return b.node.formulas.BranchNoise(b.node.params(b.side))
}
