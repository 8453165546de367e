package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/octave"
)

// DoubleJunctionConfig is the initial state of a DoubleJunction
type DoubleJunctionConfig struct {
	ID         string
	Main       CrossSection
	AirFlow    int // inlet airflow in m³/h
	Right      BranchConfig
	Left       BranchConfig
	Turbulence bool
}

// DoubleJunction is a straight main duct with a right and a left take-off
// at the same station.
type DoubleJunction struct {
	base
	inlet      *DuctConnection
	outlet     *DuctConnection
	right      *DoubleJunctionBranch
	left       *DoubleJunctionBranch
	side       JunctionConnectionSide
	turbulence bool
	guard      guard
}

// NewDoubleJunction builds a double junction. Branches asking for more than
// the inlet are fitted: a branch that alone consumes the inlet takes all of
// it (right first), otherwise both are rescaled proportionally.
func NewDoubleJunction(cfg DoubleJunctionConfig, f Formulas) *DoubleJunction {
	d := &DoubleJunction{
		base:       newBase(cfg.ID, f),
		inlet:      newPort(cfg.Main, cfg.AirFlow),
		outlet:     newPort(cfg.Main, 0),
		turbulence: cfg.Turbulence,
	}
	d.right = &DoubleJunctionBranch{BranchTemplate: newBranchTemplate(cfg.Right), side: acoustic.SideRight, node: d}
	d.left = &DoubleJunctionBranch{BranchTemplate: newBranchTemplate(cfg.Left), side: acoustic.SideLeft, node: d}

	d.fit()
	d.wire()
	return d
}

// fit bounds the branches to the inlet and derives the outlet
func (d *DoubleJunction) fit() {
	total := d.inlet.AirFlow()
	r, l := fitBranches(total, d.right.AirFlow(), d.left.AirFlow())
	d.right.SetAirFlow(r)
	d.left.SetAirFlow(l)
	d.outlet.SetAirFlow(total - r - l)
}

func (d *DoubleJunction) wire() {
	syncMainPorts(&d.guard, d.inlet, d.outlet)

	d.inlet.OnAirFlowChanged(func() {
		d.guard.run(func() {
			d.side = ConnectionInlet
			d.fit()
		})
	})

	d.outlet.OnAirFlowChanged(func() {
		d.guard.run(func() {
			d.side = ConnectionOutlet
			d.inlet.SetAirFlow(d.outlet.AirFlow() + d.branchTotal())
		})
	})

	for _, b := range []*DoubleJunctionBranch{d.right, d.left} {
		b.OnAirFlowChanged(func() {
			d.guard.run(func() { d.branchChanged(b) })
		})
	}
}

func (d *DoubleJunction) branchChanged(b *DoubleJunctionBranch) {
	if d.side == ConnectionOutlet {
		d.inlet.SetAirFlow(d.outlet.AirFlow() + d.branchTotal())
		return
	}
	available := d.inlet.AirFlow() - b.Sibling().AirFlow()
	requested := b.AirFlow()
	if requested <= available {
		d.outlet.SetAirFlow(available - requested)
		return
	}
	b.SetAirFlow(available)
	d.outlet.SetAirFlow(0)
}

func (d *DoubleJunction) branchTotal() int {
	return d.right.AirFlow() + d.left.AirFlow()
}

func (d *DoubleJunction) Kind() acoustic.ElementKind { return acoustic.KindDoubleJunction }

func (d *DoubleJunction) Inlet() *DuctConnection       { return d.inlet }
func (d *DoubleJunction) Outlet() *DuctConnection      { return d.outlet }
func (d *DoubleJunction) Right() *DoubleJunctionBranch { return d.right }
func (d *DoubleJunction) Left() *DoubleJunctionBranch  { return d.left }
func (d *DoubleJunction) Side() JunctionConnectionSide { return d.side }
func (d *DoubleJunction) AirFlow() int                 { return d.inlet.AirFlow() }

// Branch looks up a branch by side. SideMain has no branch.
func (d *DoubleJunction) Branch(side acoustic.BranchSide) *DoubleJunctionBranch {
	switch side {
	case acoustic.SideRight:
		return d.right
	case acoustic.SideLeft:
		return d.left
	default:
		return nil
	}
}

// Port returns the main port on the given side
func (d *DoubleJunction) Port(side JunctionConnectionSide) *DuctConnection {
	if side == ConnectionOutlet {
		return d.outlet
	}
	return d.inlet
}

// SetAirFlow sets the airflow on one side and derives the other
func (d *DoubleJunction) SetAirFlow(side JunctionConnectionSide, v int) {
	d.Port(side).SetAirFlow(v)
}

// SetTotalAirFlow sets the combined branch airflow, keeping the previous
// right to left ratio. With the inlet authoritative the total is bounded by
// the inlet and the outlet takes the rest; otherwise the inlet grows.
func (d *DoubleJunction) SetTotalAirFlow(total int) {
	d.guard.run(func() {
		if total < 0 {
			total = 0
		}
		if d.side == ConnectionInlet && total > d.inlet.AirFlow() {
			total = d.inlet.AirFlow()
		}
		r, l := rescale(total, d.right.AirFlow(), d.left.AirFlow())
		d.right.SetAirFlow(r)
		d.left.SetAirFlow(l)
		if d.side == ConnectionOutlet {
			d.inlet.SetAirFlow(d.outlet.AirFlow() + total)
			return
		}
		d.outlet.SetAirFlow(d.inlet.AirFlow() - total)
	})
}

func (d *DoubleJunction) Branches() []BranchElement {
	return []BranchElement{d.right, d.left}
}

func (d *DoubleJunction) Attenuation() octave.Bands {
	return d.formulas.BranchAttenuation(d.params(acoustic.SideMain))
}

func (d *DoubleJunction) Noise() octave.Bands {
	return d.formulas.BranchNoise(d.params(acoustic.SideMain))
}

func (d *DoubleJunction) params(side acoustic.BranchSide) acoustic.BranchParams {
	branch, sibling := d.right, d.left
	if side == acoustic.SideLeft {
		branch, sibling = d.left, d.right
	}
	shape := junctionShape{kind: acoustic.KindDoubleJunction, turbulence: d.turbulence, through: true}
	return branchParams(shape, side, d.inlet, d.inlet.AirFlow(), branch.BranchTemplate, sibling.BranchTemplate)
}

// DoubleJunctionBranch is the right or left take-off of a DoubleJunction
type DoubleJunctionBranch struct {
	*BranchTemplate
	side acoustic.BranchSide
	node *DoubleJunction
}

func (b *DoubleJunctionBranch) Side() acoustic.BranchSide { return b.side }

// Sibling returns the branch on the opposite side of the same junction
func (b *DoubleJunctionBranch) Sibling() *DoubleJunctionBranch {
	return b.node.Branch(b.side.Opposite())
}

func (b *DoubleJunctionBranch) Attenuation() octave.Bands {
	return b.node.formulas.BranchAttenuation(b.node.params(b.side))
}

func (b *DoubleJunctionBranch) Noise() octave.Bands {
	return b.node.formulas.BranchNoise(b.node.params(b.side))
}
