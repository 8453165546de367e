package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/octave"
)

// JunctionConnectionSide tells which main port of a junction is
// authoritative. Setting airflow on it derives the other side.
type JunctionConnectionSide int

const (
	ConnectionInlet JunctionConnectionSide = iota
	ConnectionOutlet
)

func (s JunctionConnectionSide) String() string {
	if s == ConnectionOutlet {
		return "outlet"
	}
	return "inlet"
}

// JunctionConfig is the initial state of a Junction
type JunctionConfig struct {
	ID         string
	Main       CrossSection
	AirFlow    int // inlet airflow in m³/h
	Branch     BranchConfig
	Turbulence bool
}

// Junction is a straight main duct with a single branch take-off.
//
// Airflow is conserved: inlet = outlet + branch after every mutation of
// any of the three parts.
type Junction struct {
	base
	inlet      *DuctConnection
	outlet     *DuctConnection
	branch     *JunctionBranch
	side       JunctionConnectionSide
	turbulence bool
	guard      guard
}

// NewJunction builds a junction. A branch asking for more than the inlet
// carries is saturated at the inlet flow.
func NewJunction(cfg JunctionConfig, f Formulas) *Junction {
	j := &Junction{
		base:       newBase(cfg.ID, f),
		inlet:      newPort(cfg.Main, cfg.AirFlow),
		outlet:     newPort(cfg.Main, 0),
		turbulence: cfg.Turbulence,
	}
	j.branch = &JunctionBranch{BranchTemplate: newBranchTemplate(cfg.Branch), node: j}

	if j.branch.AirFlow() > j.inlet.AirFlow() {
		j.branch.SetAirFlow(j.inlet.AirFlow())
	}
	j.outlet.SetAirFlow(j.inlet.AirFlow() - j.branch.AirFlow())

	j.wire()
	return j
}

func (j *Junction) wire() {
	syncMainPorts(&j.guard, j.inlet, j.outlet)

	j.inlet.OnAirFlowChanged(func() {
		j.guard.run(func() {
			j.side = ConnectionInlet
			total := j.inlet.AirFlow()
			if j.branch.AirFlow() > total {
				j.branch.SetAirFlow(total)
			}
			j.outlet.SetAirFlow(total - j.branch.AirFlow())
		})
	})

	j.outlet.OnAirFlowChanged(func() {
		j.guard.run(func() {
			j.side = ConnectionOutlet
			j.inlet.SetAirFlow(j.outlet.AirFlow() + j.branch.AirFlow())
		})
	})

	j.branch.OnAirFlowChanged(func() {
		j.guard.run(func() {
			requested := j.branch.AirFlow()
			if j.side == ConnectionOutlet {
				j.inlet.SetAirFlow(j.outlet.AirFlow() + requested)
				return
			}
			available := j.inlet.AirFlow()
			if requested <= available {
				j.outlet.SetAirFlow(available - requested)
				return
			}
			j.branch.SetAirFlow(available)
			j.outlet.SetAirFlow(0)
		})
	})
}

// syncMainPorts keeps the geometry and duct type of two main ports equal
func syncMainPorts(g *guard, a, b *DuctConnection) {
	copyTo := func(src, dst *DuctConnection) func() {
		return func() {
			g.run(func() { dst.SetCrossSection(src.CrossSection()) })
		}
	}
	a.OnDimensionsChanged(copyTo(a, b))
	a.OnDuctTypeChanged(copyTo(a, b))
	b.OnDimensionsChanged(copyTo(b, a))
	b.OnDuctTypeChanged(copyTo(b, a))
}

func (j *Junction) Kind() acoustic.ElementKind { return acoustic.KindJunction }

func (j *Junction) Inlet() *DuctConnection       { return j.inlet }
func (j *Junction) Outlet() *DuctConnection      { return j.outlet }
func (j *Junction) Branch() *JunctionBranch      { return j.branch }
func (j *Junction) Side() JunctionConnectionSide { return j.side }

// AirFlow returns the node airflow, which is the inlet airflow
func (j *Junction) AirFlow() int {
	return j.inlet.AirFlow()
}

// Port returns the main port on the given side
func (j *Junction) Port(side JunctionConnectionSide) *DuctConnection {
	if side == ConnectionOutlet {
		return j.outlet
	}
	return j.inlet
}

// SetAirFlow sets the airflow on one side and derives the other
func (j *Junction) SetAirFlow(side JunctionConnectionSide, v int) {
	j.Port(side).SetAirFlow(v)
}

func (j *Junction) Branches() []BranchElement {
	return []BranchElement{j.branch}
}

// Attenuation returns the attenuation of the straight-through path
func (j *Junction) Attenuation() octave.Bands {
	return j.formulas.BranchAttenuation(j.params(acoustic.SideMain))
}

// Noise returns the flow noise of the straight-through path
func (j *Junction) Noise() octave.Bands {
	return j.formulas.BranchNoise(j.params(acoustic.SideMain))
}

func (j *Junction) params(side acoustic.BranchSide) acoustic.BranchParams {
	shape := junctionShape{kind: acoustic.KindJunction, turbulence: j.turbulence, through: true}
	return branchParams(shape, side, j.inlet, j.inlet.AirFlow(), j.branch.BranchTemplate, nil)
}

// JunctionBranch is the take-off of a Junction
type JunctionBranch struct {
	*BranchTemplate
	node *Junction
}

func (b *JunctionBranch) Side() acoustic.BranchSide { return acoustic.SideRight }

func (b *JunctionBranch) Attenuation() octave.Bands {
	return b.node.formulas.BranchAttenuation(b.node.params(acoustic.SideRight))
}

func (b *JunctionBranch) Noise() octave.Bands {
	return b.node.formulas.BranchNoise(b.node.params(acoustic.SideRight))
}
