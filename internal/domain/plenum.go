package domain

import (
	"math"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/clamp"
	"ductnoise/internal/octave"
)

// PlenumType selects where the ports sit on the box
type PlenumType string

const (
	// PlenumVertical has the inlet in a side wall and the outlet in the bottom face
	PlenumVertical PlenumType = "vertical"
	// PlenumHorizontal has inlet and outlet on opposite end faces
	PlenumHorizontal PlenumType = "horizontal"
)

// PlenumConfig is the initial state of a Plenum. Box dimensions are in mm;
// values below what the ports require are raised.
type PlenumConfig struct {
	ID             string
	Type           PlenumType
	Inlet          CrossSection
	Outlet         CrossSection
	AirFlow        int
	Width          int
	Height         int
	Length         int
	InletDistance  int // inlet centreline above the box floor
	LinerThickness int // mm
}

// Plenum is a lined or bare box between two ducts. It grows whenever a
// port grows so both cross-sections always fit; it never shrinks on its own.
type Plenum struct {
	base
	plenumType    PlenumType
	inlet         *DuctConnection
	outlet        *DuctConnection
	width         int
	height        int
	length        int
	inletDistance int
	liner         int
	guard         guard
}

func NewPlenum(cfg PlenumConfig, f Formulas) *Plenum {
	p := &Plenum{
		base:          newBase(cfg.ID, f),
		plenumType:    cfg.Type,
		inlet:         NewDuctConnection(cfg.Inlet, cfg.AirFlow),
		outlet:        NewDuctConnection(cfg.Outlet, cfg.AirFlow),
		width:         cfg.Width,
		height:        cfg.Height,
		length:        cfg.Length,
		inletDistance: cfg.InletDistance,
		liner:         clamp.Value(cfg.LinerThickness, 0, 100),
	}
	if p.plenumType != PlenumHorizontal {
		p.plenumType = PlenumVertical
	}
	p.resize()

	for _, port := range []*DuctConnection{p.inlet, p.outlet} {
		port.OnDimensionsChanged(p.resize)
		port.OnDuctTypeChanged(p.resize)
	}
	p.inlet.OnAirFlowChanged(func() {
		p.guard.run(func() { p.outlet.SetAirFlow(p.inlet.AirFlow()) })
	})
	p.outlet.OnAirFlowChanged(func() {
		p.guard.run(func() { p.inlet.SetAirFlow(p.outlet.AirFlow()) })
	})
	return p
}

// Floors derived from the current port extents. Round ports count as d×d.

func (p *Plenum) lengthFloor() int {
	_, ib := p.inlet.Extent()
	_, ob := p.outlet.Extent()
	if p.plenumType == PlenumHorizontal {
		return max(ib, ob)
	}
	return ob
}

func (p *Plenum) widthFloor() int {
	ia, _ := p.inlet.Extent()
	oa, _ := p.outlet.Extent()
	return max(ia, oa)
}

func (p *Plenum) heightFloor() int {
	_, ib := p.inlet.Extent()
	_, ob := p.outlet.Extent()
	if p.plenumType == PlenumHorizontal {
		return max(ib, ob)
	}
	return ib
}

func (p *Plenum) inletDistanceRange() (lo, hi int) {
	_, ib := p.inlet.Extent()
	return ib / 2, p.height - ib/2
}

// resize raises the box to its floors in order: length, width, height,
// inlet distance. The distance range depends on the final height.
func (p *Plenum) resize() {
	p.length = max(p.length, p.lengthFloor())
	p.width = max(p.width, p.widthFloor())
	p.height = max(p.height, p.heightFloor())
	p.fitInletDistance()
}

func (p *Plenum) fitInletDistance() {
	lo, hi := p.inletDistanceRange()
	p.inletDistance = clamp.Value(p.inletDistance, lo, hi)
}

func (p *Plenum) Kind() acoustic.ElementKind { return acoustic.KindPlenum }

func (p *Plenum) Type() PlenumType        { return p.plenumType }
func (p *Plenum) Inlet() *DuctConnection  { return p.inlet }
func (p *Plenum) Outlet() *DuctConnection { return p.outlet }
func (p *Plenum) Width() int              { return p.width }
func (p *Plenum) Height() int             { return p.height }
func (p *Plenum) Length() int             { return p.length }
func (p *Plenum) InletDistance() int      { return p.inletDistance }
func (p *Plenum) LinerThickness() int     { return p.liner }
func (p *Plenum) AirFlow() int            { return p.inlet.AirFlow() }

// SetAirFlow sets the airflow through the plenum; both ports carry it
func (p *Plenum) SetAirFlow(v int) {
	p.inlet.SetAirFlow(v)
}

// SetLinerThickness sets the lining in mm, clamped to [0, 100]
func (p *Plenum) SetLinerThickness(t int) {
	p.liner = clamp.Value(t, 0, 100)
}

// SetLength accepts v only when it fits the ports, otherwise the floor wins
func (p *Plenum) SetLength(v int) {
	p.length = max(v, p.lengthFloor())
}

func (p *Plenum) SetWidth(v int) {
	p.width = max(v, p.widthFloor())
}

// SetHeight raises the box height; the inlet distance is re-fitted
func (p *Plenum) SetHeight(v int) {
	p.height = max(v, p.heightFloor())
	p.fitInletDistance()
}

// SetInletDistance sets the inlet centreline height, kept within the box
func (p *Plenum) SetInletDistance(v int) {
	p.inletDistance = v
	p.fitInletDistance()
}

// SetType switches the port layout and resizes for it
func (p *Plenum) SetType(t PlenumType) {
	if t != PlenumVertical && t != PlenumHorizontal {
		return
	}
	p.plenumType = t
	p.resize()
}

// SurfaceArea returns the interior wall area in m²
func (p *Plenum) SurfaceArea() float64 {
	l := float64(p.length) / 1000
	w := float64(p.width) / 1000
	h := float64(p.height) / 1000
	return 2 * (l*w + l*h + w*h)
}

func (p *Plenum) Attenuation() octave.Bands {
	return p.formulas.PlenumAttenuation(p.params())
}

// Noise is zero: a plenum generates no flow noise of its own
func (p *Plenum) Noise() octave.Bands {
	return octave.Bands{}
}

// params resolves the Wells geometry: the distance from the inlet centre
// to the outlet centre and the angle it makes with the outlet normal.
func (p *Plenum) params() acoustic.PlenumParams {
	l := float64(p.length) / 1000
	h := float64(p.height) / 1000
	d := float64(p.inletDistance) / 1000

	var r, cos float64
	switch p.plenumType {
	case PlenumHorizontal:
		offset := d - h/2
		r = math.Hypot(l, offset)
		cos = l / r
	default:
		r = math.Hypot(l/2, d)
		cos = d / r
	}

	return acoustic.PlenumParams{
		OutletArea:     p.outlet.Area(),
		SurfaceArea:    p.SurfaceArea(),
		Distance:       r,
		CosAngle:       cos,
		LinerThickness: float64(p.liner) / 1000,
	}
}
