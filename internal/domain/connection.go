package domain

import (
	"math"

	"ductnoise/internal/clamp"
)

// DuctType is the cross-section shape of a duct
type DuctType string

const (
	DuctRectangular DuctType = "rectangular"
	DuctRound       DuctType = "round"
)

// ParseDuctType maps a name to a DuctType. The empty string is rectangular.
func ParseDuctType(s string) (DuctType, bool) {
	switch DuctType(s) {
	case "", DuctRectangular:
		return DuctRectangular, true
	case DuctRound:
		return DuctRound, true
	default:
		return "", false
	}
}

// CrossSection is a duct cross-section in millimetres.
// Width and Height apply to rectangular ducts, Diameter to round ones.
type CrossSection struct {
	Type     DuctType `yaml:"type" json:"type"`
	Width    int      `yaml:"width,omitempty" json:"width,omitempty"`
	Height   int      `yaml:"height,omitempty" json:"height,omitempty"`
	Diameter int      `yaml:"diameter,omitempty" json:"diameter,omitempty"`
}

// RectSection returns a rectangular cross-section
func RectSection(width, height int) CrossSection {
	return CrossSection{Type: DuctRectangular, Width: width, Height: height}.normalized()
}

// RoundSection returns a round cross-section
func RoundSection(diameter int) CrossSection {
	return CrossSection{Type: DuctRound, Diameter: diameter}.normalized()
}

// normalized saturates every field. Both shapes keep their dimensions so
// switching the duct type back and forth does not lose geometry.
func (c CrossSection) normalized() CrossSection {
	if c.Type != DuctRound {
		c.Type = DuctRectangular
	}
	c.Width = clamp.Width(c.Width)
	c.Height = clamp.Height(c.Height)
	c.Diameter = clamp.Diameter(c.Diameter)
	return c
}

// Area returns the cross-section area in m²
func (c CrossSection) Area() float64 {
	if c.Type == DuctRound {
		d := float64(c.Diameter) / 1000
		return math.Pi / 4 * d * d
	}
	return float64(c.Width) / 1000 * float64(c.Height) / 1000
}

// Extent returns the outer dimensions in mm; a round duct counts as d×d
func (c CrossSection) Extent() (a, b int) {
	if c.Type == DuctRound {
		return c.Diameter, c.Diameter
	}
	return c.Width, c.Height
}

// Size returns the width or diameter in m
func (c CrossSection) Size() float64 {
	a, _ := c.Extent()
	return float64(a) / 1000
}

// EquivalentDiameter returns the diameter in m of a circle with the same area
func (c CrossSection) EquivalentDiameter() float64 {
	return math.Sqrt(4 * c.Area() / math.Pi)
}

// DuctConnection is a cross-section carrying an airflow in m³/h.
//
// Setters saturate their input and notify listeners synchronously before
// returning. A DuctConnection belongs to exactly one element.
type DuctConnection struct {
	section    CrossSection
	airFlow    int
	minAirFlow int

	dimensionsChanged signal
	airFlowChanged    signal
	ductTypeChanged   signal
}

// NewDuctConnection creates a standalone connection; its airflow is at least 1
func NewDuctConnection(section CrossSection, airFlow int) *DuctConnection {
	return newConnection(section, airFlow, 1)
}

// newPort creates a port of a composite; ports and branches may carry no air
func newPort(section CrossSection, airFlow int) *DuctConnection {
	return newConnection(section, airFlow, 0)
}

func newConnection(section CrossSection, airFlow, min int) *DuctConnection {
	return &DuctConnection{
		section:    section.normalized(),
		airFlow:    clamp.AirFlow(airFlow, min),
		minAirFlow: min,
	}
}

func (c *DuctConnection) DuctType() DuctType         { return c.section.Type }
func (c *DuctConnection) Width() int                 { return c.section.Width }
func (c *DuctConnection) Height() int                { return c.section.Height }
func (c *DuctConnection) Diameter() int              { return c.section.Diameter }
func (c *DuctConnection) AirFlow() int               { return c.airFlow }
func (c *DuctConnection) CrossSection() CrossSection { return c.section }
func (c *DuctConnection) Area() float64              { return c.section.Area() }
func (c *DuctConnection) Extent() (a, b int)         { return c.section.Extent() }

// EquivalentDiameter returns the equivalent round diameter in m
func (c *DuctConnection) EquivalentDiameter() float64 {
	return c.section.EquivalentDiameter()
}

// Velocity returns the mean air velocity in m/s
func (c *DuctConnection) Velocity() float64 {
	return float64(c.airFlow) / 3600 / c.section.Area()
}

// SetWidth sets the rectangular width, clamped to [100, 2000] mm
func (c *DuctConnection) SetWidth(w int) {
	c.section.Width = clamp.Width(w)
	c.dimensionsChanged.emit()
}

// SetHeight sets the rectangular height, clamped to [100, 2000] mm
func (c *DuctConnection) SetHeight(h int) {
	c.section.Height = clamp.Height(h)
	c.dimensionsChanged.emit()
}

// SetDiameter sets the round diameter, clamped to [80, 1600] mm
func (c *DuctConnection) SetDiameter(d int) {
	c.section.Diameter = clamp.Diameter(d)
	c.dimensionsChanged.emit()
}

// SetAirFlow sets the airflow in m³/h, clamped to the connection's floor
func (c *DuctConnection) SetAirFlow(v int) {
	c.airFlow = clamp.AirFlow(v, c.minAirFlow)
	c.airFlowChanged.emit()
}

// SetDuctType switches the cross-section shape. Unknown types are ignored.
func (c *DuctConnection) SetDuctType(t DuctType) {
	if t != DuctRectangular && t != DuctRound {
		return
	}
	c.section.Type = t
	c.ductTypeChanged.emit()
}

// SetCrossSection replaces the whole geometry at once
func (c *DuctConnection) SetCrossSection(s CrossSection) {
	s = s.normalized()
	typeChanged := s.Type != c.section.Type
	c.section = s
	if typeChanged {
		c.ductTypeChanged.emit()
	}
	c.dimensionsChanged.emit()
}

func (c *DuctConnection) OnDimensionsChanged(fn func()) { c.dimensionsChanged.subscribe(fn) }
func (c *DuctConnection) OnAirFlowChanged(fn func())    { c.airFlowChanged.subscribe(fn) }
func (c *DuctConnection) OnDuctTypeChanged(fn func())   { c.ductTypeChanged.subscribe(fn) }
