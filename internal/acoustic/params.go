package acoustic

import "ductnoise/internal/octave"

// DuctParams describes a straight duct run
type DuctParams struct {
	Round          bool
	Width          float64 // m, rectangular
	Height         float64 // m, rectangular
	Diameter       float64 // m, round
	Length         float64 // m
	LinerThickness float64 // m, 0 for bare sheet metal
	AirFlow        float64 // m³/h
}

// BendParams describes an elbow
type BendParams struct {
	Round   bool
	Width   float64 // m, dimension in the plane of the turn
	Area    float64 // m²
	Angle   float64 // degrees
	Vanes   bool
	AirFlow float64 // m³/h
}

// DamperParams describes a volume control damper
type DamperParams struct {
	Area       float64 // m²
	BladeAngle float64 // degrees, 0 = fully open
	AirFlow    float64 // m³/h
}

// TerminalParams describes a diffuser or grill discharging into a room
type TerminalParams struct {
	Kind               ElementKind
	Area               float64 // m², neck area
	EquivalentDiameter float64 // m
	FreeArea           float64 // fraction 0..1
	Flush              bool
	AirFlow            float64 // m³/h
}

// SilencerParams describes a silencer for self-noise estimation
type SilencerParams struct {
	FaceArea float64 // m²
	FreeArea float64 // fraction 0..1
	AirFlow  float64 // m³/h
}

// FanParams describes a fan operating point
type FanParams struct {
	Type     FanType
	AirFlow  float64 // m³/h
	Pressure float64 // Pa, total pressure rise
}

// PlenumParams describes a plenum box for the Wells formula
type PlenumParams struct {
	OutletArea     float64 // m²
	SurfaceArea    float64 // m², interior wall area
	Distance       float64 // m, inlet to outlet
	CosAngle       float64 // angle between distance line and outlet normal
	LinerThickness float64 // m
}

// RoomParams describes the receiving room
type RoomParams struct {
	SurfaceArea float64      // m²
	Absorption  octave.Bands // mean absorption coefficient per band
	Distance    float64      // m, source to listener
	Directivity float64      // Q factor
	Temperature float64      // °C
	Humidity    float64      // % relative
}

// BranchGeometry is one side of a junction as seen by the formulas
type BranchGeometry struct {
	Area     float64 // m²
	Size     float64 // m, width or diameter at the take-off
	AirFlow  float64 // m³/h
	Rounding float64 // m, 0 for straight take-offs
}

// BranchParams is the full input of the junction formulas
type BranchParams struct {
	Kind       ElementKind
	Variant    JunctionVariant
	Side       BranchSide
	Shape      BranchShape
	Turbulence bool

	Main    BranchGeometry
	Branch  BranchGeometry
	Sibling *BranchGeometry
	// Through is false for a T-junction, which has no straight main path
	Through bool
}
