// Package acoustic is the empirical formula library behind the duct model.
//
// Every function is pure: it takes plain numbers (areas in m², lengths in m,
// airflow in m³/h, angles in degrees) and returns an octave.Bands value.
// Noise results are sound power levels in dB re 1 pW; attenuation results
// are level reductions in dB.
package acoustic

// ElementKind names the element a formula is evaluated for
type ElementKind string

const (
	KindDuct           ElementKind = "duct"
	KindBend           ElementKind = "bend"
	KindDamper         ElementKind = "damper"
	KindDiffuser       ElementKind = "diffuser"
	KindGrill          ElementKind = "grill"
	KindSilencer       ElementKind = "silencer"
	KindFan            ElementKind = "fan"
	KindPlenum         ElementKind = "plenum"
	KindRoom           ElementKind = "room"
	KindJunction       ElementKind = "junction"
	KindDoubleJunction ElementKind = "double_junction"
	KindTJunction      ElementKind = "t_junction"
)

// Kinds lists every known element kind
var Kinds = []ElementKind{
	KindDuct, KindBend, KindDamper, KindDiffuser, KindGrill, KindSilencer,
	KindFan, KindPlenum, KindRoom, KindJunction, KindDoubleJunction, KindTJunction,
}

// Valid reports whether k is a known kind
func (k ElementKind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// BranchSide selects which path through a junction is evaluated
type BranchSide int

const (
	SideMain BranchSide = iota
	SideRight
	SideLeft
)

func (s BranchSide) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	default:
		return "main"
	}
}

// Opposite returns the sibling side of a branch. Main has no sibling.
func (s BranchSide) Opposite() BranchSide {
	switch s {
	case SideRight:
		return SideLeft
	case SideLeft:
		return SideRight
	default:
		return SideMain
	}
}

// BranchShape is the edge profile where a branch leaves the main duct
type BranchShape int

const (
	ShapeStraight BranchShape = iota
	ShapeRounded
)

func (s BranchShape) String() string {
	if s == ShapeRounded {
		return "rounded"
	}
	return "straight"
}

// JunctionVariant selects the formula set for a main/branch shape pairing
type JunctionVariant int

const (
	RectMainRectBranch JunctionVariant = iota
	RectMainRoundBranch
	RoundMainRectBranch
	RoundMainRoundBranch
)

// FanType selects the specific sound power spectrum of a fan
type FanType string

const (
	FanCentrifugalBackward FanType = "centrifugal_backward"
	FanCentrifugalForward  FanType = "centrifugal_forward"
	FanAxial               FanType = "axial"
	FanPropeller           FanType = "propeller"
)
