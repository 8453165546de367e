package domain

import (
	"math"

	"ductnoise/internal/acoustic"
)

// geometryFunc returns the area in m² and the take-off size in m that the
// formulas expect for one side of a junction.
type geometryFunc func(CrossSection) (area, size float64)

func rectGeometry(c CrossSection) (float64, float64) {
	return float64(c.Width) / 1000 * float64(c.Height) / 1000, float64(c.Width) / 1000
}

func roundGeometry(c CrossSection) (float64, float64) {
	d := float64(c.Diameter) / 1000
	return math.Pi / 4 * d * d, d
}

type shapePair struct {
	main, branch DuctType
}

// takeOff selects the formula variant and geometry for a shape pairing
type takeOff struct {
	variant acoustic.JunctionVariant
	main    geometryFunc
	branch  geometryFunc
}

var takeOffs = map[shapePair]takeOff{
	{DuctRectangular, DuctRectangular}: {acoustic.RectMainRectBranch, rectGeometry, rectGeometry},
	{DuctRectangular, DuctRound}:       {acoustic.RectMainRoundBranch, rectGeometry, roundGeometry},
	{DuctRound, DuctRectangular}:       {acoustic.RoundMainRectBranch, roundGeometry, rectGeometry},
	{DuctRound, DuctRound}:             {acoustic.RoundMainRoundBranch, roundGeometry, roundGeometry},
}

// junctionShape describes the junction a branch computation runs against
type junctionShape struct {
	kind       acoustic.ElementKind
	turbulence bool
	// through is true when the main duct continues past the take-off
	through bool
}

// branchParams resolves the current state of a junction into formula input.
// mainFlow is the combined airflow on the main side of the take-off.
func branchParams(j junctionShape, side acoustic.BranchSide, main *DuctConnection, mainFlow int, branch, sibling *BranchTemplate) acoustic.BranchParams {
	t := takeOffs[shapePair{main.DuctType(), branch.DuctType()}]

	p := acoustic.BranchParams{
		Kind:       j.kind,
		Variant:    t.variant,
		Side:       side,
		Shape:      branch.BranchType(),
		Turbulence: j.turbulence,
		Through:    j.through,
	}

	area, size := t.main(main.CrossSection())
	p.Main = acoustic.BranchGeometry{Area: area, Size: size, AirFlow: float64(mainFlow)}
	p.Branch = branchGeometry(t.branch, branch)

	if sibling != nil {
		st := takeOffs[shapePair{main.DuctType(), sibling.DuctType()}]
		g := branchGeometry(st.branch, sibling)
		p.Sibling = &g
	}
	return p
}

func branchGeometry(f geometryFunc, b *BranchTemplate) acoustic.BranchGeometry {
	area, size := f(b.CrossSection())
	return acoustic.BranchGeometry{
		Area:     area,
		Size:     size,
		AirFlow:  float64(b.AirFlow()),
		Rounding: b.effectiveRounding(),
	}
}

// fitBranches bounds two branch flows to a total. A branch that alone
// consumes the total takes all of it, right first; otherwise both shrink
// proportionally.
func fitBranches(total, right, left int) (int, int) {
	switch {
	case right+left <= total:
		return right, left
	case right >= total:
		return total, 0
	case left >= total:
		return 0, total
	default:
		return rescale(total, right, left)
	}
}

// rescale splits total in the ratio right:left. Without a previous ratio
// the split is even, the odd unit going right.
func rescale(total, right, left int) (int, int) {
	sum := right + left
	if sum <= 0 {
		r := (total + 1) / 2
		return r, total - r
	}
	r := int(math.Round(float64(total) * float64(right) / float64(sum)))
	return r, total - r
}
