package acoustic

import "ductnoise/internal/octave"

// variantConstant is the base level of branch noise per shape pairing
var variantConstant = map[JunctionVariant]float64{
	RectMainRectBranch:   12,
	RectMainRoundBranch:  10,
	RoundMainRectBranch:  11,
	RoundMainRoundBranch: 9,
}

// BranchAttenuation is the power division at the junction: the share of
// the incoming sound power that follows the evaluated path,
// 10 lg(sum of outgoing areas / area of the path).
func (Library) BranchAttenuation(p BranchParams) octave.Bands {
	total := p.Branch.Area
	if p.Sibling != nil {
		total += p.Sibling.Area
	}
	if p.Through {
		total += p.Main.Area
	}

	var path float64
	switch p.Side {
	case SideMain:
		if !p.Through {
			return octave.Bands{}
		}
		path = p.Main.Area
	default:
		path = p.Branch.Area
	}
	if path <= 0 || total <= 0 {
		return octave.Bands{}
	}
	return octave.Uniform(10 * lg(total/path))
}

// BranchNoise estimates the turbulence noise generated at the take-off
func (Library) BranchNoise(p BranchParams) octave.Bands {
	vMain := velocity(p.Main.AirFlow, p.Main.Area)
	if vMain <= 0 {
		return octave.Bands{}
	}
	if p.Side == SideMain && !p.Through {
		return teeNoise(p, vMain)
	}

	overall, ok := branchLevel(p, vMain)
	if !ok {
		return octave.Bands{}
	}
	return flowSpectrum(overall, vMain)
}

func branchLevel(p BranchParams, vMain float64) (float64, bool) {
	k := variantConstant[p.Variant]

	if p.Side == SideMain {
		if !p.Through {
			return 0, false
		}
		through := p.Main.AirFlow - p.Branch.AirFlow
		if p.Sibling != nil {
			through -= p.Sibling.AirFlow
		}
		v := velocity(through, p.Main.Area)
		if v <= 0 {
			return 0, false
		}
		level := k - 3 + 10*lg(p.Main.Area) + 50*lg(v)
		if p.Turbulence {
			level += 3
		}
		return level, true
	}

	vBranch := velocity(p.Branch.AirFlow, p.Branch.Area)
	if vBranch <= 0 {
		return 0, false
	}
	level := k + 10*lg(p.Branch.Area) + 50*lg(vMain) + 20*lg(1+vBranch/vMain)
	if p.Branch.Rounding > 0 && p.Branch.Size > 0 {
		level -= 10 * lg(1+15*p.Branch.Rounding/p.Branch.Size)
	}
	if p.Turbulence {
		level += 3
	}
	if p.Sibling != nil {
		vSibling := velocity(p.Sibling.AirFlow, p.Sibling.Area)
		level += 10 * lg(1+0.5*(vSibling/vMain)*(vSibling/vMain))
	}
	return level, true
}

// teeNoise combines the spectra of both branch sides of a T-junction,
// which has no straight main path of its own.
func teeNoise(p BranchParams, vMain float64) octave.Bands {
	sides := []BranchParams{p}
	sides[0].Side = SideRight
	if p.Sibling != nil {
		left := p
		left.Side = SideLeft
		left.Branch = *p.Sibling
		sibling := p.Branch
		left.Sibling = &sibling
		sides = append(sides, left)
	}

	var combined octave.Bands
	var found bool
	for _, side := range sides {
		level, ok := branchLevel(side, vMain)
		if !ok {
			continue
		}
		spectrum := flowSpectrum(level, vMain)
		if found {
			combined = combined.Combine(spectrum)
		} else {
			combined = spectrum
			found = true
		}
	}
	return combined
}
