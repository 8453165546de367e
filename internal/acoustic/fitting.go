package acoustic

import (
	"math"

	"ductnoise/internal/octave"
)

// elbow attenuation steps by f*w in kHz*mm
var (
	elbowLimits      = []float64{48, 96, 190, 380}
	elbowBare        = []float64{0, 1, 5, 8, 4}
	elbowVanes       = []float64{0, 1, 4, 6, 4}
	elbowRoundLimits = []float64{48, 96, 190}
	elbowRound       = []float64{0, 1, 2, 3}
)

func step(x float64, limits, values []float64) float64 {
	for i, limit := range limits {
		if x < limit {
			return values[i]
		}
	}
	return values[len(values)-1]
}

// BendAttenuation uses the ASHRAE elbow table, scaled for turns under 90°
func (Library) BendAttenuation(p BendParams) octave.Bands {
	var b octave.Bands
	if p.Angle <= 0 || p.Width <= 0 {
		return b
	}
	scale := math.Min(p.Angle/90, 1)
	for i, f := range octave.Frequencies {
		fw := f * p.Width
		var att float64
		switch {
		case p.Round:
			att = step(fw, elbowRoundLimits, elbowRound)
		case p.Vanes:
			att = step(fw, elbowLimits, elbowVanes)
		default:
			att = step(fw, elbowLimits, elbowBare)
		}
		b[i] = att * scale
	}
	return b
}

// BendNoise is the turbulence noise generated in the turn
func (Library) BendNoise(p BendParams) octave.Bands {
	v := velocity(p.AirFlow, p.Area)
	if v <= 0 || p.Angle <= 0 {
		return octave.Bands{}
	}
	overall := 10 + 50*lg(v) + 10*lg(p.Area) + 10*lg(p.Angle/90)
	if p.Vanes {
		overall += 2
	}
	return flowSpectrum(overall, v)
}

// damperLoss approximates the loss coefficient of an opposed blade damper
func damperLoss(angle float64) float64 {
	return 0.5 * math.Exp(0.09*angle)
}

// DamperNoise: Lw = 10 + 10 lg A + 60 lg v + 20 lg zeta
func (Library) DamperNoise(p DamperParams) octave.Bands {
	v := velocity(p.AirFlow, p.Area)
	if v <= 0 {
		return octave.Bands{}
	}
	overall := 10 + 10*lg(p.Area) + 60*lg(v) + 20*lg(damperLoss(p.BladeAngle))
	return flowSpectrum(overall, v)
}

// TerminalAttenuation is the end reflection loss of a duct opening:
// 10 lg(1 + (a c / (pi f D))^1.88), a = 0.7 flush, 1.0 free hanging.
func (Library) TerminalAttenuation(p TerminalParams) octave.Bands {
	var b octave.Bands
	if p.EquivalentDiameter <= 0 {
		return b
	}
	a := 1.0
	if p.Flush {
		a = 0.7
	}
	for i, f := range octave.Frequencies {
		b[i] = 10 * lg(1+math.Pow(a*SpeedOfSound/(math.Pi*f*p.EquivalentDiameter), 1.88))
	}
	return b
}

// TerminalNoise estimates diffuser and grill noise from the free area velocity
func (Library) TerminalNoise(p TerminalParams) octave.Bands {
	free := p.FreeArea
	if free <= 0 {
		free = 1
	}
	v := velocity(p.AirFlow, p.Area*free)
	if v <= 0 {
		return octave.Bands{}
	}
	k := 10.0
	if p.Kind == KindGrill {
		k = 5
	}
	return flowSpectrum(k+60*lg(v)+10*lg(p.Area), v)
}

// SilencerNoise is the self noise of the splitter passages
func (Library) SilencerNoise(p SilencerParams) octave.Bands {
	free := p.FreeArea
	if free <= 0 {
		free = 1
	}
	v := velocity(p.AirFlow, p.FaceArea*free)
	if v <= 0 {
		return octave.Bands{}
	}
	return flowSpectrum(-5+55*lg(v)+10*lg(p.FaceArea), v)
}
