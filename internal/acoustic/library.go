package acoustic

import (
	"math"

	"ductnoise/internal/octave"
)

// SpeedOfSound in air at 20 °C, m/s
const SpeedOfSound = 343.0

// Library is the default formula set. The zero value is ready to use.
type Library struct{}

// Standard is the shared default library
var Standard Library

// aWeighting holds the A-weighting correction per octave band
var aWeighting = octave.Bands{-26.2, -16.1, -8.6, -3.2, 0, 1.2, 1.0, -1.1}

// OverallLevel combines a sound power spectrum into one level
func OverallLevel(levels octave.Bands) float64 {
	return levels.PowerSum()
}

// AWeighted returns the A-weighted overall level of a spectrum
func AWeighted(levels octave.Bands) float64 {
	return levels.Add(aWeighting).PowerSum()
}

// velocity returns the mean velocity in m/s for a flow in m³/h
func velocity(flow, area float64) float64 {
	if area <= 0 || flow <= 0 {
		return 0
	}
	return flow / 3600 / area
}

// relativeFlowSpectrum is the VDI 2081 shape of flow generated noise
func relativeFlowSpectrum(f, v float64) float64 {
	return -2 - 26*math.Log10(1.14+0.02*f/v)
}

// flowSpectrum spreads an overall level over the bands. Levels below zero
// are saturated at zero.
func flowSpectrum(overall, v float64) octave.Bands {
	var b octave.Bands
	if v <= 0 {
		return b
	}
	for i, f := range octave.Frequencies {
		b[i] = math.Max(0, overall+relativeFlowSpectrum(f, v))
	}
	return b
}

// linerAbsorption estimates the absorption coefficient of a porous liner of
// the given thickness in metres. Bare sheet metal is taken as 0.05.
func linerAbsorption(thickness, f float64) float64 {
	if thickness <= 0 {
		return 0.05
	}
	alpha := 1 - math.Exp(-f*thickness*1000/40000)
	return math.Min(math.Max(alpha, 0.05), 0.99)
}

func lg(x float64) float64 {
	return math.Log10(x)
}
