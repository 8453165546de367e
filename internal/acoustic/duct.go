package acoustic

import (
	"math"

	"ductnoise/internal/octave"
)

// maxLinedAttenuation caps the Piening term, which overestimates high
// frequencies where sound beams down the duct centre.
const maxLinedAttenuation = 40.0

// bare sheet metal attenuation in dB/m, rows keyed by the minimum P/A ratio
var bareRectangular = []struct {
	minRatio float64
	perMetre octave.Bands
}{
	{26, octave.Bands{0.98, 0.66, 0.49, 0.33, 0.33, 0.33, 0.33, 0.33}},
	{13, octave.Bands{1.15, 0.66, 0.33, 0.23, 0.23, 0.23, 0.23, 0.23}},
	{6.5, octave.Bands{0.82, 0.66, 0.33, 0.16, 0.16, 0.16, 0.16, 0.16}},
	{0, octave.Bands{0.49, 0.33, 0.23, 0.16, 0.10, 0.07, 0.07, 0.07}},
}

var bareRound = octave.Bands{0.03, 0.03, 0.03, 0.05, 0.07, 0.07, 0.07, 0.07}

func ductSection(p DuctParams) (perimeter, area float64) {
	if p.Round {
		return math.Pi * p.Diameter, math.Pi / 4 * p.Diameter * p.Diameter
	}
	return 2 * (p.Width + p.Height), p.Width * p.Height
}

// DuctAttenuation combines the bare duct table with the Piening formula for
// lined ducts: D = 1.5 * alpha * P/A * L.
func (Library) DuctAttenuation(p DuctParams) octave.Bands {
	var b octave.Bands
	perimeter, area := ductSection(p)
	if p.Length <= 0 || area <= 0 {
		return b
	}
	ratio := perimeter / area

	bare := bareRound
	if !p.Round {
		for _, row := range bareRectangular {
			if ratio >= row.minRatio {
				bare = row.perMetre
				break
			}
		}
	}

	for i, f := range octave.Frequencies {
		att := bare[i] * p.Length
		if p.LinerThickness > 0 {
			lined := 1.5 * linerAbsorption(p.LinerThickness, f) * ratio * p.Length
			att += math.Min(lined, maxLinedAttenuation)
		}
		b[i] = math.Min(att, 99)
	}
	return b
}

// DuctNoise is the VDI 2081 flow noise of a straight duct:
// Lw = 7 + 50 lg v + 10 lg A
func (Library) DuctNoise(p DuctParams) octave.Bands {
	_, area := ductSection(p)
	v := velocity(p.AirFlow, area)
	if v <= 0 {
		return octave.Bands{}
	}
	return flowSpectrum(7+50*lg(v)+10*lg(area), v)
}
