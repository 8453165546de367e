package acoustic

import (
	"math"

	"ductnoise/internal/octave"
)

// PlenumAttenuation is the Wells formula:
// -10 lg[ So (cos(theta)/(2 pi r^2) + (1-alpha)/(Sw alpha)) ]
func (Library) PlenumAttenuation(p PlenumParams) octave.Bands {
	var b octave.Bands
	if p.OutletArea <= 0 || p.SurfaceArea <= 0 || p.Distance <= 0 {
		return b
	}
	cos := math.Min(math.Max(p.CosAngle, 0), 1)
	for i, f := range octave.Frequencies {
		alpha := linerAbsorption(p.LinerThickness, f)
		direct := cos / (2 * math.Pi * p.Distance * p.Distance)
		reverberant := (1 - alpha) / (p.SurfaceArea * alpha)
		b[i] = math.Min(math.Max(-10*lg(p.OutletArea*(direct+reverberant)), 0), 99)
	}
	return b
}

// RoomAttenuation is the difference between the sound power entering the
// room and the pressure level at the listener: the direct and reverberant
// field term plus air absorption over the distance.
func (Library) RoomAttenuation(p RoomParams) octave.Bands {
	var b octave.Bands
	if p.Distance <= 0 || p.SurfaceArea <= 0 {
		return b
	}
	q := p.Directivity
	if q <= 0 {
		q = 2
	}
	for i, f := range octave.Frequencies {
		alpha := math.Min(math.Max(p.Absorption[i], 0.01), 0.99)
		roomConstant := p.SurfaceArea * alpha / (1 - alpha)
		field := q/(4*math.Pi*p.Distance*p.Distance) + 4/roomConstant
		b[i] = -10*lg(field) + AirAbsorption(f, p.Temperature, p.Humidity)*p.Distance
	}
	return b
}

// AirAbsorption returns the atmospheric absorption in dB/m after
// ISO 9613-1 at standard pressure. Temperature in °C, humidity in percent.
func AirAbsorption(f, temperature, humidity float64) float64 {
	const (
		t0  = 293.15
		t01 = 273.16
	)
	t := temperature + 273.15
	psat := math.Pow(10, -6.8346*math.Pow(t01/t, 1.261)+4.6151)
	h := humidity * psat

	frO := 24 + 4.04e4*h*(0.02+h)/(0.391+h)
	frN := math.Pow(t/t0, -0.5) * (9 + 280*h*math.Exp(-4.170*(math.Pow(t/t0, -1.0/3)-1)))

	f2 := f * f
	classical := 1.84e-11 * math.Pow(t/t0, 0.5)
	oxygen := 0.01275 * math.Exp(-2239.1/t) / (frO + f2/frO)
	nitrogen := 0.1068 * math.Exp(-3352.0/t) / (frN + f2/frN)
	return 8.686 * f2 * (classical + math.Pow(t/t0, -2.5)*(oxygen+nitrogen))
}
