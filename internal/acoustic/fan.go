package acoustic

import "ductnoise/internal/octave"

type fanSpectrum struct {
	specific   octave.Bands // specific sound power, imperial reference
	bladeBand  octave.Band
	bladeBoost float64
}

var fanSpectra = map[FanType]fanSpectrum{
	FanCentrifugalBackward: {octave.Bands{35, 35, 34, 32, 31, 26, 18, 10}, octave.Hz250, 3},
	FanCentrifugalForward:  {octave.Bands{40, 38, 37, 32, 28, 25, 22, 15}, octave.Hz500, 2},
	FanAxial:               {octave.Bands{42, 39, 41, 42, 40, 37, 35, 25}, octave.Hz125, 6},
	FanPropeller:           {octave.Bands{48, 51, 58, 56, 55, 52, 46, 42}, octave.Hz63, 5},
}

// Valid reports whether t has a known spectrum
func (t FanType) Valid() bool {
	_, ok := fanSpectra[t]
	return ok
}

// FanNoise: Lw = Kw + 10 lg(Q cfm) + 20 lg(p inH2O) + blade frequency increment
func (Library) FanNoise(p FanParams) octave.Bands {
	if p.AirFlow <= 0 || p.Pressure <= 0 {
		return octave.Bands{}
	}
	curve, ok := fanSpectra[p.Type]
	if !ok {
		curve = fanSpectra[FanCentrifugalBackward]
	}

	cfm := p.AirFlow * 0.5886
	inches := p.Pressure / 249.1
	base := 10*lg(cfm) + 20*lg(inches)

	var b octave.Bands
	for i := range b {
		b[i] = curve.specific[i] + base
	}
	b[curve.bladeBand] += curve.bladeBoost
	return b.ClampEach(0, 150)
}
