package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/clamp"
	"ductnoise/internal/octave"
)

// MaxFanPressure is the largest total pressure rise in Pa
const MaxFanPressure = 5000.0

// FanConfig is the initial state of a Fan. SoundPower, when set, is the
// manufacturer's in-duct sound power and replaces the estimate.
type FanConfig struct {
	ID         string
	Type       acoustic.FanType
	AirFlow    int
	Pressure   float64 // Pa
	SoundPower *octave.Bands
}

// Fan is the noise source of a network. It attenuates nothing.
type Fan struct {
	base
	fanType    acoustic.FanType
	airFlow    int
	pressure   float64
	soundPower *octave.Vector
}

func NewFan(cfg FanConfig, f Formulas) *Fan {
	fan := &Fan{base: newBase(cfg.ID, f)}
	fan.SetType(cfg.Type)
	fan.SetAirFlow(cfg.AirFlow)
	fan.SetPressure(cfg.Pressure)
	if cfg.SoundPower != nil {
		fan.SetSoundPower(*cfg.SoundPower)
	}
	return fan
}

func (f *Fan) Kind() acoustic.ElementKind { return acoustic.KindFan }
func (f *Fan) Type() acoustic.FanType     { return f.fanType }
func (f *Fan) AirFlow() int               { return f.airFlow }
func (f *Fan) Pressure() float64          { return f.pressure }

// SetType selects the fan type; unknown types fall back to backward curved
// centrifugal.
func (f *Fan) SetType(t acoustic.FanType) {
	if !t.Valid() {
		t = acoustic.FanCentrifugalBackward
	}
	f.fanType = t
}

// SetAirFlow sets the airflow in m³/h, at least 1
func (f *Fan) SetAirFlow(v int) {
	f.airFlow = clamp.AirFlow(v, 1)
}

// SetPressure sets the total pressure rise, clamped to [0, 5000] Pa
func (f *Fan) SetPressure(p float64) {
	f.pressure = clamp.Value(p, 0, MaxFanPressure)
}

// SetSoundPower overrides the estimate with measured data, clamped to
// [0, 150] dB per band
func (f *Fan) SetSoundPower(b octave.Bands) {
	f.soundPower = octave.NewVector(octave.SoundPowerRange, b)
}

// ClearSoundPower returns to the estimated spectrum
func (f *Fan) ClearSoundPower() {
	f.soundPower = nil
}

// SoundPower returns the measured spectrum, or nil when estimated
func (f *Fan) SoundPower() *octave.Vector {
	return f.soundPower
}

func (f *Fan) Attenuation() octave.Bands {
	return octave.Bands{}
}

func (f *Fan) Noise() octave.Bands {
	if f.soundPower != nil {
		return f.soundPower.Values()
	}
	return f.formulas.FanNoise(acoustic.FanParams{
		Type:     f.fanType,
		AirFlow:  float64(f.airFlow),
		Pressure: f.pressure,
	})
}
