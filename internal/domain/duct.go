package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/clamp"
	"ductnoise/internal/octave"
)

// Straight duct limits
const (
	MinDuctLength     = 0.1   // m
	MaxDuctLength     = 100.0 // m
	MaxLinerThickness = 100   // mm
)

// DuctConfig is the initial state of a StraightDuct
type DuctConfig struct {
	ID             string
	Section        CrossSection
	AirFlow        int
	Length         float64 // m
	LinerThickness int     // mm
}

// StraightDuct is a straight run of duct, optionally lined
type StraightDuct struct {
	base
	*DuctConnection
	length float64
	liner  int
}

func NewStraightDuct(cfg DuctConfig, f Formulas) *StraightDuct {
	d := &StraightDuct{
		base:           newBase(cfg.ID, f),
		DuctConnection: NewDuctConnection(cfg.Section, cfg.AirFlow),
	}
	d.SetLength(cfg.Length)
	d.SetLinerThickness(cfg.LinerThickness)
	return d
}

func (d *StraightDuct) Kind() acoustic.ElementKind { return acoustic.KindDuct }
func (d *StraightDuct) Length() float64            { return d.length }
func (d *StraightDuct) LinerThickness() int        { return d.liner }

// SetLength sets the length in m, clamped to [0.1, 100]
func (d *StraightDuct) SetLength(l float64) {
	d.length = clamp.Value(l, MinDuctLength, MaxDuctLength)
}

// SetLinerThickness sets the lining in mm, clamped to [0, 100]
func (d *StraightDuct) SetLinerThickness(t int) {
	d.liner = clamp.Value(t, 0, MaxLinerThickness)
}

func (d *StraightDuct) Attenuation() octave.Bands {
	return d.formulas.DuctAttenuation(d.params())
}

func (d *StraightDuct) Noise() octave.Bands {
	return d.formulas.DuctNoise(d.params())
}

func (d *StraightDuct) params() acoustic.DuctParams {
	s := d.CrossSection()
	return acoustic.DuctParams{
		Round:          s.Type == DuctRound,
		Width:          float64(s.Width) / 1000,
		Height:         float64(s.Height) / 1000,
		Diameter:       float64(s.Diameter) / 1000,
		Length:         d.length,
		LinerThickness: float64(d.liner) / 1000,
		AirFlow:        float64(d.AirFlow()),
	}
}

// BendConfig is the initial state of a Bend
type BendConfig struct {
	ID      string
	Section CrossSection
	AirFlow int
	Angle   float64 // degrees
	Vanes   bool
}

// Bend is an elbow, with or without turning vanes
type Bend struct {
	base
	*DuctConnection
	angle float64
	vanes bool
}

func NewBend(cfg BendConfig, f Formulas) *Bend {
	b := &Bend{
		base:           newBase(cfg.ID, f),
		DuctConnection: NewDuctConnection(cfg.Section, cfg.AirFlow),
		vanes:          cfg.Vanes,
	}
	b.SetAngle(cfg.Angle)
	return b
}

func (b *Bend) Kind() acoustic.ElementKind { return acoustic.KindBend }
func (b *Bend) Angle() float64             { return b.angle }
func (b *Bend) Vanes() bool                { return b.vanes }
func (b *Bend) SetVanes(v bool)            { b.vanes = v }

// SetAngle sets the turning angle in degrees, clamped to [0, 180]
func (b *Bend) SetAngle(a float64) {
	b.angle = clamp.Value(a, 0, 180)
}

func (b *Bend) Attenuation() octave.Bands {
	return b.formulas.BendAttenuation(b.params())
}

func (b *Bend) Noise() octave.Bands {
	return b.formulas.BendNoise(b.params())
}

func (b *Bend) params() acoustic.BendParams {
	s := b.CrossSection()
	return acoustic.BendParams{
		Round:   s.Type == DuctRound,
		Width:   s.Size(),
		Area:    s.Area(),
		Angle:   b.angle,
		Vanes:   b.vanes,
		AirFlow: float64(b.AirFlow()),
	}
}

// DamperConfig is the initial state of a Damper
type DamperConfig struct {
	ID         string
	Section    CrossSection
	AirFlow    int
	BladeAngle float64 // degrees, 0 = fully open
}

// Damper is a volume control damper. It only generates noise.
type Damper struct {
	base
	*DuctConnection
	bladeAngle float64
}

func NewDamper(cfg DamperConfig, f Formulas) *Damper {
	d := &Damper{
		base:           newBase(cfg.ID, f),
		DuctConnection: NewDuctConnection(cfg.Section, cfg.AirFlow),
	}
	d.SetBladeAngle(cfg.BladeAngle)
	return d
}

func (d *Damper) Kind() acoustic.ElementKind { return acoustic.KindDamper }
func (d *Damper) BladeAngle() float64        { return d.bladeAngle }

// SetBladeAngle sets the blade angle in degrees, clamped to [0, 80]
func (d *Damper) SetBladeAngle(a float64) {
	d.bladeAngle = clamp.Value(a, 0, 80)
}

func (d *Damper) Attenuation() octave.Bands {
	return octave.Bands{}
}

func (d *Damper) Noise() octave.Bands {
	return d.formulas.DamperNoise(acoustic.DamperParams{
		Area:       d.Area(),
		BladeAngle: d.bladeAngle,
		AirFlow:    float64(d.AirFlow()),
	})
}
