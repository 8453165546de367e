package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/clamp"
	"ductnoise/internal/octave"
)

// Free area limits of terminals and silencers, percent of the face
const (
	MinFreeArea = 5.0
	MaxFreeArea = 100.0
)

// TerminalConfig is the initial state of a diffuser or grill
type TerminalConfig struct {
	ID       string
	Section  CrossSection
	AirFlow  int
	FreeArea float64 // percent
	Flush    bool
}

// Terminal is an air outlet discharging into a room: a diffuser or a grill.
// Its attenuation is the end reflection at the duct opening.
type Terminal struct {
	base
	*DuctConnection
	kind     acoustic.ElementKind
	freeArea float64
	flush    bool
}

func NewDiffuser(cfg TerminalConfig, f Formulas) *Terminal {
	return newTerminal(acoustic.KindDiffuser, cfg, f)
}

func NewGrill(cfg TerminalConfig, f Formulas) *Terminal {
	return newTerminal(acoustic.KindGrill, cfg, f)
}

func newTerminal(kind acoustic.ElementKind, cfg TerminalConfig, f Formulas) *Terminal {
	t := &Terminal{
		base:           newBase(cfg.ID, f),
		DuctConnection: NewDuctConnection(cfg.Section, cfg.AirFlow),
		kind:           kind,
		flush:          cfg.Flush,
	}
	t.SetFreeArea(cfg.FreeArea)
	return t
}

func (t *Terminal) Kind() acoustic.ElementKind { return t.kind }
func (t *Terminal) FreeArea() float64          { return t.freeArea }
func (t *Terminal) Flush() bool                { return t.flush }
func (t *Terminal) SetFlush(v bool)            { t.flush = v }

// SetFreeArea sets the free area in percent, clamped to [5, 100]
func (t *Terminal) SetFreeArea(p float64) {
	t.freeArea = clamp.Value(p, MinFreeArea, MaxFreeArea)
}

func (t *Terminal) Attenuation() octave.Bands {
	return t.formulas.TerminalAttenuation(t.params())
}

func (t *Terminal) Noise() octave.Bands {
	return t.formulas.TerminalNoise(t.params())
}

func (t *Terminal) params() acoustic.TerminalParams {
	return acoustic.TerminalParams{
		Kind:               t.kind,
		Area:               t.Area(),
		EquivalentDiameter: t.EquivalentDiameter(),
		FreeArea:           t.freeArea / 100,
		Flush:              t.flush,
		AirFlow:            float64(t.AirFlow()),
	}
}

// SilencerConfig is the initial state of a Silencer. Attenuation is the
// insertion loss from the manufacturer's data.
type SilencerConfig struct {
	ID          string
	Section     CrossSection
	AirFlow     int
	Length      float64 // m
	FreeArea    float64 // percent
	Attenuation octave.Bands
}

// Silencer is a dissipative silencer with a user supplied insertion loss
type Silencer struct {
	base
	*DuctConnection
	length      float64
	freeArea    float64
	attenuation *octave.Vector
}

func NewSilencer(cfg SilencerConfig, f Formulas) *Silencer {
	s := &Silencer{
		base:           newBase(cfg.ID, f),
		DuctConnection: NewDuctConnection(cfg.Section, cfg.AirFlow),
		attenuation:    octave.NewVector(octave.AttenuationRange, cfg.Attenuation),
	}
	s.SetLength(cfg.Length)
	s.SetFreeArea(cfg.FreeArea)
	return s
}

func (s *Silencer) Kind() acoustic.ElementKind { return acoustic.KindSilencer }
func (s *Silencer) Length() float64            { return s.length }
func (s *Silencer) FreeArea() float64          { return s.freeArea }

// InsertionLoss is the editable attenuation vector, bounded to [0, 99] dB
func (s *Silencer) InsertionLoss() *octave.Vector { return s.attenuation }

func (s *Silencer) SetLength(l float64) {
	s.length = clamp.Value(l, MinDuctLength, MaxDuctLength)
}

func (s *Silencer) SetFreeArea(p float64) {
	s.freeArea = clamp.Value(p, MinFreeArea, MaxFreeArea)
}

func (s *Silencer) Attenuation() octave.Bands {
	return s.attenuation.Values()
}

func (s *Silencer) Noise() octave.Bands {
	return s.formulas.SilencerNoise(acoustic.SilencerParams{
		FaceArea: s.Area(),
		FreeArea: s.freeArea / 100,
		AirFlow:  float64(s.AirFlow()),
	})
}
