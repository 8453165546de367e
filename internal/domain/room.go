package domain

import (
	"ductnoise/internal/acoustic"
	"ductnoise/internal/clamp"
	"ductnoise/internal/octave"
)

// Room limits
const (
	MinRoomDimension = 1.0   // m
	MaxRoomDimension = 200.0 // m
	MinTemperature   = -20.0 // °C
	MaxTemperature   = 50.0  // °C
	MinDistance      = 0.1   // m
	MaxDistance      = 50.0  // m
	MinDirectivity   = 1.0
	MaxDirectivity   = 8.0
)

// DefaultDirectivity is a source flush with one surface
const DefaultDirectivity = 2.0

// RoomConfig is the initial state of a Room
type RoomConfig struct {
	ID          string
	Width       float64 // m
	Length      float64 // m
	Height      float64 // m
	Temperature float64 // °C
	Humidity    float64 // %
	Distance    float64 // m, terminal to listener
	Directivity float64 // Q, 0 selects DefaultDirectivity
	Absorption  octave.Bands
	Extra       octave.Bands
}

// Room is the receiving room at the end of a path. Its attenuation converts
// the sound power entering the room to the pressure level at the listener.
//
// Absorption is the mean coefficient of the room surfaces. Extra is the
// absorption added by furnishing and treatment; the sum of both may not
// exceed 0.99 in any band.
type Room struct {
	base
	width       float64
	length      float64
	height      float64
	temperature float64
	humidity    float64
	distance    float64
	directivity float64
	absorption  *octave.Vector
	extra       *octave.Vector
}

func NewRoom(cfg RoomConfig, f Formulas) *Room {
	r := &Room{base: newBase(cfg.ID, f)}
	r.SetDimensions(cfg.Width, cfg.Length, cfg.Height)
	r.SetTemperature(cfg.Temperature)
	r.SetHumidity(cfg.Humidity)
	r.SetDistance(cfg.Distance)
	if cfg.Directivity == 0 {
		cfg.Directivity = DefaultDirectivity
	}
	r.SetDirectivity(cfg.Directivity)

	r.absorption = octave.NewVector(octave.AbsorptionRange, cfg.Absorption)
	r.extra = octave.NewVector(octave.LimitFunc(r.extraLimits), cfg.Extra)
	return r
}

// extraLimits bounds extra absorption against the current surface absorption
func (r *Room) extraLimits(b octave.Band) (float64, float64) {
	return 0, max(0, octave.AbsorptionRange.Max-r.absorption.Get(b))
}

func (r *Room) Kind() acoustic.ElementKind { return acoustic.KindRoom }

func (r *Room) Width() float64       { return r.width }
func (r *Room) Length() float64      { return r.length }
func (r *Room) Height() float64      { return r.height }
func (r *Room) Temperature() float64 { return r.temperature }
func (r *Room) Humidity() float64    { return r.humidity }
func (r *Room) Distance() float64    { return r.distance }
func (r *Room) Directivity() float64 { return r.directivity }

// Absorption is the surface absorption vector, bounded to [0.01, 0.99]
func (r *Room) Absorption() *octave.Vector { return r.absorption }

// Extra is the added absorption vector, bounded to 0.99 minus the surface
// absorption of the band at the time of each write
func (r *Room) Extra() *octave.Vector { return r.extra }

// SetDimensions sets the room size in m, each clamped to [1, 200]
func (r *Room) SetDimensions(width, length, height float64) {
	r.width = clamp.Value(width, MinRoomDimension, MaxRoomDimension)
	r.length = clamp.Value(length, MinRoomDimension, MaxRoomDimension)
	r.height = clamp.Value(height, MinRoomDimension, MaxRoomDimension)
}

func (r *Room) SetTemperature(t float64) {
	r.temperature = clamp.Value(t, MinTemperature, MaxTemperature)
}

func (r *Room) SetHumidity(h float64) {
	r.humidity = clamp.Percent(h)
}

func (r *Room) SetDistance(d float64) {
	r.distance = clamp.Value(d, MinDistance, MaxDistance)
}

func (r *Room) SetDirectivity(q float64) {
	r.directivity = clamp.Value(q, MinDirectivity, MaxDirectivity)
}

// SurfaceArea returns the area of all six room surfaces in m²
func (r *Room) SurfaceArea() float64 {
	return 2 * (r.width*r.length + r.width*r.height + r.length*r.height)
}

// TotalAbsorption is surface plus extra absorption per band
func (r *Room) TotalAbsorption() octave.Bands {
	return r.absorption.Values().Add(r.extra.Values())
}

func (r *Room) Attenuation() octave.Bands {
	return r.formulas.RoomAttenuation(acoustic.RoomParams{
		SurfaceArea: r.SurfaceArea(),
		Absorption:  r.TotalAbsorption(),
		Distance:    r.distance,
		Directivity: r.directivity,
		Temperature: r.temperature,
		Humidity:    r.humidity,
	})
}

// Noise is zero: the room is a receiver
func (r *Room) Noise() octave.Bands {
	return octave.Bands{}
}
