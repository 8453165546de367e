package octave

import "ductnoise/internal/clamp"

// Limiter yields the legal range of a band at the moment a value is set
type Limiter interface {
	Limits(b Band) (lo, hi float64)
}

// Range is a fixed limit shared by all bands
type Range struct {
	Min float64
	Max float64
}

// Limits implements Limiter
func (r Range) Limits(Band) (float64, float64) {
	return r.Min, r.Max
}

// LimitFunc adapts a function to Limiter. It is evaluated on every set so
// bounds that depend on other mutable state are never stale.
type LimitFunc func(b Band) (lo, hi float64)

// Limits implements Limiter
func (f LimitFunc) Limits(b Band) (float64, float64) {
	return f(b)
}

// Common ranges
var (
	AttenuationRange = Range{Min: 0, Max: 99}
	SoundPowerRange  = Range{Min: 0, Max: 150}
	AbsorptionRange  = Range{Min: 0.01, Max: 0.99}
)

// Vector is an eight-band value whose bands are saturated on every write
type Vector struct {
	values Bands
	limits Limiter
}

// NewVector creates a vector bounded by limits and seeds it with initial.
// A nil limiter leaves values unconstrained.
func NewVector(limits Limiter, initial Bands) *Vector {
	v := &Vector{limits: limits}
	v.SetAll(initial)
	return v
}

// Get returns the value of band b, or 0 when b is not a valid band
func (v *Vector) Get(b Band) float64 {
	if !b.Valid() {
		return 0
	}
	return v.values[b]
}

// Set stores value in band b after clamping it to the band's current limits.
// Invalid bands are ignored.
func (v *Vector) Set(b Band, value float64) {
	if !b.Valid() {
		return
	}
	if v.limits != nil {
		lo, hi := v.limits.Limits(b)
		value = clamp.Value(value, lo, hi)
	}
	v.values[b] = value
}

// SetAll writes every band through Set
func (v *Vector) SetAll(values Bands) {
	for _, b := range All {
		v.Set(b, values[b])
	}
}

// Values returns a copy of the stored bands
func (v *Vector) Values() Bands {
	return v.values
}

// TotalAttenuation is the power sum of the eight bands
func (v *Vector) TotalAttenuation() float64 {
	return v.values.PowerSum()
}
