// Package report evaluates every element of a network and records the
// acoustic figures of each one.
//
// A Report is a flat list: one Result per element and one per branch of
// every composite, keyed "<id>.<side>". Results are never chained along
// links.
package report

import (
	"math"
	"time"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/domain"
	"ductnoise/internal/octave"

	"github.com/google/uuid"
)

// Result holds the figures of one element or branch
type Result struct {
	ElementID        string               `json:"element_id" yaml:"element_id"`
	Kind             acoustic.ElementKind `json:"kind" yaml:"kind"`
	Side             string               `json:"side,omitempty" yaml:"side,omitempty"`
	AirFlow          int                  `json:"air_flow,omitempty" yaml:"air_flow,omitempty"`
	Attenuation      octave.Bands         `json:"attenuation" yaml:"attenuation,flow"`
	Noise            octave.Bands         `json:"noise" yaml:"noise,flow"`
	TotalAttenuation float64              `json:"total_attenuation" yaml:"total_attenuation"`
	NoiseLevel       float64              `json:"noise_level" yaml:"noise_level"`
	NoiseLevelA      float64              `json:"noise_level_a" yaml:"noise_level_a"`
}

// Report is one evaluation of a network
type Report struct {
	ID          string    `json:"id" yaml:"id"`
	Network     string    `json:"network" yaml:"network"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string    `json:"source,omitempty" yaml:"source,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
	Links       []string  `json:"links,omitempty" yaml:"links,omitempty"`
	Results     []Result  `json:"results" yaml:"results"`
}

// Compute evaluates every element of the network in insertion order.
// Composite elements are followed by their branches.
func Compute(n *domain.Network) *Report {
	r := &Report{
		ID:          uuid.New().String(),
		Network:     n.Name,
		Description: n.Description,
		CreatedAt:   time.Now().UTC(),
	}
	for _, l := range n.Links {
		r.Links = append(r.Links, l.Key())
	}

	for _, e := range n.Elements() {
		r.Results = append(r.Results, evaluate(e.ID(), e.Kind(), "", e))

		c, ok := e.(domain.Composite)
		if !ok {
			continue
		}
		for _, b := range c.Branches() {
			side := b.Side().String()
			r.Results = append(r.Results, evaluate(e.ID()+"."+side, e.Kind(), side, b))
		}
	}

	return r
}

type evaluable interface {
	Attenuation() octave.Bands
	Noise() octave.Bands
}

type flowCarrier interface {
	AirFlow() int
}

func evaluate(id string, kind acoustic.ElementKind, side string, e evaluable) Result {
	att := e.Attenuation()
	noise := e.Noise()

	res := Result{
		ElementID:        id,
		Kind:             kind,
		Side:             side,
		Attenuation:      att,
		Noise:            noise,
		TotalAttenuation: level(att, acoustic.OverallLevel),
		NoiseLevel:       level(noise, acoustic.OverallLevel),
		NoiseLevelA:      level(noise, acoustic.AWeighted),
	}
	if f, ok := e.(flowCarrier); ok {
		res.AirFlow = f.AirFlow()
	}
	return res
}

// level combines a spectrum into one figure. An all-zero spectrum means
// the element contributes nothing and is reported as 0.
func level(b octave.Bands, combine func(octave.Bands) float64) float64 {
	if b.IsZero() {
		return 0
	}
	v := combine(b)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// Result returns the result recorded for an element or branch id
func (r *Report) Result(id string) (Result, bool) {
	for _, res := range r.Results {
		if res.ElementID == id {
			return res, true
		}
	}
	return Result{}, false
}

// Loudest returns the result with the highest A-weighted noise level
func (r *Report) Loudest() (Result, bool) {
	if len(r.Results) == 0 {
		return Result{}, false
	}
	best := r.Results[0]
	for _, res := range r.Results[1:] {
		if res.NoiseLevelA > best.NoiseLevelA {
			best = res
		}
	}
	return best, true
}
