// Package octave provides the eight-band octave vector used for every
// acoustic quantity in the duct model (63 Hz to 8 kHz).
package octave

import (
	"fmt"
	"math"

	"ductnoise/internal/clamp"
)

// Count is the number of octave bands
const Count = 8

// Band identifies one octave band
type Band int

const (
	Hz63 Band = iota
	Hz125
	Hz250
	Hz500
	Hz1000
	Hz2000
	Hz4000
	Hz8000
)

// Frequencies holds the centre frequency of every band in Hz
var Frequencies = [Count]float64{63, 125, 250, 500, 1000, 2000, 4000, 8000}

// All lists the bands in ascending order
var All = [Count]Band{Hz63, Hz125, Hz250, Hz500, Hz1000, Hz2000, Hz4000, Hz8000}

// Valid reports whether b is one of the eight bands
func (b Band) Valid() bool {
	return b >= Hz63 && b <= Hz8000
}

// Frequency returns the centre frequency in Hz, or 0 for an invalid band
func (b Band) Frequency() float64 {
	if !b.Valid() {
		return 0
	}
	return Frequencies[b]
}

func (b Band) String() string {
	f := b.Frequency()
	switch {
	case f == 0:
		return fmt.Sprintf("Band(%d)", int(b))
	case f >= 1000:
		return fmt.Sprintf("%gk", f/1000)
	default:
		return fmt.Sprintf("%g", f)
	}
}

// Bands is a plain eight-band value
type Bands [Count]float64

// Uniform returns Bands with every band set to v
func Uniform(v float64) Bands {
	var b Bands
	for i := range b {
		b[i] = v
	}
	return b
}

// PowerSum combines the bands energetically: 10*log10(sum 10^(v/10))
func (b Bands) PowerSum() float64 {
	var sum float64
	for _, v := range b {
		sum += math.Pow(10, v/10)
	}
	if sum == 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(sum)
}

// Add returns the band-wise sum
func (b Bands) Add(o Bands) Bands {
	for i := range b {
		b[i] += o[i]
	}
	return b
}

// Sub returns the band-wise difference
func (b Bands) Sub(o Bands) Bands {
	for i := range b {
		b[i] -= o[i]
	}
	return b
}

// Combine adds two level spectra energetically band by band
func (b Bands) Combine(o Bands) Bands {
	for i := range b {
		b[i] = 10 * math.Log10(math.Pow(10, b[i]/10)+math.Pow(10, o[i]/10))
	}
	return b
}

// ClampEach bounds every band to [lo, hi]
func (b Bands) ClampEach(lo, hi float64) Bands {
	for i := range b {
		b[i] = clamp.Value(b[i], lo, hi)
	}
	return b
}

// Max returns the largest band value
func (b Bands) Max() float64 {
	m := b[0]
	for _, v := range b[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

// IsZero reports whether every band is zero
func (b Bands) IsZero() bool {
	return b == Bands{}
}
