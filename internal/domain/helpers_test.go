package domain

import (
	"testing"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/octave"
)

// recordingFormulas wraps the standard library and keeps the parameters of
// every branch and plenum call.
type recordingFormulas struct {
	acoustic.Library
	branch []acoustic.BranchParams
	plenum []acoustic.PlenumParams
}

func (r *recordingFormulas) BranchAttenuation(p acoustic.BranchParams) octave.Bands {
	r.branch = append(r.branch, p)
	return octave.Uniform(1)
}

func (r *recordingFormulas) BranchNoise(p acoustic.BranchParams) octave.Bands {
	r.branch = append(r.branch, p)
	return octave.Uniform(2)
}

func (r *recordingFormulas) PlenumAttenuation(p acoustic.PlenumParams) octave.Bands {
	r.plenum = append(r.plenum, p)
	return octave.Uniform(3)
}

func (r *recordingFormulas) lastBranch(t *testing.T) acoustic.BranchParams {
	t.Helper()
	if len(r.branch) == 0 {
		t.Fatal("expected a branch formula call")
	}
	return r.branch[len(r.branch)-1]
}

func assertAirFlow(t *testing.T, name string, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("expected %s airflow %d, got %d", name, want, got)
	}
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	const epsilon = 1e-9
	if diff := got - want; diff > epsilon || diff < -epsilon {
		t.Errorf("expected %s %.9f, got %.9f", name, want, got)
	}
}
