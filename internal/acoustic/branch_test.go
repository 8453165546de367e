package acoustic

import (
	"math"
	"testing"

	"ductnoise/internal/octave"
)

func junctionParams(side BranchSide) BranchParams {
	return BranchParams{
		Kind:    KindJunction,
		Variant: RectMainRectBranch,
		Side:    side,
		Main:    BranchGeometry{Area: 0.15, Size: 0.5, AirFlow: 2400},
		Branch:  BranchGeometry{Area: 0.05, Size: 0.25, AirFlow: 400},
		Through: true,
	}
}

func TestBranchAttenuationPowerDivision(t *testing.T) {
	t.Run("branch side", func(t *testing.T) {
		got := Standard.BranchAttenuation(junctionParams(SideRight))
		want := 10 * math.Log10(0.2/0.05)
		if math.Abs(got[octave.Hz500]-want) > 1e-9 {
			t.Errorf("got %v, want %v", got[octave.Hz500], want)
		}
	})

	t.Run("main side", func(t *testing.T) {
		got := Standard.BranchAttenuation(junctionParams(SideMain))
		want := 10 * math.Log10(0.2/0.15)
		if math.Abs(got[octave.Hz63]-want) > 1e-9 {
			t.Errorf("got %v, want %v", got[octave.Hz63], want)
		}
	})

	t.Run("sibling area joins the division", func(t *testing.T) {
		p := junctionParams(SideRight)
		p.Sibling = &BranchGeometry{Area: 0.05, AirFlow: 300}
		got := Standard.BranchAttenuation(p)
		want := 10 * math.Log10(0.25/0.05)
		if math.Abs(got[octave.Hz1000]-want) > 1e-9 {
			t.Errorf("got %v, want %v", got[octave.Hz1000], want)
		}
	})

	t.Run("tee has no through path", func(t *testing.T) {
		p := junctionParams(SideMain)
		p.Through = false
		if got := Standard.BranchAttenuation(p); !got.IsZero() {
			t.Errorf("expected zero, got %v", got)
		}
	})
}

func TestBranchNoise(t *testing.T) {
	t.Run("rounding lowers branch noise", func(t *testing.T) {
		straight := Standard.BranchNoise(junctionParams(SideRight))
		p := junctionParams(SideRight)
		p.Shape = ShapeRounded
		p.Branch.Rounding = 0.05
		rounded := Standard.BranchNoise(p)
		if OverallLevel(rounded) >= OverallLevel(straight) {
			t.Errorf("expected rounded take-off to be quieter")
		}
	})

	t.Run("turbulence raises noise by 3 dB", func(t *testing.T) {
		calm := Standard.BranchNoise(junctionParams(SideRight))
		p := junctionParams(SideRight)
		p.Turbulence = true
		rough := Standard.BranchNoise(p)
		if math.Abs(rough[octave.Hz63]-calm[octave.Hz63]-3) > 1e-9 {
			t.Errorf("expected +3 dB, got %v", rough[octave.Hz63]-calm[octave.Hz63])
		}
	})

	t.Run("zero branch flow is silent", func(t *testing.T) {
		p := junctionParams(SideRight)
		p.Branch.AirFlow = 0
		if got := Standard.BranchNoise(p); !got.IsZero() {
			t.Errorf("expected silence, got %v", got)
		}
	})

	t.Run("variants differ", func(t *testing.T) {
		p := junctionParams(SideRight)
		rr := Standard.BranchNoise(p)
		p.Variant = RoundMainRoundBranch
		oo := Standard.BranchNoise(p)
		if rr == oo {
			t.Errorf("expected variant to change the result")
		}
	})

	t.Run("tee main side combines both branches", func(t *testing.T) {
		p := junctionParams(SideMain)
		p.Kind = KindTJunction
		p.Through = false
		p.Main.AirFlow = 700
		p.Branch.AirFlow = 400
		p.Sibling = &BranchGeometry{Area: 0.05, Size: 0.25, AirFlow: 300}
		got := Standard.BranchNoise(p)

		right := p
		right.Side = SideRight
		if OverallLevel(got) <= OverallLevel(Standard.BranchNoise(right)) {
			t.Errorf("expected combined tee noise above a single branch")
		}

		left := p
		left.Side = SideLeft
		left.Branch = *p.Sibling
		sibling := p.Branch
		left.Sibling = &sibling
		want := Standard.BranchNoise(right).Combine(Standard.BranchNoise(left))
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Errorf("band %d: expected %v, got %v", i, want[i], got[i])
			}
		}
	})
}
