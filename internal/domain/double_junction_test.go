package domain

import (
	"testing"

	"ductnoise/internal/acoustic"
)

func newTestDoubleJunction(inlet, right, left int, f Formulas) *DoubleJunction {
	return NewDoubleJunction(DoubleJunctionConfig{
		ID:      "dj",
		Main:    RectSection(600, 400),
		AirFlow: inlet,
		Right:   BranchConfig{Section: RectSection(250, 200), AirFlow: right},
		Left:    BranchConfig{Section: RoundSection(200), AirFlow: left},
	}, f)
}

func assertDoubleJunctionConserves(t *testing.T, d *DoubleJunction) {
	t.Helper()
	in, out := d.Inlet().AirFlow(), d.Outlet().AirFlow()
	r, l := d.Right().AirFlow(), d.Left().AirFlow()
	if in != out+r+l {
		t.Errorf("expected inlet %d = outlet %d + right %d + left %d", in, out, r, l)
	}
	if out < 0 || r < 0 || l < 0 {
		t.Errorf("expected non-negative flows, got outlet %d right %d left %d", out, r, l)
	}
}

func TestNewDoubleJunctionFitsBranches(t *testing.T) {
	tests := []struct {
		name                 string
		inlet, right, left   int
		wantR, wantL, wantOut int
	}{
		{"branches fit", 1000, 600, 300, 600, 300, 100},
		{"right alone consumes the inlet", 1000, 1200, 300, 1000, 0, 0},
		{"left alone consumes the inlet", 1000, 300, 1500, 0, 1000, 0},
		{"both rescaled", 1000, 700, 500, 583, 417, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDoubleJunction(tt.inlet, tt.right, tt.left, nil)
			assertAirFlow(t, "right", d.Right().AirFlow(), tt.wantR)
			assertAirFlow(t, "left", d.Left().AirFlow(), tt.wantL)
			assertAirFlow(t, "outlet", d.Outlet().AirFlow(), tt.wantOut)
			assertDoubleJunctionConserves(t, d)
		})
	}
}

func TestDoubleJunctionBranchSaturation(t *testing.T) {
	d := newTestDoubleJunction(1000, 300, 200, nil)
	assertAirFlow(t, "outlet", d.Outlet().AirFlow(), 500)

	d.Right().SetAirFlow(900)

	assertAirFlow(t, "right", d.Right().AirFlow(), 800)
	assertAirFlow(t, "left", d.Left().AirFlow(), 200)
	assertAirFlow(t, "outlet", d.Outlet().AirFlow(), 0)

	d.Left().SetAirFlow(100)
	assertAirFlow(t, "outlet", d.Outlet().AirFlow(), 100)
	assertDoubleJunctionConserves(t, d)
}

func TestDoubleJunctionSetTotalAirFlow(t *testing.T) {
	t.Run("rescales to the previous ratio", func(t *testing.T) {
		d := newTestDoubleJunction(3000, 600, 400, nil)
		d.SetTotalAirFlow(2000)

		assertAirFlow(t, "right", d.Right().AirFlow(), 1200)
		assertAirFlow(t, "left", d.Left().AirFlow(), 800)
		assertAirFlow(t, "outlet", d.Outlet().AirFlow(), 1000)
		assertDoubleJunctionConserves(t, d)
	})

	t.Run("total equal to inlet empties the outlet", func(t *testing.T) {
		d := newTestDoubleJunction(2000, 300, 100, nil)
		d.SetTotalAirFlow(2000)

		assertAirFlow(t, "right", d.Right().AirFlow(), 1500)
		assertAirFlow(t, "left", d.Left().AirFlow(), 500)
		assertAirFlow(t, "outlet", d.Outlet().AirFlow(), 0)
	})

	t.Run("total above inlet saturates at the inlet", func(t *testing.T) {
		d := newTestDoubleJunction(1000, 100, 300, nil)
		d.SetTotalAirFlow(4000)

		assertAirFlow(t, "right", d.Right().AirFlow(), 250)
		assertAirFlow(t, "left", d.Left().AirFlow(), 750)
		assertAirFlow(t, "inlet", d.Inlet().AirFlow(), 1000)
		assertDoubleJunctionConserves(t, d)
	})

	t.Run("outlet authoritative grows the inlet", func(t *testing.T) {
		d := newTestDoubleJunction(1000, 100, 300, nil)
		d.SetAirFlow(ConnectionOutlet, 600)
		d.SetTotalAirFlow(4000)

		assertAirFlow(t, "right", d.Right().AirFlow(), 1000)
		assertAirFlow(t, "left", d.Left().AirFlow(), 3000)
		assertAirFlow(t, "inlet", d.Inlet().AirFlow(), 4600)
		assertDoubleJunctionConserves(t, d)
	})
}

func TestDoubleJunctionSides(t *testing.T) {
	d := newTestDoubleJunction(1000, 600, 300, nil)

	d.SetAirFlow(ConnectionOutlet, 200)
	assertAirFlow(t, "inlet", d.Inlet().AirFlow(), 1100)

	d.Left().SetAirFlow(500)
	assertAirFlow(t, "inlet", d.Inlet().AirFlow(), 1300)

	d.SetAirFlow(ConnectionInlet, 450)
	assertAirFlow(t, "right", d.Right().AirFlow(), 450)
	assertAirFlow(t, "left", d.Left().AirFlow(), 0)
	assertAirFlow(t, "outlet", d.Outlet().AirFlow(), 0)
	assertDoubleJunctionConserves(t, d)
}

func TestDoubleJunctionSiblingLookup(t *testing.T) {
	f := &recordingFormulas{}
	d := newTestDoubleJunction(2000, 600, 300, f)

	if d.Right().Sibling() != d.Left() || d.Left().Sibling() != d.Right() {
		t.Fatal("expected branches to resolve each other as siblings")
	}
	if d.Branch(acoustic.SideMain) != nil {
		t.Error("expected no branch on the main side")
	}

	d.Left().Noise()
	p := f.lastBranch(t)
	if p.Side != acoustic.SideLeft {
		t.Errorf("expected left side, got %s", p.Side)
	}
	if p.Variant != acoustic.RectMainRoundBranch {
		t.Errorf("expected rectangular main with round branch, got %d", p.Variant)
	}
	assertNear(t, "branch airflow", p.Branch.AirFlow, 300)
	if p.Sibling == nil {
		t.Fatal("expected sibling geometry")
	}
	assertNear(t, "sibling airflow", p.Sibling.AirFlow, 600)
	assertNear(t, "sibling area", p.Sibling.Area, 0.05)

	if got := len(d.Branches()); got != 2 {
		t.Errorf("expected 2 branches, got %d", got)
	}
}
