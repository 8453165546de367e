package report

import (
	"math"
	"testing"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/domain"
	"ductnoise/internal/octave"

	"github.com/google/uuid"
)

func testNetwork(t *testing.T) *domain.Network {
	t.Helper()

	n := domain.NewNetwork("lab")
	n.Description = "test rig"
	elements := []domain.Element{
		domain.NewFan(domain.FanConfig{ID: "fan", Type: acoustic.FanAxial, AirFlow: 2000, Pressure: 300}, nil),
		domain.NewDamper(domain.DamperConfig{ID: "vcd", Section: domain.RectSection(400, 300), AirFlow: 2000}, nil),
		domain.NewJunction(domain.JunctionConfig{
			ID:      "tee",
			Main:    domain.RectSection(400, 300),
			AirFlow: 2000,
			Branch:  domain.BranchConfig{Section: domain.RoundSection(200), AirFlow: 500},
		}, nil),
		domain.NewDoubleJunction(domain.DoubleJunctionConfig{
			ID:      "cross",
			Main:    domain.RectSection(400, 300),
			AirFlow: 1500,
			Right:   domain.BranchConfig{Section: domain.RectSection(200, 200), AirFlow: 400},
			Left:    domain.BranchConfig{Section: domain.RectSection(200, 200), AirFlow: 300},
		}, nil),
		domain.NewRoom(domain.RoomConfig{ID: "office", Width: 5, Length: 5, Height: 3, Distance: 1.5, Absorption: octave.Uniform(0.2)}, nil),
	}
	for _, e := range elements {
		if err := n.Add(e); err != nil {
			t.Fatalf("failed to add %s: %v", e.ID(), err)
		}
	}
	for _, l := range []domain.Link{
		{From: "fan", To: "vcd"},
		{From: "tee", To: "cross", Port: domain.PortOutlet},
		{From: "cross", To: "office", Port: domain.PortLeft},
	} {
		if err := n.Connect(l.From, l.To, l.Port); err != nil {
			t.Fatalf("failed to connect %s: %v", l.Key(), err)
		}
	}
	return n
}

func TestCompute(t *testing.T) {
	n := testNetwork(t)
	r := Compute(n)

	if _, err := uuid.Parse(r.ID); err != nil {
		t.Errorf("expected a UUID run id, got %q", r.ID)
	}
	if r.Network != "lab" || r.Description != "test rig" {
		t.Errorf("unexpected header %q / %q", r.Network, r.Description)
	}
	if r.CreatedAt.IsZero() {
		t.Error("expected a timestamp")
	}

	wantIDs := []string{"fan", "vcd", "tee", "tee.right", "cross", "cross.right", "cross.left", "office"}
	if len(r.Results) != len(wantIDs) {
		t.Fatalf("expected %d results, got %d", len(wantIDs), len(r.Results))
	}
	for i, id := range wantIDs {
		if r.Results[i].ElementID != id {
			t.Errorf("result %d: expected %s, got %s", i, id, r.Results[i].ElementID)
		}
	}

	t.Run("links are recorded in order", func(t *testing.T) {
		want := []string{"fan->vcd", "tee.outlet->cross", "cross.left->office"}
		if len(r.Links) != len(want) {
			t.Fatalf("expected links %v, got %v", want, r.Links)
		}
		for i := range want {
			if r.Links[i] != want[i] {
				t.Errorf("link %d: expected %s, got %s", i, want[i], r.Links[i])
			}
		}
	})

	t.Run("branches carry their side and parent kind", func(t *testing.T) {
		res, ok := r.Result("cross.left")
		if !ok {
			t.Fatal("expected cross.left")
		}
		if res.Side != "left" || res.Kind != acoustic.KindDoubleJunction {
			t.Errorf("unexpected branch result %+v", res)
		}
		if res.AirFlow != 300 {
			t.Errorf("expected branch airflow 300, got %d", res.AirFlow)
		}
	})

	t.Run("figures match the element", func(t *testing.T) {
		fan := n.Element("fan")
		res, _ := r.Result("fan")
		if res.Noise != fan.Noise() {
			t.Errorf("expected fan noise %v, got %v", fan.Noise(), res.Noise)
		}
		if math.Abs(res.NoiseLevel-acoustic.OverallLevel(fan.Noise())) > 1e-9 {
			t.Errorf("unexpected overall level %v", res.NoiseLevel)
		}
		if math.Abs(res.NoiseLevelA-acoustic.AWeighted(fan.Noise())) > 1e-9 {
			t.Errorf("unexpected A-weighted level %v", res.NoiseLevelA)
		}
		if res.AirFlow != 2000 {
			t.Errorf("expected fan airflow 2000, got %d", res.AirFlow)
		}
	})

	t.Run("silent elements report zero", func(t *testing.T) {
		vcd, _ := r.Result("vcd")
		if vcd.TotalAttenuation != 0 {
			t.Errorf("expected no damper attenuation, got %v", vcd.TotalAttenuation)
		}
		room, _ := r.Result("office")
		if room.NoiseLevel != 0 || room.NoiseLevelA != 0 || room.AirFlow != 0 {
			t.Errorf("expected a silent room without airflow, got %+v", room)
		}
		if room.TotalAttenuation == 0 {
			t.Error("expected room attenuation")
		}
	})
}

func TestComputeAssignsFreshIDs(t *testing.T) {
	n := testNetwork(t)
	if Compute(n).ID == Compute(n).ID {
		t.Error("expected distinct run ids")
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		in   octave.Bands
		want float64
	}{
		{"all zero is silent", octave.Bands{}, 0},
		{"single band", octave.Bands{10, 0, 0, 0, 0, 0, 0, 0}, 10 * math.Log10(10+7)},
		{"uniform", octave.Uniform(50), 50 + 10*math.Log10(8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := level(tt.in, acoustic.OverallLevel)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLoudest(t *testing.T) {
	r := &Report{Results: []Result{
		{ElementID: "a", NoiseLevelA: 30},
		{ElementID: "b", NoiseLevelA: 45},
		{ElementID: "c", NoiseLevelA: 40},
	}}
	res, ok := r.Loudest()
	if !ok || res.ElementID != "b" {
		t.Errorf("expected b, got %+v", res)
	}

	if _, ok := (&Report{}).Loudest(); ok {
		t.Error("expected no result for an empty report")
	}
}
