package domain

import (
	"errors"
	"testing"
)

func TestNetworkAdd(t *testing.T) {
	n := NewNetwork("office")
	duct := NewStraightDuct(DuctConfig{ID: "d1", Section: RectSection(400, 300), Length: 3}, nil)
	fan := NewFan(FanConfig{ID: "fan"}, nil)

	if err := n.Add(fan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Add(duct); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("rejects duplicate ids", func(t *testing.T) {
		err := n.Add(NewFan(FanConfig{ID: "fan"}, nil))
		if !errors.Is(err, ErrDuplicateElement) {
			t.Errorf("expected ErrDuplicateElement, got %v", err)
		}
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		if err := n.Add(NewFan(FanConfig{}, nil)); err == nil {
			t.Error("expected error for empty id")
		}
	})

	t.Run("keeps insertion order", func(t *testing.T) {
		elems := n.Elements()
		if n.Len() != 2 || elems[0].ID() != "fan" || elems[1].ID() != "d1" {
			t.Errorf("unexpected order: %v", elems)
		}
	})

	t.Run("looks up by id", func(t *testing.T) {
		if n.Element("d1") != duct {
			t.Error("expected to find d1")
		}
		if n.Element("missing") != nil {
			t.Error("expected nil for unknown id")
		}
	})
}

func TestNetworkConnect(t *testing.T) {
	n := NewNetwork("office")
	_ = n.Add(NewFan(FanConfig{ID: "fan"}, nil))
	_ = n.Add(newTestJunction(1000, 200))
	_ = n.Add(NewGrill(TerminalConfig{ID: "g1", Section: RectSection(200, 200)}, nil))

	if err := n.Connect("fan", "j1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := n.Connect("j1", "g1", PortBranch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := n.Connect("j1", "nowhere", PortOutlet)
	if !errors.Is(err, ErrUnknownElement) {
		t.Errorf("expected ErrUnknownElement, got %v", err)
	}

	if len(n.Links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(n.Links))
	}
	if n.Links[0].Key() != "fan->j1" {
		t.Errorf("expected default main port key, got %s", n.Links[0].Key())
	}
	if n.Links[1].Key() != "j1.branch->g1" {
		t.Errorf("expected branch port key, got %s", n.Links[1].Key())
	}
}
