package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/octave"
	"ductnoise/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		ID:          "0b6f9a52-3c41-4d7e-9a1f-5c2d8e7b4a10",
		Network:     "office",
		Description: "second floor",
		CreatedAt:   time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC),
		Links:       []string{"fan->tee"},
		Results: []report.Result{
			{
				ElementID:   "fan",
				Kind:        acoustic.KindFan,
				AirFlow:     12500,
				Noise:       octave.Bands{90, 88, 85, 82, 78, 74, 70, 65},
				NoiseLevel:  94.1,
				NoiseLevelA: 84.3,
			},
			{
				ElementID:        "tee.right",
				Kind:             acoustic.KindJunction,
				Side:             "right",
				AirFlow:          800,
				Attenuation:      octave.Uniform(4.5),
				TotalAttenuation: 13.5,
			},
		},
	}
}

func TestExporterFor(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"", "text"},
		{"text", "text"},
		{"YAML", "yaml"},
		{"yml", "yaml"},
		{"json", "json"},
	}
	for _, tt := range tests {
		t.Run("format "+tt.format, func(t *testing.T) {
			e, err := ExporterFor(tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if e.Format() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, e.Format())
			}
		})
	}

	if _, err := ExporterFor("csv"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestImporterFor(t *testing.T) {
	if i, err := ImporterFor("run.JSON"); err != nil || i.Format() != "json" {
		t.Errorf("expected json importer, got %v, %v", i, err)
	}
	if i, err := ImporterFor("run.yml"); err != nil || i.Format() != "yaml" {
		t.Errorf("expected yaml importer, got %v, %v", i, err)
	}
	if _, err := ImporterFor("run.txt"); err == nil {
		t.Error("expected error for text file")
	}
}

func TestJSONExportIsReadable(t *testing.T) {
	c := NewJSONCodec()
	var buf bytes.Buffer
	if err := c.Export(sampleReport(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{`"element_id": "tee.right"`, `"side": "right"`, `"network": "office"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output", want)
		}
	}

	rep, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(rep.Results) != 2 || rep.Results[0].Noise[0] != 90 {
		t.Errorf("unexpected parsed report %+v", rep)
	}
	if len(rep.Links) != 1 || rep.Links[0] != "fan->tee" {
		t.Errorf("expected links to survive, got %v", rep.Links)
	}
}

func TestYAMLExportIsReadable(t *testing.T) {
	c := NewYAMLCodec()
	var buf bytes.Buffer
	if err := c.Export(sampleReport(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if !strings.Contains(buf.String(), "element_id: fan") {
		t.Errorf("expected element ids in output:\n%s", buf.String())
	}

	rep, err := c.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !rep.CreatedAt.Equal(sampleReport().CreatedAt) {
		t.Errorf("expected timestamp to survive, got %v", rep.CreatedAt)
	}
	if rep.Results[1].Attenuation != octave.Uniform(4.5) {
		t.Errorf("unexpected attenuation %v", rep.Results[1].Attenuation)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := NewJSONCodec().Parse(strings.NewReader("{")); err == nil {
		t.Error("expected JSON error")
	}
	if _, err := NewYAMLCodec().Parse(strings.NewReader("results: [")); err == nil {
		t.Error("expected YAML error")
	}
}

func TestParseRejectsNonReports(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing id", `{"network": "office", "created_at": "2026-03-04T10:30:00Z", "results": []}`},
		{"missing timestamp", `{"id": "abc", "network": "office", "results": []}`},
		{"result without element", `{"id": "abc", "created_at": "2026-03-04T10:30:00Z", "results": [{"kind": "fan"}]}`},
		{"duplicate element", `{"id": "abc", "created_at": "2026-03-04T10:30:00Z", "results": [{"element_id": "fan"}, {"element_id": "fan"}]}`},
		{"network definition", `{"name": "office", "elements": [{"id": "fan", "kind": "fan"}]}`},
		{"two documents", `{"id": "abc", "created_at": "2026-03-04T10:30:00Z"} {"id": "def"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewJSONCodec().Parse(strings.NewReader(tt.data)); err == nil {
				t.Error("expected JSON parse to fail")
			}
		})
	}

	t.Run("yaml without id", func(t *testing.T) {
		_, err := NewYAMLCodec().Parse(strings.NewReader("network: office\ncreated_at: 2026-03-04T10:30:00Z\n"))
		if !errors.Is(err, ErrInvalidReport) {
			t.Errorf("expected ErrInvalidReport, got %v", err)
		}
	})

	t.Run("missing id is an invalid report", func(t *testing.T) {
		_, err := NewJSONCodec().Parse(strings.NewReader(tests[0].data))
		if !errors.Is(err, ErrInvalidReport) {
			t.Errorf("expected ErrInvalidReport, got %v", err)
		}
	})
}

func TestTextExport(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextCodec().Export(sampleReport(), &buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Network: office",
		"Run:     0b6f9a52-3c41-4d7e-9a1f-5c2d8e7b4a10",
		"Created: 2026-03-04 10:30:00 UTC",
		"12,500",
		"tee.right",
		"Loudest: fan at 84.3 dB(A)",
		"Links: fan->tee",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "8k") {
		t.Error("expected no spectra without the option")
	}

	t.Run("spectra lists every band", func(t *testing.T) {
		buf.Reset()
		c := &TextCodec{Spectra: true}
		if err := c.Export(sampleReport(), &buf); err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		for _, want := range []string{"63", "1k", "8k", "noise", "4.5"} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected %q in spectra", want)
			}
		}
	})
}
