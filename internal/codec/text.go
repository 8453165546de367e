package codec

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ductnoise/internal/octave"
	"ductnoise/internal/report"

	"github.com/dustin/go-humanize"
)

// TextCodec renders a report as an aligned table for terminals
type TextCodec struct {
	// Spectra adds the per-band attenuation and noise rows
	Spectra bool
}

// NewTextCodec creates a new text codec
func NewTextCodec() *TextCodec {
	return &TextCodec{}
}

// Format returns the codec format identifier
func (c *TextCodec) Format() string {
	return "text"
}

// Export writes the report table
func (c *TextCodec) Export(rep *report.Report, w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Network: %s\n", rep.Network)
	if rep.Description != "" {
		fmt.Fprintf(&b, "         %s\n", rep.Description)
	}
	fmt.Fprintf(&b, "Run:     %s\n", rep.ID)
	fmt.Fprintf(&b, "Created: %s\n", rep.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if rep.Source != "" {
		fmt.Fprintf(&b, "Source:  %s\n", rep.Source)
	}
	b.WriteString("\n")

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "ELEMENT\tKIND\tAIRFLOW m³/h\tATT dB\tLW dB\tLW dB(A)\t")
	for _, res := range rep.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			res.ElementID,
			res.Kind,
			airflow(res.AirFlow),
			humanize.FtoaWithDigits(res.TotalAttenuation, 1),
			humanize.FtoaWithDigits(res.NoiseLevel, 1),
			humanize.FtoaWithDigits(res.NoiseLevelA, 1),
		)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if c.Spectra {
		b.WriteString("\n")
		c.writeSpectra(&b, rep)
	}

	if len(rep.Links) > 0 {
		fmt.Fprintf(&b, "\nLinks: %s\n", strings.Join(rep.Links, ", "))
	}

	if loudest, ok := rep.Loudest(); ok && loudest.NoiseLevelA > 0 {
		fmt.Fprintf(&b, "\nLoudest: %s at %s dB(A)\n", loudest.ElementID, humanize.FtoaWithDigits(loudest.NoiseLevelA, 1))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (c *TextCodec) writeSpectra(b *strings.Builder, rep *report.Report) {
	tw := tabwriter.NewWriter(b, 0, 0, 1, ' ', tabwriter.AlignRight)

	fmt.Fprint(tw, "ELEMENT\t\t")
	for _, band := range octave.All {
		fmt.Fprintf(tw, "%s\t", band)
	}
	fmt.Fprintln(tw)

	for _, res := range rep.Results {
		writeBands(tw, res.ElementID, "att", res.Attenuation)
		writeBands(tw, "", "noise", res.Noise)
	}
	tw.Flush()
}

func writeBands(w io.Writer, id, label string, bands octave.Bands) {
	fmt.Fprintf(w, "%s\t%s\t", id, label)
	for _, v := range bands {
		fmt.Fprintf(w, "%.1f\t", v)
	}
	fmt.Fprintln(w)
}

func airflow(v int) string {
	if v == 0 {
		return "-"
	}
	return humanize.Comma(int64(v))
}
