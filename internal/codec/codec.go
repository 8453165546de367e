package codec

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ductnoise/internal/report"
)

// Importer interface for reading reports back from exported files
type Importer interface {
	Parse(r io.Reader) (*report.Report, error)
	Format() string
}

// Exporter interface for writing reports in various formats
type Exporter interface {
	Export(rep *report.Report, w io.Writer) error
	Format() string
}

// ErrInvalidReport is returned when a parsed document is not a report
var ErrInvalidReport = errors.New("invalid report")

// checkReport rejects documents that decoded cleanly but cannot be archived
func checkReport(rep *report.Report) error {
	if rep.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidReport)
	}
	if rep.CreatedAt.IsZero() {
		return fmt.Errorf("%w: run %s has no created_at", ErrInvalidReport, rep.ID)
	}
	seen := make(map[string]bool, len(rep.Results))
	for i, res := range rep.Results {
		if res.ElementID == "" {
			return fmt.Errorf("%w: result %d has no element_id", ErrInvalidReport, i)
		}
		if seen[res.ElementID] {
			return fmt.Errorf("%w: duplicate result %s", ErrInvalidReport, res.ElementID)
		}
		seen[res.ElementID] = true
	}
	return nil
}

// Formats lists the export formats in the order they are offered
var Formats = []string{"text", "yaml", "json"}

// ExporterFor returns the exporter for a format name
func ExporterFor(format string) (Exporter, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	case "json":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected one of %s)", format, strings.Join(Formats, ", "))
	}
}

// ImporterFor returns the importer for a file name, chosen by extension
func ImporterFor(name string) (Importer, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".json"):
		return NewJSONCodec(), nil
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("cannot import %s: expected a .json or .yaml file", name)
	}
}
