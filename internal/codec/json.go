package codec

import (
	"encoding/json"
	"fmt"
	"io"

	"ductnoise/internal/report"
)

// JSONCodec handles JSON import/export
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// Format returns the codec format identifier
func (c *JSONCodec) Format() string {
	return "json"
}

// Parse imports a report from JSON. Unknown fields are rejected so that a
// network definition or other JSON document is not mistaken for a run.
func (c *JSONCodec) Parse(r io.Reader) (*report.Report, error) {
	var rep report.Report
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&rep); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if decoder.More() {
		return nil, fmt.Errorf("%w: trailing data after the report", ErrInvalidReport)
	}

	if err := checkReport(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Export exports a report to JSON
func (c *JSONCodec) Export(rep *report.Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
