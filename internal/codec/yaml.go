package codec

import (
	"fmt"
	"io"

	"ductnoise/internal/report"

	"gopkg.in/yaml.v3"
)

// YAMLCodec handles YAML import/export
type YAMLCodec struct{}

// NewYAMLCodec creates a new YAML codec
func NewYAMLCodec() *YAMLCodec {
	return &YAMLCodec{}
}

// Format returns the codec format identifier
func (c *YAMLCodec) Format() string {
	return "yaml"
}

// Parse imports a report from YAML
func (c *YAMLCodec) Parse(r io.Reader) (*report.Report, error) {
	var rep report.Report
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&rep); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := checkReport(&rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Export exports a report to YAML
func (c *YAMLCodec) Export(rep *report.Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	if err := encoder.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
