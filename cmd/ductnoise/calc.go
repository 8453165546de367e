package main

import (
	"fmt"
	"io"
	"os"

	"ductnoise/internal/codec"
	"ductnoise/internal/report"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	showSpectra  bool
	outputFile   string
)

var calcCmd = &cobra.Command{
	Use:   "calc <network.yaml>...",
	Short: "Calculate the acoustic report of one or more networks",
	Long: `Load each network file, evaluate every element and junction branch,
print the report and archive it.

Output formats:
  text  - aligned table with overall and A-weighted levels (default)
  yaml  - full report including octave band spectra
  json  - full report including octave band spectra`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCalc,
}

func init() {
	addOutputFlags(calcCmd)
	calcCmd.Flags().StringVar(&outputFile, "out", "", "write the report to a file instead of stdout")
	rootCmd.AddCommand(calcCmd)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "", "output format (text, yaml, json)")
	cmd.Flags().BoolVar(&showSpectra, "spectra", false, "include octave band spectra in text output")
}

func runCalc(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, closeStore, err := openService(ctx, nil)
	if err != nil {
		return err
	}
	defer closeStore()

	out := cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", outputFile, err)
		}
		defer f.Close()
		out = f
	}

	for _, path := range args {
		rep, err := svc.Calculate(ctx, path)
		if err != nil {
			return err
		}
		if err := writeReport(out, rep); err != nil {
			return err
		}
	}
	return nil
}

// exporter resolves the output format from flags and config
func exporter() (codec.Exporter, error) {
	format := outputFormat
	if format == "" {
		format = cfg.Output.Format
	}
	e, err := codec.ExporterFor(format)
	if err != nil {
		return nil, err
	}
	if text, ok := e.(*codec.TextCodec); ok {
		text.Spectra = showSpectra || cfg.Output.Spectra
	}
	return e, nil
}

func writeReport(w io.Writer, rep *report.Report) error {
	e, err := exporter()
	if err != nil {
		return err
	}
	return e.Export(rep, w)
}
