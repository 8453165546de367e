package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"ductnoise/internal/codec"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect archived calculation runs",
	Long: `List, show, delete and import archived runs.

Runs are addressed by their id or any unique prefix of it.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, closeStore, err := openService(ctx, nil)
		if err != nil {
			return err
		}
		defer closeStore()

		runs, err := svc.History(ctx, runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs archived yet.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNETWORK\tCREATED\tRESULTS\tLOUDEST")
		for _, r := range runs {
			loudest := "-"
			if r.LoudestID != "" {
				loudest = fmt.Sprintf("%s (%s dB(A))", r.LoudestID, humanize.FtoaWithDigits(r.LoudestA, 1))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				shortID(r.ID), r.Network, humanize.Time(r.CreatedAt), r.Results, loudest)
		}
		return tw.Flush()
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, closeStore, err := openService(ctx, nil)
		if err != nil {
			return err
		}
		defer closeStore()

		rep, err := svc.Run(ctx, args[0])
		if err != nil {
			return err
		}
		return writeReport(cmd.OutOrStdout(), rep)
	},
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an archived run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, closeStore, err := openService(ctx, nil)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.DeleteRun(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", args[0])
		return nil
	},
}

var runsImportCmd = &cobra.Command{
	Use:   "import <report.json|report.yaml>",
	Short: "Archive a report exported with -o json or -o yaml",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		importer, err := codec.ImporterFor(args[0])
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		rep, err := importer.Parse(f)
		if err != nil {
			return err
		}

		svc, closeStore, err := openService(ctx, nil)
		if err != nil {
			return err
		}
		defer closeStore()

		if err := svc.Import(ctx, rep); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported run %s (%s, %d results)\n", shortID(rep.ID), rep.Network, len(rep.Results))
		return nil
	},
}

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum number of runs (0 = all)")
	addOutputFlags(runsShowCmd)

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd, runsImportCmd)
	rootCmd.AddCommand(runsCmd)
}

// shortID is the id prefix printed in listings
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
