package main

import (
	"fmt"
	"os"

	"ductnoise/internal/config"

	"github.com/spf13/cobra"
)

var (
	initPath  string
	initForce bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ductnoise configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  cobra.NoArgs,
	// an invalid existing config must not block rewriting it
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := initPath
		if path == "" {
			path = config.DefaultConfigPath()
		}

		if _, err := os.Stat(path); err == nil && !initForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		source := configFrom
		if source == "" {
			source = "defaults (no config file found)"
		}
		fmt.Fprintf(out, "Config: %s\n", source)
		fmt.Fprintln(out, cfg.Summary())

		fmt.Fprintln(out, "\nSearch paths:")
		for _, p := range config.SearchPaths() {
			fmt.Fprintf(out, "  %s\n", p)
		}
		return nil
	},
}

func init() {
	configInitCmd.Flags().StringVar(&initPath, "path", "", "where to write the file (default: XDG config home)")
	configInitCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(configCmd)
}
