// Command ductnoise calculates the attenuation and flow noise of HVAC duct
// networks defined in YAML files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ductnoise/internal/config"
	"ductnoise/internal/loader"
	"ductnoise/internal/logging"
	"ductnoise/internal/repository"
	"ductnoise/internal/repository/sqlite"
	"ductnoise/internal/service"

	"github.com/spf13/cobra"
)

var (
	configPath string
	dbPath     string
	noArchive  bool
	logLevel   string

	cfg        *config.Config
	configFrom string
	logger     = logging.NewFromEnv()
)

var rootCmd = &cobra.Command{
	Use:   "ductnoise",
	Short: "Acoustic calculation of HVAC duct networks",
	Long: `Calculate octave band attenuation and flow noise for every element
of a ventilation duct network.

Networks are YAML files listing ducts, fittings, junctions, plenums,
terminals, fans and rooms. Each calculation is archived in a local
SQLite database unless the archive is disabled.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default: search $DUCTNOISE_CONFIG, ./ductnoise.yaml, ~/.config/ductnoise)")
	flags.StringVar(&dbPath, "db", "", "run archive database path")
	flags.BoolVar(&noArchive, "no-archive", false, "do not archive computed reports")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// setup loads the configuration and applies flag overrides
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if configPath != "" {
		cfg, configFrom, err = config.LoadFromPath(configPath)
	} else {
		cfg, configFrom, err = config.Load()
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if noArchive {
		disabled := false
		cfg.Database.Enabled = &disabled
	}

	if os.Getenv("DUCTNOISE_LOG_LEVEL") == "" {
		logger = logging.New(logging.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cmd.ErrOrStderr(),
		})
	}
	if configFrom != "" {
		logger.Debug(cmd.Context(), "config loaded", logging.String("path", configFrom))
	}
	return nil
}

// openService wires the archive, event bus and calculation service. bus may
// be nil when the command does not follow events. The returned function
// closes the archive.
func openService(ctx context.Context, bus *service.EventBus) (*service.CalculationService, func(), error) {
	var store repository.Store
	closeStore := func() {}

	if cfg.Database.IsEnabled() {
		repo, err := sqlite.New(cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open run archive: %w", err)
		}
		logger.Debug(ctx, "run archive opened", logging.String("path", cfg.Database.Path))
		store = repo
		closeStore = func() { repo.Close() }
	}

	opts := loader.Options{
		Temperature: cfg.Environment.Temperature,
		Humidity:    cfg.Environment.Humidity,
	}
	svc := service.NewCalculationService(store, bus, logger, opts)
	return svc, closeStore, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
