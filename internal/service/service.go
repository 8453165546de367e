package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"ductnoise/internal/domain"
	"ductnoise/internal/loader"
	"ductnoise/internal/logging"
	"ductnoise/internal/report"
	"ductnoise/internal/repository"
	"ductnoise/internal/watcher"
)

// ErrNoArchive is returned by archive operations when no store is configured
var ErrNoArchive = errors.New("run archive is disabled")

// CalculationService provides business logic for network calculations
type CalculationService struct {
	store    repository.Store
	eventBus *EventBus
	logger   logging.Logger
	opts     loader.Options
}

// NewCalculationService creates a new calculation service. store may be
// nil, in which case reports are computed but not archived.
func NewCalculationService(store repository.Store, eventBus *EventBus, logger logging.Logger, opts loader.Options) *CalculationService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if logger == nil {
		logger = logging.Noop()
	}
	return &CalculationService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
		opts:     opts,
	}
}

// Load builds the network defined in a YAML file
func (s *CalculationService) Load(ctx context.Context, path string) (*domain.Network, error) {
	network, err := loader.LoadYAML(path, s.opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	s.logger.Debug(ctx, "network loaded",
		logging.String("path", path),
		logging.String("network", network.Name),
		logging.Int("elements", network.Len()),
	)
	s.eventBus.Publish(Event{
		Type:    EventNetworkLoaded,
		Payload: map[string]any{"path": path, "network": network.Name, "elements": network.Len()},
	})

	return network, nil
}

// Calculate loads a network file, evaluates it and archives the report
// when a store is configured
func (s *CalculationService) Calculate(ctx context.Context, path string) (*report.Report, error) {
	network, err := s.Load(ctx, path)
	if err != nil {
		s.fail(ctx, path, err)
		return nil, err
	}

	start := time.Now()
	rep := report.Compute(network)
	if abs, err := filepath.Abs(path); err == nil {
		rep.Source = abs
	} else {
		rep.Source = path
	}

	s.logger.Info(ctx, "report computed",
		logging.String("run_id", rep.ID),
		logging.String("network", rep.Network),
		logging.Int("results", len(rep.Results)),
		logging.Any("duration", time.Since(start)),
	)
	s.eventBus.Publish(Event{
		Type:    EventReportComputed,
		Payload: map[string]any{"run_id": rep.ID, "network": rep.Network, "results": len(rep.Results)},
	})

	if s.store == nil {
		return rep, nil
	}
	if err := s.save(ctx, rep); err != nil {
		s.fail(ctx, path, err)
		return rep, err
	}
	return rep, nil
}

// Import archives a report that was computed elsewhere
func (s *CalculationService) Import(ctx context.Context, rep *report.Report) error {
	if s.store == nil {
		return ErrNoArchive
	}
	if rep.ID == "" {
		return errors.New("report has no run id")
	}
	return s.save(ctx, rep)
}

func (s *CalculationService) save(ctx context.Context, rep *report.Report) error {
	if err := s.store.SaveRun(ctx, rep); err != nil {
		return fmt.Errorf("save run %s: %w", rep.ID, err)
	}

	s.logger.Info(ctx, "report saved", logging.String("run_id", rep.ID))
	s.eventBus.Publish(Event{
		Type:    EventReportSaved,
		Payload: map[string]string{"run_id": rep.ID},
	})
	return nil
}

func (s *CalculationService) fail(ctx context.Context, path string, err error) {
	s.logger.Error(ctx, "calculation failed", logging.String("path", path), logging.Err(err))
	s.eventBus.Publish(Event{
		Type:    EventCalculationFailed,
		Payload: map[string]string{"path": path, "error": err.Error()},
	})
}

// History returns archived runs, newest first
func (s *CalculationService) History(ctx context.Context, limit int) ([]repository.RunSummary, error) {
	if s.store == nil {
		return nil, ErrNoArchive
	}
	return s.store.ListRuns(ctx, limit)
}

// Run returns an archived report by id or unique id prefix
func (s *CalculationService) Run(ctx context.Context, id string) (*report.Report, error) {
	if s.store == nil {
		return nil, ErrNoArchive
	}
	return s.store.GetRun(ctx, id)
}

// DeleteRun removes an archived report
func (s *CalculationService) DeleteRun(ctx context.Context, id string) error {
	if s.store == nil {
		return ErrNoArchive
	}
	if err := s.store.DeleteRun(ctx, id); err != nil {
		return err
	}

	s.eventBus.Publish(Event{
		Type:    EventRunDeleted,
		Payload: map[string]string{"run_id": id},
	})
	return nil
}

// Watch calculates every file once, then again whenever one of them
// changes, until ctx is cancelled. onReport receives each successful
// report. A failing recalculation is logged and published but does not
// stop the watch.
func (s *CalculationService) Watch(ctx context.Context, paths []string, debounce time.Duration, onReport func(*report.Report)) error {
	if len(paths) == 0 {
		return errors.New("no files to watch")
	}

	recalculate := func(ctx context.Context, path string) {
		rep, err := s.Calculate(ctx, path)
		if rep != nil && onReport != nil {
			onReport(rep)
		}
		if err != nil && ctx.Err() == nil {
			s.logger.Warn(ctx, "keeping previous result", logging.String("path", path))
		}
	}

	for _, path := range paths {
		recalculate(ctx, path)
	}

	w := watcher.New(paths, recalculate).
		WithDebounce(debounce).
		WithLogger(s.logger)

	err := w.Watch(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
