package repository

import (
	"context"
	"errors"
	"time"

	"ductnoise/internal/report"
)

var (
	// ErrRunNotFound is returned when no archived run matches an id
	ErrRunNotFound = errors.New("run not found")
	// ErrAmbiguousRun is returned when an id prefix matches several runs
	ErrAmbiguousRun = errors.New("run id prefix is ambiguous")
)

// RunSummary is one line of the run archive
type RunSummary struct {
	ID        string
	Network   string
	Source    string
	CreatedAt time.Time
	Results   int
	LoudestID string
	LoudestA  float64
}

// Store defines the interface for the report archive
type Store interface {
	// SaveRun stores a report with all of its results
	SaveRun(ctx context.Context, rep *report.Report) error
	// ListRuns returns the most recent runs first. A limit of 0 or less
	// returns every run.
	ListRuns(ctx context.Context, limit int) ([]RunSummary, error)
	// GetRun loads a run by id or unique id prefix
	GetRun(ctx context.Context, id string) (*report.Report, error)
	// DeleteRun removes a run and its results
	DeleteRun(ctx context.Context, id string) error

	// Close releases resources
	Close() error
}
