package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/repository"
	"ductnoise/internal/report"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Repository implements repository.Store using SQLite
type Repository struct {
	db *sqlx.DB
}

var _ repository.Store = (*Repository)(nil)

// New opens or creates the archive at dbPath
func New(dbPath string) (*Repository, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		network TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		source TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		links_json TEXT NOT NULL DEFAULT 'null'
	);

	CREATE TABLE IF NOT EXISTS results (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		element_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		side TEXT NOT NULL DEFAULT '',
		air_flow INTEGER NOT NULL DEFAULT 0,
		attenuation_json TEXT NOT NULL,
		noise_json TEXT NOT NULL,
		total_attenuation REAL NOT NULL,
		noise_level REAL NOT NULL,
		noise_level_a REAL NOT NULL,
		PRIMARY KEY (run_id, position),
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	CREATE INDEX IF NOT EXISTS idx_results_element ON results(element_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

type runRow struct {
	ID          string `db:"id"`
	Network     string `db:"network"`
	Description string `db:"description"`
	Source      string `db:"source"`
	CreatedAt   string `db:"created_at"`
	Links       string `db:"links_json"`
}

type resultRow struct {
	Position         int     `db:"position"`
	ElementID        string  `db:"element_id"`
	Kind             string  `db:"kind"`
	Side             string  `db:"side"`
	AirFlow          int     `db:"air_flow"`
	Attenuation      string  `db:"attenuation_json"`
	Noise            string  `db:"noise_json"`
	TotalAttenuation float64 `db:"total_attenuation"`
	NoiseLevel       float64 `db:"noise_level"`
	NoiseLevelA      float64 `db:"noise_level_a"`
}

type summaryRow struct {
	runRow
	Results   int             `db:"results"`
	LoudestID sql.NullString  `db:"loudest_id"`
	LoudestA  sql.NullFloat64 `db:"loudest_a"`
}

// SaveRun stores a report and its results in one transaction
func (r *Repository) SaveRun(ctx context.Context, rep *report.Report) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	links, err := json.Marshal(rep.Links)
	if err != nil {
		return fmt.Errorf("failed to marshal links: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, network, description, source, created_at, links_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rep.ID, rep.Network, rep.Description, rep.Source, formatTime(rep.CreatedAt), string(links))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO results
			(run_id, position, element_id, kind, side, air_flow,
			 attenuation_json, noise_json, total_attenuation, noise_level, noise_level_a)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, res := range rep.Results {
		att, err := json.Marshal(res.Attenuation)
		if err != nil {
			return fmt.Errorf("failed to marshal attenuation of %s: %w", res.ElementID, err)
		}
		noise, err := json.Marshal(res.Noise)
		if err != nil {
			return fmt.Errorf("failed to marshal noise of %s: %w", res.ElementID, err)
		}

		_, err = stmt.ExecContext(ctx,
			rep.ID, i, res.ElementID, string(res.Kind), res.Side, res.AirFlow,
			string(att), string(noise), res.TotalAttenuation, res.NoiseLevel, res.NoiseLevelA,
		)
		if err != nil {
			return fmt.Errorf("failed to insert result %s: %w", res.ElementID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListRuns returns run summaries, newest first
func (r *Repository) ListRuns(ctx context.Context, limit int) ([]repository.RunSummary, error) {
	query := `
		SELECT
			r.id, r.network, r.description, r.source, r.created_at, r.links_json,
			(SELECT COUNT(*) FROM results WHERE run_id = r.id) AS results,
			(SELECT element_id FROM results WHERE run_id = r.id
				ORDER BY noise_level_a DESC, position LIMIT 1) AS loudest_id,
			(SELECT MAX(noise_level_a) FROM results WHERE run_id = r.id) AS loudest_a
		FROM runs r
		ORDER BY r.created_at DESC, r.id
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows []summaryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	runs := make([]repository.RunSummary, 0, len(rows))
	for _, row := range rows {
		created, err := parseTime(row.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", row.ID, err)
		}
		runs = append(runs, repository.RunSummary{
			ID:        row.ID,
			Network:   row.Network,
			Source:    row.Source,
			CreatedAt: created,
			Results:   row.Results,
			LoudestID: row.LoudestID.String,
			LoudestA:  row.LoudestA.Float64,
		})
	}
	return runs, nil
}

// GetRun loads a run by full id or unique id prefix
func (r *Repository) GetRun(ctx context.Context, id string) (*report.Report, error) {
	runID, err := r.resolve(ctx, id)
	if err != nil {
		return nil, err
	}

	var run runRow
	err = r.db.GetContext(ctx, &run, `
		SELECT id, network, description, source, created_at, links_json FROM runs WHERE id = ?
	`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	created, err := parseTime(run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.ID, err)
	}
	rep := &report.Report{
		ID:          run.ID,
		Network:     run.Network,
		Description: run.Description,
		Source:      run.Source,
		CreatedAt:   created,
	}
	if err := json.Unmarshal([]byte(run.Links), &rep.Links); err != nil {
		return nil, fmt.Errorf("failed to unmarshal links of %s: %w", run.ID, err)
	}

	var rows []resultRow
	err = r.db.SelectContext(ctx, &rows, `
		SELECT position, element_id, kind, side, air_flow, attenuation_json, noise_json,
			total_attenuation, noise_level, noise_level_a
		FROM results WHERE run_id = ? ORDER BY position
	`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}

	for _, row := range rows {
		res := report.Result{
			ElementID:        row.ElementID,
			Kind:             acoustic.ElementKind(row.Kind),
			Side:             row.Side,
			AirFlow:          row.AirFlow,
			TotalAttenuation: row.TotalAttenuation,
			NoiseLevel:       row.NoiseLevel,
			NoiseLevelA:      row.NoiseLevelA,
		}
		if err := json.Unmarshal([]byte(row.Attenuation), &res.Attenuation); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attenuation of %s: %w", row.ElementID, err)
		}
		if err := json.Unmarshal([]byte(row.Noise), &res.Noise); err != nil {
			return nil, fmt.Errorf("failed to unmarshal noise of %s: %w", row.ElementID, err)
		}
		rep.Results = append(rep.Results, res)
	}

	return rep, nil
}

// DeleteRun removes a run by full id or unique id prefix
func (r *Repository) DeleteRun(ctx context.Context, id string) error {
	runID, err := r.resolve(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM results WHERE run_id = ?", runID); err != nil {
		return fmt.Errorf("failed to delete results: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", runID); err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// resolve expands an id prefix to the one run id it matches
func (r *Repository) resolve(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: empty id", repository.ErrRunNotFound)
	}

	var ids []string
	err := r.db.SelectContext(ctx, &ids, `
		SELECT id FROM runs WHERE substr(id, 1, length(?)) = ? ORDER BY id LIMIT 2
	`, id, id)
	if err != nil {
		return "", fmt.Errorf("failed to query runs: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", repository.ErrRunNotFound, id)
	case 1:
		return ids[0], nil
	default:
		for _, candidate := range ids {
			if candidate == id {
				return candidate, nil
			}
		}
		return "", fmt.Errorf("%w: %s", repository.ErrAmbiguousRun, id)
	}
}

// timeLayout has a fixed width so that timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}
