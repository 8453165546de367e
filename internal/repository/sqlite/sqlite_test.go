package sqlite

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"ductnoise/internal/acoustic"
	"ductnoise/internal/octave"
	"ductnoise/internal/repository"
	"ductnoise/internal/report"
)

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func newReport(id, network string, created time.Time, levels ...float64) *report.Report {
	rep := &report.Report{
		ID:          id,
		Network:     network,
		Description: "archived run",
		Source:      "/tmp/" + network + ".yaml",
		CreatedAt:   created,
	}
	for i, l := range levels {
		rep.Results = append(rep.Results, report.Result{
			ElementID:        string(rune('a' + i)),
			Kind:             acoustic.KindDuct,
			AirFlow:          1000 + i,
			Attenuation:      octave.Uniform(float64(i) + 0.5),
			Noise:            octave.Bands{l, l - 1, l - 2, l - 3, l - 4, l - 5, l - 6, l - 7},
			TotalAttenuation: float64(i) * 2,
			NoiseLevel:       l + 3,
			NoiseLevelA:      l,
		})
	}
	return rep
}

var base = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func TestSaveAndGetRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	want := newReport("11111111-aaaa-4bbb-8ccc-000000000001", "office", base.Add(1500*time.Millisecond), 40, 55.5, 30)
	want.Results[1].Side = "right"
	want.Links = []string{"a->b", "b.right->c"}
	assertNoError(t, repo.SaveRun(ctx, want))

	got, err := repo.GetRun(ctx, want.ID)
	assertNoError(t, err)
	assertEqual(t, want, got)

	t.Run("duplicate id is rejected", func(t *testing.T) {
		if err := repo.SaveRun(ctx, want); err == nil {
			t.Error("expected error for duplicate run id")
		}
	})

	t.Run("run without results", func(t *testing.T) {
		empty := newReport("22222222-aaaa-4bbb-8ccc-000000000002", "empty", base)
		assertNoError(t, repo.SaveRun(ctx, empty))
		got, err := repo.GetRun(ctx, empty.ID)
		assertNoError(t, err)
		if len(got.Results) != 0 {
			t.Errorf("expected no results, got %d", len(got.Results))
		}
	})
}

func TestGetRunByPrefix(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assertNoError(t, repo.SaveRun(ctx, newReport("abc123-1", "one", base)))
	assertNoError(t, repo.SaveRun(ctx, newReport("abc456-2", "two", base)))
	assertNoError(t, repo.SaveRun(ctx, newReport("abc456-2x", "three", base)))

	tests := []struct {
		name    string
		id      string
		network string
		wantErr error
	}{
		{"unique prefix", "abc1", "one", nil},
		{"full id", "abc123-1", "one", nil},
		{"full id that prefixes another", "abc456-2", "two", nil},
		{"ambiguous prefix", "abc", "", repository.ErrAmbiguousRun},
		{"unknown id", "zzz", "", repository.ErrRunNotFound},
		{"empty id", "", "", repository.ErrRunNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := repo.GetRun(ctx, tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			assertNoError(t, err)
			assertEqual(t, tt.network, rep.Network)
		})
	}
}

func TestListRuns(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assertNoError(t, repo.SaveRun(ctx, newReport("run-old", "office", base, 30, 42)))
	assertNoError(t, repo.SaveRun(ctx, newReport("run-new", "office", base.Add(time.Hour), 50, 20, 35)))
	assertNoError(t, repo.SaveRun(ctx, newReport("run-mid", "lab", base.Add(500*time.Millisecond))))

	runs, err := repo.ListRuns(ctx, 0)
	assertNoError(t, err)
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}

	ids := []string{runs[0].ID, runs[1].ID, runs[2].ID}
	assertEqual(t, []string{"run-new", "run-mid", "run-old"}, ids)

	t.Run("summary carries the loudest result", func(t *testing.T) {
		assertEqual(t, 3, runs[0].Results)
		assertEqual(t, "a", runs[0].LoudestID)
		assertEqual(t, 50.0, runs[0].LoudestA)
		assertEqual(t, "b", runs[2].LoudestID)
		assertEqual(t, true, runs[0].CreatedAt.Equal(base.Add(time.Hour)))
	})

	t.Run("empty run has no loudest result", func(t *testing.T) {
		assertEqual(t, 0, runs[1].Results)
		assertEqual(t, "", runs[1].LoudestID)
	})

	t.Run("limit", func(t *testing.T) {
		runs, err := repo.ListRuns(ctx, 2)
		assertNoError(t, err)
		assertEqual(t, 2, len(runs))
	})
}

func TestDeleteRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	assertNoError(t, repo.SaveRun(ctx, newReport("run-1", "office", base, 30, 40)))
	assertNoError(t, repo.DeleteRun(ctx, "run-1"))

	if _, err := repo.GetRun(ctx, "run-1"); !errors.Is(err, repository.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}

	var orphans int
	assertNoError(t, repo.db.Get(&orphans, "SELECT COUNT(*) FROM results"))
	assertEqual(t, 0, orphans)

	if err := repo.DeleteRun(ctx, "run-1"); !errors.Is(err, repository.ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound on second delete, got %v", err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := t.TempDir() + "/runs.db"
	ctx := context.Background()

	repo, err := New(path)
	assertNoError(t, err)
	assertNoError(t, repo.SaveRun(ctx, newReport("persisted", "office", base, 33)))
	assertNoError(t, repo.Close())

	repo, err = New(path)
	assertNoError(t, err)
	defer repo.Close()

	rep, err := repo.GetRun(ctx, "persisted")
	assertNoError(t, err)
	assertEqual(t, 1, len(rep.Results))
}
