package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed-width so stored times sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Run kinds.
const (
	KindMoves = "moves"
	KindHome  = "home"
	KindSolve = "solve"
)

// Run statuses.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Run represents one robot operation in the journal.
type Run struct {
	RunID      string
	Kind       string
	Variant    string
	Sequence   string
	StartedAt  time.Time
	EndedAt    *time.Time
	DurationMs *int64
	Status     string
	Error      *string
}

// RunRepository provides CRUD operations for runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create starts a run and returns its ID.
func (r *RunRepository) Create(kind, variant, sequence string) (string, error) {
	id := uuid.New().String()
	startedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO runs (run_id, kind, variant, sequence, started_at, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, kind, variant, sequence, startedAt.Format(timeLayout), StatusRunning)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// End marks a run finished. A nil runErr records success.
func (r *RunRepository) End(runID string, runErr error) error {
	return endRun(r.db, runID, runErr)
}

func endRun(ex execer, runID string, runErr error) error {
	endedAt := time.Now().UTC()

	var startedAtStr string
	err := ex.QueryRow("SELECT started_at FROM runs WHERE run_id = ?", runID).Scan(&startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to get run start time: %w", err)
	}
	startedAt, err := time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return fmt.Errorf("failed to parse start time: %w", err)
	}

	status := StatusOK
	var errText *string
	if runErr != nil {
		status = StatusFailed
		msg := runErr.Error()
		errText = &msg
	}

	_, err = ex.Exec(`
		UPDATE runs
		SET ended_at = ?, duration_ms = ?, status = ?, error = ?
		WHERE run_id = ?
	`, endedAt.Format(timeLayout), endedAt.Sub(startedAt).Milliseconds(), status, errText, runID)
	if err != nil {
		return fmt.Errorf("failed to end run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID. It returns nil when no run matches.
func (r *RunRepository) Get(runID string) (*Run, error) {
	row := r.db.QueryRow(`
		SELECT run_id, kind, variant, sequence, started_at, ended_at, duration_ms, status, error
		FROM runs
		WHERE run_id = ?
	`, runID)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs first.
func (r *RunRepository) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.Query(`
		SELECT run_id, kind, variant, sequence, started_at, ended_at, duration_ms, status, error
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var startedAtStr string
	var endedAtStr sql.NullString

	err := row.Scan(
		&run.RunID, &run.Kind, &run.Variant, &run.Sequence,
		&startedAtStr, &endedAtStr, &run.DurationMs, &run.Status, &run.Error,
	)
	if err != nil {
		return nil, err
	}

	run.StartedAt, err = time.Parse(timeLayout, startedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	if endedAtStr.Valid {
		t, err := time.Parse(timeLayout, endedAtStr.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end time: %w", err)
		}
		run.EndedAt = &t
	}
	return &run, nil
}
