package journal

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubebot"
)

// MoveRecord represents a dispatched move in the journal.
type MoveRecord struct {
	MoveID            int64
	RunID             string
	MoveIndex         int
	Notation          string
	Slot              string
	OrientationBefore string
	OrientationAfter  string
	Actions           string
	StartedAt         time.Time
	DurationMs        int64
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

// Create records an executed step and returns its ID.
func (r *MoveRepository) Create(runID string, index int, step cubebot.Step) (int64, error) {
	p := step.Plan
	result, err := r.db.Exec(`
		INSERT INTO moves (run_id, move_index, notation, slot, orientation_before,
			orientation_after, actions, started_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, runID, index, p.Move.Notation(), p.Slot.String(), p.Before.String(),
		p.After.String(), cubebot.FormatActions(p.Actions()),
		step.Started.UTC().Format(timeLayout), step.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}
	return id, nil
}

// GetByRun retrieves the moves of a run in dispatch order.
func (r *MoveRepository) GetByRun(runID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, run_id, move_index, notation, slot, orientation_before,
			orientation_after, actions, started_at, duration_ms
		FROM moves
		WHERE run_id = ?
		ORDER BY move_index
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		var startedAt string
		err := rows.Scan(&m.MoveID, &m.RunID, &m.MoveIndex, &m.Notation, &m.Slot,
			&m.OrientationBefore, &m.OrientationAfter, &m.Actions, &startedAt, &m.DurationMs)
		if err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		if m.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse move time: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Count returns the number of moves in a run.
func (r *MoveRepository) Count(runID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE run_id = ?", runID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}
