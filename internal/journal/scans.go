package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubebot"
)

// ScanRecord is one full-cube scan and the solver's answer, if any.
type ScanRecord struct {
	ScanID    int64
	RunID     string
	Facelets  cubebot.Facelets
	Solution  *string
	CreatedAt time.Time
}

// ScanRepository provides CRUD operations for scans.
type ScanRepository struct {
	db *DB
}

// NewScanRepository creates a new scan repository.
func NewScanRepository(db *DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Create stores a scan. An empty solution is stored as NULL.
func (r *ScanRepository) Create(runID string, facelets cubebot.Facelets, solution string) (int64, error) {
	return createScan(r.db, runID, facelets, solution)
}

func createScan(ex execer, runID string, facelets cubebot.Facelets, solution string) (int64, error) {
	body, err := facelets.MarshalJSON()
	if err != nil {
		return 0, fmt.Errorf("failed to encode facelets: %w", err)
	}
	var sol *string
	if solution != "" {
		sol = &solution
	}

	result, err := ex.Exec(`
		INSERT INTO scans (run_id, facelets_json, solution, created_at)
		VALUES (?, ?, ?, ?)
	`, runID, string(body), sol, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to create scan: %w", err)
	}
	return result.LastInsertId()
}

// GetByRun returns the latest scan of a run, or nil if it has none.
func (r *ScanRepository) GetByRun(runID string) (*ScanRecord, error) {
	var s ScanRecord
	var body, createdAt string
	err := r.db.QueryRow(`
		SELECT scan_id, run_id, facelets_json, solution, created_at
		FROM scans
		WHERE run_id = ?
		ORDER BY scan_id DESC
		LIMIT 1
	`, runID).Scan(&s.ScanID, &s.RunID, &body, &s.Solution, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	if err := s.Facelets.UnmarshalJSON([]byte(body)); err != nil {
		return nil, fmt.Errorf("failed to decode facelets: %w", err)
	}
	if s.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse scan time: %w", err)
	}
	return &s, nil
}
