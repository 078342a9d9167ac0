package journal

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubebot"
)

// Session records one run at a time. Register Observe with
// cubebot.WithObserver; failed step writes are logged and counted.
type Session struct {
	mu        sync.Mutex
	db        *DB
	runs      *RunRepository
	moves     *MoveRepository
	scans     *ScanRepository
	log       logrus.FieldLogger
	runID     string
	moveIndex int
	failures  int
}

// NewSession creates a session bound to db.
func NewSession(db *DB, log logrus.FieldLogger) *Session {
	return &Session{
		db:    db,
		runs:  NewRunRepository(db),
		moves: NewMoveRepository(db),
		scans: NewScanRepository(db),
		log:   log,
	}
}

// Start begins a new run.
func (s *Session) Start(kind, variant, sequence string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID != "" {
		return "", fmt.Errorf("run %s already in progress", s.runID)
	}
	id, err := s.runs.Create(kind, variant, sequence)
	if err != nil {
		return "", err
	}
	s.runID = id
	s.moveIndex = 0
	s.failures = 0
	return id, nil
}

// RunID returns the active run, or "" between runs.
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// Observe records an executed step against the active run.
func (s *Session) Observe(step cubebot.Step) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID == "" {
		return
	}
	if _, err := s.moves.Create(s.runID, s.moveIndex, step); err != nil {
		s.failures++
		if s.log != nil {
			s.log.WithError(err).WithField("move", step.Plan.Move.Notation()).Warn("journal write failed")
		}
		return
	}
	s.moveIndex++
}

// End closes the active run with the operation's outcome.
func (s *Session) End(runErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID == "" {
		return fmt.Errorf("no run in progress")
	}
	if err := s.runs.End(s.runID, runErr); err != nil {
		return err
	}
	s.runID = ""
	return nil
}

// EndWithScan stores the scan and closes the active run in one transaction,
// so a run is never marked finished without its scan.
func (s *Session) EndWithScan(facelets cubebot.Facelets, solution string, runErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runID == "" {
		return fmt.Errorf("no run in progress")
	}
	err := s.db.Transaction(func(tx *sql.Tx) error {
		if err := endRun(tx, s.runID, runErr); err != nil {
			return err
		}
		_, err := createScan(tx, s.runID, facelets, solution)
		return err
	})
	if err != nil {
		return err
	}
	s.runID = ""
	return nil
}

// Failures returns how many step writes failed in the current run.
func (s *Session) Failures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures
}
