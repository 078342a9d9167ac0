package journal

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubebot"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testStep(t *testing.T, token string, from cubebot.Orientation) cubebot.Step {
	t.Helper()
	m, err := cubebot.ParseMove(token)
	require.NoError(t, err)
	p, err := cubebot.PlanMove(from, m)
	require.NoError(t, err)
	return cubebot.Step{Plan: p, Started: time.Now(), Duration: 1500 * time.Millisecond}
}

func TestOpenMigrates(t *testing.T) {
	db := openTest(t)

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	// Reopening is a no-op.
	path := db.Path()
	require.NoError(t, db.Close())
	again, err := Open(path)
	require.NoError(t, err)
	defer again.Close()
	v, err = again.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestRunLifecycle(t *testing.T) {
	db := openTest(t)
	runs := NewRunRepository(db)

	id, err := runs.Create(KindMoves, "ev3", "R U")
	require.NoError(t, err)

	run, err := runs.Get(id)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Nil(t, run.EndedAt)

	require.NoError(t, runs.End(id, errors.New("grip stalled")))
	run, err = runs.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, run.Status)
	require.NotNil(t, run.Error)
	assert.Equal(t, "grip stalled", *run.Error)
	assert.NotNil(t, run.EndedAt)
	assert.NotNil(t, run.DurationMs)

	missing, err := runs.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRunListNewestFirst(t *testing.T) {
	db := openTest(t)
	runs := NewRunRepository(db)

	first, err := runs.Create(KindHome, "ev3", "")
	require.NoError(t, err)
	second, err := runs.Create(KindMoves, "ev3", "F")
	require.NoError(t, err)

	list, err := runs.List(10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].RunID)
	assert.Equal(t, first, list[1].RunID)

	list, err = runs.List(1)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSessionRecordsSteps(t *testing.T) {
	db := openTest(t)
	s := NewSession(db, nil)

	id, err := s.Start(KindMoves, "nxt1", "R D")
	require.NoError(t, err)

	_, err = s.Start(KindMoves, "nxt1", "R")
	assert.Error(t, err)

	r := testStep(t, "R", cubebot.DefaultOrientation)
	s.Observe(r)
	s.Observe(testStep(t, "D", r.Plan.After))
	require.NoError(t, s.End(nil))
	assert.Equal(t, "", s.RunID())

	// Steps after End are dropped.
	s.Observe(r)

	moves, err := NewMoveRepository(db).GetByRun(id)
	require.NoError(t, err)
	require.Len(t, moves, 2)
	assert.Equal(t, "R", moves[0].Notation)
	assert.Equal(t, "right", moves[0].Slot)
	assert.Equal(t, "[U F R]", moves[0].OrientationBefore)
	assert.Equal(t, "[L D F]", moves[0].OrientationAfter)
	assert.Equal(t, "release spin(-90) flip grab spin(-90,22)", moves[0].Actions)
	assert.Equal(t, int64(1500), moves[0].DurationMs)
	assert.Equal(t, 1, moves[1].MoveIndex)

	run, err := NewRunRepository(db).Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, run.Status)
	assert.Equal(t, 0, s.Failures())
}

func TestSessionEndWithScan(t *testing.T) {
	db := openTest(t)
	s := NewSession(db, nil)

	assert.Error(t, s.EndWithScan(cubebot.Facelets{}, "", nil))

	id, err := s.Start(KindSolve, "ev3", "")
	require.NoError(t, err)

	var f cubebot.Facelets
	f.Set(28, cubebot.RGB{1, 2, 3})
	require.NoError(t, s.EndWithScan(f, "Traceback", errors.New("resolver failed")))
	assert.Equal(t, "", s.RunID())

	scan, err := NewScanRepository(db).GetByRun(id)
	require.NoError(t, err)
	require.NotNil(t, scan)
	assert.Equal(t, f, scan.Facelets)

	run, err := NewRunRepository(db).Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusFailed, run.Status)
	require.NotNil(t, run.Error)
	assert.Equal(t, "resolver failed", *run.Error)
}

func TestSessionEndWithScanRollsBack(t *testing.T) {
	db := openTest(t)
	s := NewSession(db, nil)

	id, err := s.Start(KindSolve, "ev3", "")
	require.NoError(t, err)

	_, err = db.Exec("DROP TABLE scans")
	require.NoError(t, err)

	assert.Error(t, s.EndWithScan(cubebot.Facelets{}, "R U", nil))
	assert.Equal(t, id, s.RunID())

	run, err := NewRunRepository(db).Get(id)
	require.NoError(t, err)
	assert.Equal(t, StatusRunning, run.Status)
	assert.Nil(t, run.EndedAt)
}
