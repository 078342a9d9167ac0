package cubebot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// recordingMech logs every call and can fail on a named action.
type recordingMech struct {
	mu       sync.Mutex
	calls    []string
	failOn   string
	failErr  error
	inFlight atomic.Int32
	overlap  atomic.Bool
}

func (m *recordingMech) do(name string) error {
	if m.inFlight.Add(1) > 1 {
		m.overlap.Store(true)
	}
	defer m.inFlight.Add(-1)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn != "" && name == m.failOn {
		return m.failErr
	}
	m.calls = append(m.calls, name)
	return nil
}

func (m *recordingMech) Home(ctx context.Context) error    { return m.do("home") }
func (m *recordingMech) Release(ctx context.Context) error { return m.do("release") }
func (m *recordingMech) Grab(ctx context.Context) error    { return m.do("grab") }
func (m *recordingMech) Rest(ctx context.Context) error    { return m.do("rest") }

func (m *recordingMech) Flip(ctx context.Context, release bool) error {
	if release {
		return m.do("flip+release")
	}
	return m.do("flip")
}

func (m *recordingMech) Spin(ctx context.Context, degrees, overshoot int) error {
	return m.do(SpinAction(degrees, overshoot).String())
}

func (m *recordingMech) Calls() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return strings.Join(m.calls, " ")
}

func TestRobotMoveR(t *testing.T) {
	mech := &recordingMech{}
	r := NewRobot(mech)

	if err := r.Move(context.Background(), "R"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got, want := mech.Calls(), "release spin(-90) flip grab spin(-90,22)"; got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
	if got, want := r.Orientation(), (Orientation{Left, Down, Front}); got != want {
		t.Errorf("orientation = %s, want %s", got, want)
	}
}

func TestRobotMovesRestsAfterSequence(t *testing.T) {
	mech := &recordingMech{}
	r := NewRobot(mech)

	if err := r.Moves(context.Background(), "D D'"); err != nil {
		t.Fatalf("Moves: %v", err)
	}
	if got, want := mech.Calls(), "grab spin(-90,22) grab spin(90,22) rest"; got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
	if r.Orientation() != DefaultOrientation {
		t.Errorf("orientation = %s, want default", r.Orientation())
	}
}

func TestRobotMovesAbortsBeforeMotion(t *testing.T) {
	mech := &recordingMech{}
	r := NewRobot(mech)

	err := r.Moves(context.Background(), "R U X2 F")
	if !errors.Is(err, ErrInvalidNotation) {
		t.Fatalf("error = %v, want ErrInvalidNotation", err)
	}
	if calls := mech.Calls(); calls != "" {
		t.Errorf("mechanism should not move, got %q", calls)
	}

	if err := r.Move(context.Background(), "R2'"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("Move error = %v", err)
	}
	if calls := mech.Calls(); calls != "" {
		t.Errorf("mechanism should not move, got %q", calls)
	}
}

func TestRobotFailureStopsWithoutRollback(t *testing.T) {
	boom := errors.New("grip jammed")
	mech := &recordingMech{failOn: "flip", failErr: boom}
	r := NewRobot(mech)

	err := r.Moves(context.Background(), "R U")
	if !errors.Is(err, boom) {
		t.Fatalf("error = %v, want grip jammed", err)
	}
	if !strings.Contains(err.Error(), "R") {
		t.Errorf("error %q should name the move", err)
	}
	if got, want := mech.Calls(), "release spin(-90)"; got != want {
		t.Errorf("calls = %q, want %q", got, want)
	}
	// The spin completed, so the tracked orientation reflects it.
	if got, want := r.Orientation(), (Orientation{Up, Left, Front}); got != want {
		t.Errorf("orientation = %s, want %s", got, want)
	}
}

func TestRobotStallPropagates(t *testing.T) {
	stall := &StallError{Op: "move", Actuator: "turn", Target: 210, Last: 40, Waited: time.Second}
	mech := &recordingMech{failOn: "spin(-90,22)", failErr: stall}
	r := NewRobot(mech)

	err := r.Moves(context.Background(), "D")
	if !errors.Is(err, ErrStall) {
		t.Fatalf("error = %v, want ErrStall", err)
	}
	var se *StallError
	if !errors.As(err, &se) || se.Actuator != "turn" {
		t.Errorf("error should carry the stall details, got %v", err)
	}
}

func TestRobotHomeResetsOrientation(t *testing.T) {
	mech := &recordingMech{}
	start := Orientation{Front, Down, Right}
	r := NewRobot(mech, WithOrientation(start))

	if r.Orientation() != start {
		t.Errorf("initial orientation = %s, want %s", r.Orientation(), start)
	}
	if err := r.Moves(context.Background(), "R"); err != nil {
		t.Fatal(err)
	}
	if err := r.Home(context.Background()); err != nil {
		t.Fatal(err)
	}
	if r.Orientation() != start {
		t.Errorf("orientation after home = %s, want %s", r.Orientation(), start)
	}
}

func TestRobotSetOrientation(t *testing.T) {
	r := NewRobot(&recordingMech{})
	if err := r.SetOrientation(Orientation{Up, Down, Left}); !errors.Is(err, ErrInvalidOrientation) {
		t.Errorf("error = %v, want ErrInvalidOrientation", err)
	}
	if err := r.SetOrientation(ScanOrientation); err != nil {
		t.Fatal(err)
	}
	p, err := r.Plan(U)
	if err != nil {
		t.Fatal(err)
	}
	if p.Slot != SlotRight {
		t.Errorf("U from %s is in slot %s, want right", ScanOrientation, p.Slot)
	}
}

func TestRobotObserver(t *testing.T) {
	var steps []Step
	r := NewRobot(&recordingMech{}, WithObserver(func(s Step) { steps = append(steps, s) }))

	if err := r.Moves(context.Background(), "R U2"); err != nil {
		t.Fatal(err)
	}
	if len(steps) != 2 {
		t.Fatalf("observed %d steps, want 2", len(steps))
	}
	if steps[0].Index != 0 || steps[1].Index != 1 {
		t.Errorf("indexes = %d, %d", steps[0].Index, steps[1].Index)
	}
	if steps[1].Plan.Before != steps[0].Plan.After {
		t.Error("second step should start where the first ended")
	}
	if steps[1].Plan.Move != U2 {
		t.Errorf("second move = %s, want U2", steps[1].Plan.Move)
	}
}

func TestRobotMatchesPlanner(t *testing.T) {
	moves, err := ParseMoves("R U R' U' F2 B L' D")
	if err != nil {
		t.Fatal(err)
	}
	plans, err := PlanMoves(DefaultOrientation, moves)
	if err != nil {
		t.Fatal(err)
	}
	var want []string
	for _, p := range plans {
		want = append(want, FormatActions(p.Actions()))
	}
	want = append(want, "rest")

	mech := &recordingMech{}
	r := NewRobot(mech)
	if err := r.Apply(context.Background(), moves...); err != nil {
		t.Fatal(err)
	}
	if got := mech.Calls(); got != strings.Join(want, " ") {
		t.Errorf("calls = %q\nwant   %q", got, strings.Join(want, " "))
	}
	if r.Orientation() != plans[len(plans)-1].After {
		t.Errorf("orientation = %s, want %s", r.Orientation(), plans[len(plans)-1].After)
	}
}

func TestRobotSerialisesOperations(t *testing.T) {
	mech := &recordingMech{}
	r := NewRobot(mech)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Moves(context.Background(), "R U F"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if mech.overlap.Load() {
		t.Error("mechanism calls overlapped")
	}

	moves, _ := ParseMoves(strings.Repeat("R U F ", 8))
	plans, err := PlanMoves(DefaultOrientation, moves)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := r.Orientation(), plans[len(plans)-1].After; got != want {
		t.Errorf("orientation = %s, want %s", got, want)
	}
}

func TestPerformUnknownAction(t *testing.T) {
	err := Perform(context.Background(), &recordingMech{}, Action{Kind: ActionKind(42)})
	if err == nil {
		t.Error("unknown action should fail")
	}
}
