package cubebot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Mechanism is the physical actuation layer: a grip that holds the upper
// layers and tips the cube, and a turntable under the bottom face.
type Mechanism interface {
	// Home finds the grip limit, zeroes the turntable and leaves the grip at rest.
	Home(ctx context.Context) error
	Release(ctx context.Context) error
	Grab(ctx context.Context) error
	Flip(ctx context.Context, release bool) error
	// Spin rotates the turntable by degrees, overshooting and returning
	// when overshoot is non-zero.
	Spin(ctx context.Context, degrees, overshoot int) error
	// Rest returns the grip to its rest position without changing speed.
	Rest(ctx context.Context) error
}

// Step is one executed move, reported to observers.
type Step struct {
	Index    int // Position within the current sequence
	Plan     Plan
	Started  time.Time
	Duration time.Duration
}

// Robot dispatches moves to a Mechanism while tracking cube orientation.
// A Robot is safe for concurrent use; each operation holds the robot for
// its whole duration.
type Robot struct {
	mu          sync.Mutex
	mech        Mechanism
	orientation Orientation
	cfg         *config
	log         logrus.FieldLogger
}

// NewRobot creates a robot around mech. The mechanism is not homed.
func NewRobot(mech Mechanism, opts ...Option) *Robot {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Robot{
		mech:        mech,
		orientation: cfg.orientation,
		cfg:         cfg,
		log:         cfg.logger,
	}
}

// Orientation returns the tracked orientation.
func (r *Robot) Orientation() Orientation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orientation
}

// SetOrientation overrides the tracked orientation, for a cube placed by hand.
func (r *Robot) SetOrientation(o Orientation) error {
	if !o.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidOrientation, o)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orientation = o
	return nil
}

// Home homes the mechanism and re-initialises the orientation model.
func (r *Robot) Home(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log.Info("Homing")
	if err := r.mech.Home(ctx); err != nil {
		return fmt.Errorf("failed to home: %w", err)
	}
	r.orientation = r.cfg.orientation
	r.log.WithField("orientation", r.orientation.String()).Info("Homed")
	return nil
}

// Plan returns the plan for m from the current orientation without moving.
func (r *Robot) Plan(m Move) (Plan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return PlanMove(r.orientation, m)
}

// Move parses and executes a single token. The grip is left holding the cube.
func (r *Robot) Move(ctx context.Context, token string) error {
	m, err := ParseMove(token)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	_, err = r.dispatch(ctx, 0, m)
	return err
}

// Moves parses a whitespace-separated sequence and executes it, returning the
// grip to rest afterwards. A malformed token aborts before anything moves.
func (r *Robot) Moves(ctx context.Context, seq string) error {
	moves, err := ParseMoves(seq)
	if err != nil {
		return err
	}
	return r.Apply(ctx, moves...)
}

// Apply executes moves in order and returns the grip to rest. There is no
// rollback: the first failure stops the sequence where it is.
func (r *Robot) Apply(ctx context.Context, moves ...Move) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apply(ctx, moves)
}

func (r *Robot) apply(ctx context.Context, moves []Move) error {
	for i, m := range moves {
		if _, err := r.dispatch(ctx, i, m); err != nil {
			return err
		}
	}
	if err := r.mech.Rest(ctx); err != nil {
		return fmt.Errorf("failed to rest grip: %w", err)
	}
	return nil
}

// dispatch reorients the cube so m's face is on the turntable, then turns it.
// The orientation is committed after each reorienting action completes.
func (r *Robot) dispatch(ctx context.Context, index int, m Move) (Step, error) {
	plan, err := PlanMove(r.orientation, m)
	if err != nil {
		return Step{}, err
	}

	step := Step{Index: index, Plan: plan, Started: time.Now()}
	log := r.log.WithFields(logrus.Fields{
		"move": m.Notation(),
		"slot": plan.Slot.String(),
	})

	for _, a := range plan.Reorient {
		if err := r.perform(ctx, a); err != nil {
			return step, fmt.Errorf("failed to %s for %s: %w", a, m, err)
		}
		r.orientation = r.orientation.Apply(a)
		log.WithField("orientation", r.orientation.String()).Debugf("Performed %s", a)
	}

	for _, a := range plan.Turn {
		if err := r.perform(ctx, a); err != nil {
			return step, fmt.Errorf("failed to %s for %s: %w", a, m, err)
		}
		log.Debugf("Performed %s", a)
	}

	step.Duration = time.Since(step.Started)
	log.WithFields(logrus.Fields{
		"orientation": r.orientation.String(),
		"actions":     FormatActions(plan.Actions()),
		"duration":    step.Duration,
	}).Info("Move complete")

	for _, fn := range r.cfg.observers {
		fn(step)
	}
	return step, nil
}

func (r *Robot) perform(ctx context.Context, a Action) error {
	return Perform(ctx, r.mech, a)
}

// Perform executes a single action on m.
func Perform(ctx context.Context, m Mechanism, a Action) error {
	switch a.Kind {
	case ActionRelease:
		return m.Release(ctx)
	case ActionGrab:
		return m.Grab(ctx)
	case ActionFlip:
		return m.Flip(ctx, a.Release)
	case ActionSpin:
		return m.Spin(ctx, a.Degrees, a.Overshoot)
	default:
		return fmt.Errorf("unknown action %d", a.Kind)
	}
}
