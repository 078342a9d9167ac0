// Package motion drives the grip and turntable motors: tolerance-based
// position seeks, homing, the cumulative turntable target and the named
// grip transitions.
package motion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubebot/internal/actuator"
)

// ErrStall is matched by every StallError.
var ErrStall = errors.New("cubebot: actuator stalled")

// StallError reports a seek or homing loop that did not converge in time.
type StallError struct {
	Op       string // "move" or "home"
	Actuator string
	Target   int
	Last     int
	Waited   time.Duration
}

func (e *StallError) Error() string {
	if e.Op == "home" {
		return fmt.Sprintf("cubebot: %s did not reach its limit within %s (last %d)", e.Actuator, e.Waited, e.Last)
	}
	return fmt.Sprintf("cubebot: %s stalled at %d seeking %d after %s", e.Actuator, e.Last, e.Target, e.Waited)
}

// Is reports whether target is ErrStall.
func (e *StallError) Is(target error) bool {
	return target == ErrStall
}

// DefaultTolerance is the accepted distance from a target, in encoder degrees.
const DefaultTolerance = 3

// Controller performs blocking position seeks.
type Controller struct {
	PollInterval time.Duration
	Timeout      time.Duration // 0 waits forever
	Log          logrus.FieldLogger
}

// MoveTo commands a to target and waits until the encoder reads within
// tolerance of it.
func (c *Controller) MoveTo(ctx context.Context, a actuator.Interface, target, tolerance int) error {
	if err := a.SetPositionTarget(ctx, target); err != nil {
		return fmt.Errorf("failed to set %s target: %w", a.Name(), err)
	}

	start := time.Now()
	for {
		pos, err := a.EncoderPosition(ctx)
		if err != nil {
			return fmt.Errorf("failed to read %s encoder: %w", a.Name(), err)
		}
		if pos >= target-tolerance && pos <= target+tolerance {
			return nil
		}

		waited := time.Since(start)
		if c.Timeout > 0 && waited >= c.Timeout {
			if c.Log != nil {
				c.Log.WithFields(logrus.Fields{
					"actuator": a.Name(),
					"target":   target,
					"last":     pos,
				}).Warn("seek timed out")
			}
			return &StallError{Op: "move", Actuator: a.Name(), Target: target, Last: pos, Waited: waited}
		}
		if err := sleep(ctx, c.PollInterval); err != nil {
			return err
		}
	}
}

// Home drives a at power until two consecutive samples are equal and
// returns the stalled encoder reading. The motor is stopped afterwards.
func (c *Controller) Home(ctx context.Context, a actuator.Interface, power int, sample, timeout time.Duration) (int, error) {
	if err := a.SetPower(ctx, power); err != nil {
		return 0, fmt.Errorf("failed to power %s: %w", a.Name(), err)
	}

	last, err := a.EncoderPosition(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s encoder: %w", a.Name(), err)
	}

	start := time.Now()
	for {
		if err := sleep(ctx, sample); err != nil {
			return 0, err
		}
		now, err := a.EncoderPosition(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to read %s encoder: %w", a.Name(), err)
		}
		if now == last {
			if err := a.SetPower(ctx, 0); err != nil {
				return 0, fmt.Errorf("failed to stop %s: %w", a.Name(), err)
			}
			return now, nil
		}
		last = now

		waited := time.Since(start)
		if timeout > 0 && waited >= timeout {
			_ = a.SetPower(ctx, 0)
			return 0, &StallError{Op: "home", Actuator: a.Name(), Last: now, Waited: waited}
		}
	}
}

// sleep waits for d or until ctx is done. A zero d still yields to ctx.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
