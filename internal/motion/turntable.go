package motion

import (
	"context"
	"fmt"

	"github.com/SeamusWaldron/cubebot/internal/actuator"
)

// Turntable keeps the cumulative target of the rotation axis. The target is
// the single record of where the table should be; it is never recomputed
// from the encoder.
type Turntable struct {
	ctrl      *Controller
	motor     actuator.Interface
	gear      int
	pinion    int
	tolerance int
	target    int
}

// NewTurntable creates a turntable geared gear:pinion to motor.
func NewTurntable(ctrl *Controller, motor actuator.Interface, gear, pinion, tolerance int) *Turntable {
	return &Turntable{
		ctrl:      ctrl,
		motor:     motor,
		gear:      gear,
		pinion:    pinion,
		tolerance: tolerance,
	}
}

// Target returns the cumulative table target in degrees.
func (t *Turntable) Target() int {
	return t.target
}

// Reset zeroes the cumulative target. Only homing should call this.
func (t *Turntable) Reset() {
	t.target = 0
}

// MotorTarget converts a table angle to motor degrees, rounding to nearest.
func (t *Turntable) MotorTarget(table int) int {
	return divRound(table*t.gear, t.pinion)
}

// Spin rotates the table by degrees. A non-zero overshoot first travels that
// much further in the direction of rotation, then returns, so gear backlash
// is taken up before the final position is trusted.
func (t *Turntable) Spin(ctx context.Context, degrees, overshoot int) error {
	if degrees < 0 {
		overshoot = -overshoot
	}

	t.target -= degrees + overshoot
	if err := t.ctrl.MoveTo(ctx, t.motor, t.MotorTarget(t.target), t.tolerance); err != nil {
		// The overshoot is never part of the resting target.
		t.target += overshoot
		return fmt.Errorf("failed to spin %d: %w", degrees, err)
	}

	if overshoot != 0 {
		t.target += overshoot
		if err := t.ctrl.MoveTo(ctx, t.motor, t.MotorTarget(t.target), t.tolerance); err != nil {
			return fmt.Errorf("failed to return from overshoot: %w", err)
		}
	}
	return nil
}

// divRound divides rounding half away from zero.
func divRound(n, d int) int {
	if (n < 0) != (d < 0) {
		return (n - d/2) / d
	}
	return (n + d/2) / d
}
