package motion

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubebot/internal/actuator"
	"github.com/SeamusWaldron/cubebot/internal/logging"
	"github.com/SeamusWaldron/cubebot/internal/profile"
)

// Rig is the physical robot: a grip and a geared turntable sharing one
// controller. Its methods match the mechanism the dispatcher drives.
type Rig struct {
	profile profile.Profile
	ctrl    *Controller
	gripM   actuator.Interface
	turnM   actuator.Interface

	Grip      *Grip
	Turntable *Turntable

	log logrus.FieldLogger
}

// NewRig validates p and wires the two motors. The turn motor's speed limit
// is applied immediately.
func NewRig(ctx context.Context, p profile.Profile, grip, turn actuator.Interface, log logrus.FieldLogger) (*Rig, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}

	ctrl := &Controller{
		PollInterval: p.PollInterval,
		Timeout:      p.MoveTimeout,
		Log:          log,
	}

	if err := turn.SetSpeedLimit(ctx, 0, p.TurnLimit()); err != nil {
		return nil, fmt.Errorf("failed to limit turntable speed: %w", err)
	}

	return &Rig{
		profile:   p,
		ctrl:      ctrl,
		gripM:     grip,
		turnM:     turn,
		Grip:      NewGrip(ctrl, grip, p),
		Turntable: NewTurntable(ctrl, turn, p.Gear, p.Pinion, p.Tolerance),
		log:       log,
	}, nil
}

// Profile returns the calibration the rig was built with.
func (r *Rig) Profile() profile.Profile {
	return r.profile
}

// Home finds the grip's mechanical limit, zeroes both encoders and parks the
// grip at rest. The turntable's current angle becomes its new zero.
func (r *Rig) Home(ctx context.Context) error {
	p := r.profile
	r.log.WithFields(logrus.Fields{
		"power":  p.HomingPower,
		"sample": p.HomingSample,
	}).Debug("homing grip")

	limit, err := r.ctrl.Home(ctx, r.gripM, p.HomingPower, p.HomingSample, p.HomingTimeout)
	if err != nil {
		return fmt.Errorf("failed to home grip: %w", err)
	}
	if err := r.gripM.OffsetEncoderZero(ctx, limit-p.HomingBackoff); err != nil {
		return fmt.Errorf("failed to zero grip encoder: %w", err)
	}
	if err := r.Grip.Rest(ctx); err != nil {
		return err
	}

	pos, err := r.turnM.EncoderPosition(ctx)
	if err != nil {
		return fmt.Errorf("failed to read turntable encoder: %w", err)
	}
	if err := r.turnM.OffsetEncoderZero(ctx, pos); err != nil {
		return fmt.Errorf("failed to zero turntable encoder: %w", err)
	}
	r.Turntable.Reset()

	r.log.WithField("grip_limit", limit).Info("homed")
	return r.Turntable.Spin(ctx, 0, 0)
}

// Release backs the grip off the cube.
func (r *Rig) Release(ctx context.Context) error { return r.Grip.Release(ctx) }

// Grab clamps the upper layers.
func (r *Rig) Grab(ctx context.Context) error { return r.Grip.Grab(ctx) }

// Flip tips the cube, optionally releasing afterwards.
func (r *Rig) Flip(ctx context.Context, release bool) error { return r.Grip.Flip(ctx, release) }

// Spin rotates the turntable.
func (r *Rig) Spin(ctx context.Context, degrees, overshoot int) error {
	r.log.WithFields(logrus.Fields{
		"degrees":   degrees,
		"overshoot": overshoot,
		"target":    r.Turntable.Target() - degrees,
	}).Debug("spin")
	return r.Turntable.Spin(ctx, degrees, overshoot)
}

// Rest parks the grip.
func (r *Rig) Rest(ctx context.Context) error { return r.Grip.Rest(ctx) }

// Disable removes drive from both motors. Both are attempted even if the
// first fails.
func (r *Rig) Disable(ctx context.Context) error {
	var errs []error
	for _, m := range []actuator.Interface{r.gripM, r.turnM} {
		if err := m.Disable(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to disable %s: %w", m.Name(), err))
		}
	}
	return errors.Join(errs...)
}
