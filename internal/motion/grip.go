package motion

import (
	"context"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubebot/internal/actuator"
	"github.com/SeamusWaldron/cubebot/internal/profile"
)

// Grip sequences the arm that holds the upper layers and tips the cube.
type Grip struct {
	ctrl      *Controller
	motor     actuator.Interface
	pos       profile.GripPositions
	speed     profile.GripSpeeds
	tolerance int

	settle    time.Duration
	pushPause time.Duration
	grabPause time.Duration
}

// NewGrip creates a grip from the positions, speeds and pauses of p.
func NewGrip(ctrl *Controller, motor actuator.Interface, p profile.Profile) *Grip {
	return &Grip{
		ctrl:      ctrl,
		motor:     motor,
		pos:       p.Grip,
		speed:     p.GripSpeed,
		tolerance: p.Tolerance,
		settle:    p.GrabSettle,
		pushPause: p.FlipPushPause,
		grabPause: p.FlipGrabPause,
	}
}

// Grab clamps the top two layers so the table turns only the bottom one.
func (g *Grip) Grab(ctx context.Context) error {
	if err := g.setSpeed(ctx, g.speed.Grab); err != nil {
		return err
	}
	if err := g.move(ctx, "grab", g.pos.Grab); err != nil {
		return err
	}
	return sleep(ctx, g.settle)
}

// Release backs the arm off to rest.
func (g *Grip) Release(ctx context.Context) error {
	if err := g.setSpeed(ctx, g.speed.Rest); err != nil {
		return err
	}
	return g.move(ctx, "release", g.pos.Rest)
}

// Flip tips the cube a quarter turn toward the arm. The arm finishes at
// the push position, or at rest when release is set.
func (g *Grip) Flip(ctx context.Context, release bool) error {
	if err := g.move(ctx, "flip push", g.pos.FlipPush); err != nil {
		return err
	}
	if err := sleep(ctx, g.pushPause); err != nil {
		return err
	}
	if err := g.move(ctx, "flip grab", g.pos.Grab); err != nil {
		return err
	}
	if err := sleep(ctx, g.grabPause); err != nil {
		return err
	}
	if err := g.setSpeed(ctx, g.speed.Flip); err != nil {
		return err
	}
	if err := g.move(ctx, "flip", g.pos.Flip); err != nil {
		return err
	}
	if err := g.move(ctx, "flip return", g.pos.FlipPush); err != nil {
		return err
	}
	if release {
		return g.Release(ctx)
	}
	return nil
}

// Rest parks the arm without changing its speed limit.
func (g *Grip) Rest(ctx context.Context) error {
	return g.move(ctx, "rest", g.pos.Rest)
}

func (g *Grip) move(ctx context.Context, step string, target int) error {
	if err := g.ctrl.MoveTo(ctx, g.motor, target, g.tolerance); err != nil {
		return fmt.Errorf("failed to %s: %w", step, err)
	}
	return nil
}

func (g *Grip) setSpeed(ctx context.Context, dps int) error {
	if err := g.motor.SetSpeedLimit(ctx, 0, dps); err != nil {
		return fmt.Errorf("failed to set grip speed: %w", err)
	}
	return nil
}
