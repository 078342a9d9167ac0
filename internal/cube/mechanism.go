package cube

import (
	"context"
	"fmt"

	"github.com/SeamusWaldron/cubebot"
)

var (
	_ cubebot.Mechanism  = (*Cube)(nil)
	_ cubebot.FaceReader = (*Cube)(nil)
)

// FailAfter lets n more actions succeed and fails the next one with err.
// A negative n disables it.
func (c *Cube) FailAfter(n int, err error) {
	c.failAfter = n
	c.failErr = err
}

// Performed returns the physical actions executed so far.
func (c *Cube) Performed() []cubebot.Action {
	return append([]cubebot.Action(nil), c.performed...)
}

// Grabbed reports whether the grip currently holds the upper layers.
func (c *Cube) Grabbed() bool {
	return c.grabbed
}

func (c *Cube) record(a cubebot.Action) error {
	if c.failAfter == 0 {
		c.failAfter = -1
		return fmt.Errorf("virtual %s: %w", a, c.failErr)
	}
	if c.failAfter > 0 {
		c.failAfter--
	}
	c.performed = append(c.performed, a)
	return nil
}

// Home leaves the cube where it is with the grip open.
func (c *Cube) Home(ctx context.Context) error {
	c.grabbed = false
	return ctx.Err()
}

// Release opens the grip.
func (c *Cube) Release(ctx context.Context) error {
	if err := c.record(cubebot.ReleaseAction); err != nil {
		return err
	}
	c.grabbed = false
	return nil
}

// Grab clamps the top two layers.
func (c *Cube) Grab(ctx context.Context) error {
	if err := c.record(cubebot.GrabAction); err != nil {
		return err
	}
	c.grabbed = true
	return nil
}

// Flip tips the cube toward the grip: the front comes to the top. The grip
// no longer holds the cube afterwards.
func (c *Cube) Flip(ctx context.Context, release bool) error {
	a := cubebot.FlipAction
	if release {
		a = cubebot.FlipReleaseAction
	}
	if err := c.record(a); err != nil {
		return err
	}
	c.Rotate(cubebot.Right, cubebot.Clockwise)
	c.grabbed = false
	return nil
}

// Spin turns the table. With the grip closed only the bottom layer turns.
// Overshoot nets out and is ignored.
func (c *Cube) Spin(ctx context.Context, degrees, overshoot int) error {
	if err := c.record(cubebot.SpinAction(degrees, overshoot)); err != nil {
		return err
	}
	if c.grabbed {
		c.Turn(cubebot.Down, degrees)
	} else {
		c.Rotate(cubebot.Down, degrees)
	}
	return nil
}

// Rest opens the grip.
func (c *Cube) Rest(ctx context.Context) error {
	c.grabbed = false
	return nil
}

// ReadFace reports the top face as the camera sees it: rows from the back
// edge toward the front, columns left to right.
func (c *Cube) ReadFace(ctx context.Context, _ cubebot.ScanFace) ([9]cubebot.RGB, error) {
	var out [9]cubebot.RGB
	if err := ctx.Err(); err != nil {
		return out, err
	}
	for i, col := range c.Face(cubebot.Up) {
		out[i] = col.RGB()
	}
	return out, nil
}

// VerifyPlan executes the planned actions for moves on a cube starting in
// orientation from and checks the result against applying the notation
// directly to a cube held the default way.
func VerifyPlan(from cubebot.Orientation, moves []cubebot.Move) error {
	plans, err := cubebot.PlanMoves(from, moves)
	if err != nil {
		return err
	}

	robot := Oriented(from)
	ctx := context.Background()
	for _, p := range plans {
		for _, a := range p.Actions() {
			if err := cubebot.Perform(ctx, robot, a); err != nil {
				return err
			}
		}
		if got := robot.Orientation(); got != p.After {
			return fmt.Errorf("after %s: cube is held %s, tracked %s", p.Move, got, p.After)
		}
	}

	want := New()
	want.ApplyMoves(moves)
	if !robot.Equivalent(want) {
		return fmt.Errorf("robot result differs from notation:\n%s\nwant:\n%s", robot, want)
	}
	return nil
}
