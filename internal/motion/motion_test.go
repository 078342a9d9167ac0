package motion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubebot/internal/actuator"
	"github.com/SeamusWaldron/cubebot/internal/profile"
)

func testProfile(t *testing.T, name string) profile.Profile {
	t.Helper()
	p, err := profile.Lookup(name)
	require.NoError(t, err)
	p.PollInterval = 0
	p.HomingSample = 0
	p.GrabSettle = 0
	p.FlipPushPause = 0
	p.FlipGrabPause = 0
	p.MoveTimeout = time.Second
	p.HomingTimeout = time.Second
	return p
}

func newTestRig(t *testing.T, name string) (*Rig, *actuator.Sim, *actuator.Sim) {
	t.Helper()
	grip := actuator.NewSim(actuator.SimConfig{Name: "grip", Step: 50, MinLimit: -400, MaxLimit: 200, PowerStep: 100})
	turn := actuator.NewSim(actuator.SimConfig{Name: "turn", Step: 50})
	rig, err := NewRig(context.Background(), testProfile(t, name), grip, turn, nil)
	require.NoError(t, err)
	return rig, grip, turn
}

func TestMoveToWithinTolerance(t *testing.T) {
	sim := actuator.NewSim(actuator.SimConfig{Name: "m", Step: 7})
	ctrl := &Controller{}

	require.NoError(t, ctrl.MoveTo(context.Background(), sim, 20, 3))
	assert.InDelta(t, 20, sim.Raw(), 3)
}

func TestMoveToStall(t *testing.T) {
	sim := actuator.NewSim(actuator.SimConfig{Name: "grip"})
	sim.Jam(true)
	ctrl := &Controller{PollInterval: time.Millisecond, Timeout: 20 * time.Millisecond}

	err := ctrl.MoveTo(context.Background(), sim, 100, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStall))

	var stall *StallError
	require.True(t, errors.As(err, &stall))
	assert.Equal(t, "move", stall.Op)
	assert.Equal(t, "grip", stall.Actuator)
	assert.Equal(t, 100, stall.Target)
	assert.Equal(t, 0, stall.Last)
}

func TestMoveToCancelled(t *testing.T) {
	sim := actuator.NewSim(actuator.SimConfig{Name: "grip"})
	sim.Jam(true)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := (&Controller{PollInterval: time.Millisecond}).MoveTo(ctx, sim, 100, 3)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestControllerHomeFindsLimit(t *testing.T) {
	sim := actuator.NewSim(actuator.SimConfig{Name: "grip", MinLimit: -400, MaxLimit: 130, PowerStep: 100})

	limit, err := (&Controller{}).Home(context.Background(), sim, 15, 0, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 130, limit)

	cmds := sim.Commands()
	assert.Equal(t, actuator.Command{Op: "power", Value: 0}, cmds[len(cmds)-1])
}

func TestTurntableCumulativeTarget(t *testing.T) {
	turn := actuator.NewSim(actuator.SimConfig{Name: "turn", Step: 1000})
	table := NewTurntable(&Controller{}, turn, 36, 12, 3)
	ctx := context.Background()

	sum := 0
	for _, deg := range []int{-90, 90, -180, 90, 90, -90} {
		require.NoError(t, table.Spin(ctx, deg, 22))
		sum += deg
		assert.Equal(t, -sum, table.Target())
	}
	assert.Equal(t, -sum*3, turn.Raw())
}

func TestTurntableOvershoot(t *testing.T) {
	turn := actuator.NewSim(actuator.SimConfig{Name: "turn", Step: 1000})
	table := NewTurntable(&Controller{}, turn, 36, 12, 3)
	ctx := context.Background()

	require.NoError(t, table.Spin(ctx, -90, 22))
	assert.Equal(t, []int{336, 270}, turn.Targets())

	require.NoError(t, table.Spin(ctx, 90, 22))
	assert.Equal(t, []int{336, 270, -66, 0}, turn.Targets())

	require.NoError(t, table.Spin(ctx, 0, 0))
	assert.Equal(t, []int{336, 270, -66, 0, 0}, turn.Targets())
}

func TestTurntableFailedSpinDropsOvershoot(t *testing.T) {
	turn := actuator.NewSim(actuator.SimConfig{Name: "turn", Step: 1000})
	table := NewTurntable(&Controller{PollInterval: time.Millisecond, Timeout: 20 * time.Millisecond}, turn, 36, 12, 3)
	ctx := context.Background()

	turn.Jam(true)
	err := table.Spin(ctx, -90, 22)
	require.ErrorIs(t, err, ErrStall)
	assert.Equal(t, 90, table.Target())

	turn.Jam(false)
	require.NoError(t, table.Spin(ctx, 90, 22))
	assert.Equal(t, 0, table.Target())
	assert.Equal(t, 0, turn.Raw())
}

func TestTurntableRounding(t *testing.T) {
	table := NewTurntable(&Controller{}, actuator.NewSim(actuator.SimConfig{}), 56, 24, 3)

	assert.Equal(t, 210, table.MotorTarget(90))
	assert.Equal(t, -210, table.MotorTarget(-90))
	assert.Equal(t, 51, table.MotorTarget(22))
	assert.Equal(t, -51, table.MotorTarget(-22))
	assert.Equal(t, 261, table.MotorTarget(112))
}

func TestRigHome(t *testing.T) {
	rig, grip, turn := newTestRig(t, profile.EV3)
	turn.Place(47)

	require.NoError(t, rig.Home(context.Background()))

	// Limit 200, backoff 25: zero sits at raw 175, rest is 35 below it.
	assert.Equal(t, 140, grip.Raw())
	assert.Equal(t, 47, turn.Raw())
	assert.Equal(t, 0, rig.Turntable.Target())
}

func TestRigHomeStall(t *testing.T) {
	rig, grip, _ := newTestRig(t, profile.EV3)
	grip.Jam(true)
	// A jammed motor reads the same value twice, which looks like the limit;
	// the following seek to rest is what stalls.
	rig.ctrl.Timeout = 10 * time.Millisecond
	rig.ctrl.PollInterval = time.Millisecond

	err := rig.Home(context.Background())
	assert.ErrorIs(t, err, ErrStall)
}

func TestRigTurnSpeedLimit(t *testing.T) {
	_, _, turn := newTestRig(t, profile.NXT1)
	assert.Equal(t, actuator.Command{Op: "limit", Value: 0, Aux: 1166}, turn.Commands()[0])
}

func TestGripFlipSequence(t *testing.T) {
	rig, grip, _ := newTestRig(t, profile.EV3)
	ctx := context.Background()

	require.NoError(t, rig.Flip(ctx, false))
	assert.Equal(t, []int{-90, -130, -240, -90}, grip.Targets())

	require.NoError(t, rig.Flip(ctx, true))
	assert.Equal(t, []int{-90, -130, -240, -90, -90, -130, -240, -90, -35}, grip.Targets()[:9])
}

func TestGripGrabReleaseSpeeds(t *testing.T) {
	rig, grip, _ := newTestRig(t, profile.EV3)
	ctx := context.Background()

	require.NoError(t, rig.Grab(ctx))
	require.NoError(t, rig.Release(ctx))
	require.NoError(t, rig.Rest(ctx))

	var limits []int
	for _, c := range grip.Commands() {
		if c.Op == "limit" {
			limits = append(limits, c.Aux)
		}
	}
	assert.Equal(t, []int{400, 400}, limits)
	assert.Equal(t, []int{-130, -35, -35}, grip.Targets())
}

func TestNewRigRejectsBadProfile(t *testing.T) {
	p := testProfile(t, profile.EV3)
	p.Pinion = 0
	_, err := NewRig(context.Background(), p, actuator.NewSim(actuator.SimConfig{}), actuator.NewSim(actuator.SimConfig{}), nil)
	assert.Error(t, err)
}

func TestRigDisable(t *testing.T) {
	rig, grip, turn := newTestRig(t, profile.EV3)

	require.NoError(t, rig.Disable(context.Background()))
	for _, sim := range []*actuator.Sim{grip, turn} {
		cmds := sim.Commands()
		assert.Equal(t, actuator.Command{Op: "disable"}, cmds[len(cmds)-1], sim.Name())
	}
}
