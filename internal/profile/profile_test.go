package profile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	nxt, err := Lookup("NXT1")
	require.NoError(t, err)
	assert.Equal(t, NXT1, nxt.Name)
	assert.Equal(t, 56, nxt.Gear)
	assert.Equal(t, 24, nxt.Pinion)

	ev3, err := Lookup(EV3)
	require.NoError(t, err)
	assert.Equal(t, 36, ev3.Gear)
	assert.Equal(t, 12, ev3.Pinion)

	// Same grip calibration, independent values.
	assert.Equal(t, nxt.Grip, ev3.Grip)
	nxt.Grip.Grab = -140
	again, _ := Lookup(EV3)
	assert.Equal(t, -130, again.Grip.Grab)
}

func TestLookupUnsupported(t *testing.T) {
	_, err := Lookup("rcx")
	require.ErrorIs(t, err, ErrUnsupportedVariant)
	assert.Contains(t, err.Error(), "ev3, nxt1")
}

func TestTurnLimit(t *testing.T) {
	p, _ := Lookup(NXT1)
	assert.Equal(t, 1166, p.TurnLimit())

	p.TurnSpeedLimit = 900
	assert.Equal(t, 900, p.TurnLimit())

	ev3, _ := Lookup(EV3)
	assert.Equal(t, 1500, ev3.TurnLimit())
}

func TestParseOverlay(t *testing.T) {
	base, _ := Lookup(NXT1)
	doc := []byte(`
grip:
  grab: -128
grip_speed:
  flip: 650
move_timeout: 4s
`)
	p, err := Parse(doc, base)
	require.NoError(t, err)

	assert.Equal(t, NXT1, p.Name)
	assert.Equal(t, -128, p.Grip.Grab)
	assert.Equal(t, -35, p.Grip.Rest, "unset fields keep base values")
	assert.Equal(t, 650, p.GripSpeed.Flip)
	assert.Equal(t, 400, p.GripSpeed.Grab)
	assert.Equal(t, 4*time.Second, p.MoveTimeout)
	assert.Equal(t, 10*time.Millisecond, p.PollInterval)
}

func TestParseSelectsVariant(t *testing.T) {
	base, _ := Lookup(NXT1)
	p, err := Parse([]byte("name: EV3\ntolerance: 5\n"), base)
	require.NoError(t, err)
	assert.Equal(t, EV3, p.Name)
	assert.Equal(t, 36, p.Gear)
	assert.Equal(t, 5, p.Tolerance)

	_, err = Parse([]byte("name: rcx\n"), base)
	assert.ErrorIs(t, err, ErrUnsupportedVariant)
}

func TestParseRejectsBadGearing(t *testing.T) {
	base, _ := Lookup(EV3)
	_, err := Parse([]byte("pinion: 0\n"), base)
	assert.Error(t, err)
}

func TestLoadFileRoundTrip(t *testing.T) {
	p, _ := Lookup(EV3)
	p.Grip.Flip = -250
	p.HomingTimeout = 3 * time.Second

	data, err := p.Marshal()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "robot.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	base, _ := Lookup(NXT1)
	loaded, err := LoadFile(path, base)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadFileMissing(t *testing.T) {
	base, _ := Lookup(NXT1)
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"), base)
	assert.Error(t, err)
}
