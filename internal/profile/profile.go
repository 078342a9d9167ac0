// Package profile holds per-robot calibration: gearing, grip positions,
// speeds and timing of the two supported robot variants.
package profile

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

// ErrUnsupportedVariant is returned for an unknown robot variant name.
var ErrUnsupportedVariant = errors.New("cubebot: unsupported robot variant")

// GripPositions are encoder targets of the grip motor, relative to the
// homed zero just off the mechanical limit.
type GripPositions struct {
	Home     int `yaml:"home"`
	Rest     int `yaml:"rest"`
	FlipPush int `yaml:"flip_push"`
	Grab     int `yaml:"grab"`
	Flip     int `yaml:"flip"`
}

// GripSpeeds are grip speed limits (degrees per second) per transition.
type GripSpeeds struct {
	Grab int `yaml:"grab"`
	Flip int `yaml:"flip"`
	Rest int `yaml:"rest"`
}

// Profile is the full calibration of one robot.
type Profile struct {
	Name string `yaml:"name"`

	// Turntable gearing: motor degrees = table degrees * Gear / Pinion.
	Gear           int `yaml:"gear"`
	Pinion         int `yaml:"pinion"`
	TurnSpeedLimit int `yaml:"turn_speed_limit"` // 0 means 500 * Gear / Pinion

	Grip      GripPositions `yaml:"grip"`
	GripSpeed GripSpeeds    `yaml:"grip_speed"`

	Tolerance     int           `yaml:"tolerance"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	MoveTimeout   time.Duration `yaml:"move_timeout"` // 0 waits forever
	HomingPower   int           `yaml:"homing_power"`
	HomingBackoff int           `yaml:"homing_backoff"`
	HomingSample  time.Duration `yaml:"homing_sample"`
	HomingTimeout time.Duration `yaml:"homing_timeout"` // 0 waits forever

	GrabSettle    time.Duration `yaml:"grab_settle"`
	FlipPushPause time.Duration `yaml:"flip_push_pause"`
	FlipGrabPause time.Duration `yaml:"flip_grab_pause"`
}

// Variant names.
const (
	NXT1 = "nxt1"
	EV3  = "ev3"
)

func base(name string, gear, pinion int) Profile {
	return Profile{
		Name:   name,
		Gear:   gear,
		Pinion: pinion,
		Grip: GripPositions{
			Home:     0,
			Rest:     -35,
			FlipPush: -90,
			Grab:     -130,
			Flip:     -240,
		},
		GripSpeed: GripSpeeds{
			Grab: 400,
			Flip: 600,
			Rest: 400,
		},
		Tolerance:     3,
		PollInterval:  10 * time.Millisecond,
		MoveTimeout:   10 * time.Second,
		HomingPower:   15,
		HomingBackoff: 25,
		HomingSample:  100 * time.Millisecond,
		HomingTimeout: 15 * time.Second,
		GrabSettle:    200 * time.Millisecond,
		FlipPushPause: 50 * time.Millisecond,
		FlipGrabPause: 200 * time.Millisecond,
	}
}

// The variants differ only in turntable gearing.
var variants = map[string]func() Profile{
	NXT1: func() Profile { return base(NXT1, 56, 24) },
	EV3:  func() Profile { return base(EV3, 36, 12) },
}

// Names returns the supported variant names, sorted.
func Names() []string {
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of the named variant's profile.
func Lookup(name string) (Profile, error) {
	fn, ok := variants[strings.ToLower(name)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedVariant, name, strings.Join(Names(), ", "))
	}
	return fn(), nil
}

// TurnLimit returns the turntable motor speed limit.
func (p Profile) TurnLimit() int {
	if p.TurnSpeedLimit > 0 {
		return p.TurnSpeedLimit
	}
	return 500 * p.Gear / p.Pinion
}

// Validate checks values the motion layer divides by or depends on.
func (p Profile) Validate() error {
	if p.Gear <= 0 || p.Pinion <= 0 {
		return fmt.Errorf("profile %s: gear and pinion must be positive (got %d/%d)", p.Name, p.Gear, p.Pinion)
	}
	if p.Tolerance < 0 {
		return fmt.Errorf("profile %s: negative tolerance %d", p.Name, p.Tolerance)
	}
	if p.HomingPower == 0 {
		return fmt.Errorf("profile %s: homing power must be non-zero", p.Name)
	}
	return nil
}

// Parse overlays a YAML document onto base. Fields absent from the
// document keep base's values; a name field selects a different base variant.
func Parse(data []byte, base Profile) (Profile, error) {
	var head struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	if head.Name != "" && !strings.EqualFold(head.Name, base.Name) {
		variant, err := Lookup(head.Name)
		if err != nil {
			return Profile{}, err
		}
		base = variant
	}

	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	p.Name = strings.ToLower(p.Name)
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// LoadFile reads a YAML override file and overlays it onto base.
func LoadFile(path string, base Profile) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read profile file: %w", err)
	}
	return Parse(data, base)
}

// Marshal renders the profile as YAML, the format LoadFile accepts.
func (p Profile) Marshal() ([]byte, error) {
	return yaml.Marshal(&p)
}
