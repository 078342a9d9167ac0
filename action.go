package cubebot

import (
	"fmt"
	"strings"
)

// ActionKind is a physical primitive the robot can perform.
type ActionKind int

const (
	ActionRelease ActionKind = iota // Open the grip to its rest position
	ActionGrab                      // Close the grip on the upper layers
	ActionFlip                      // Tip the cube about the horizontal axis
	ActionSpin                      // Rotate the turntable
)

func (k ActionKind) String() string {
	switch k {
	case ActionRelease:
		return "release"
	case ActionGrab:
		return "grab"
	case ActionFlip:
		return "flip"
	case ActionSpin:
		return "spin"
	default:
		return "unknown"
	}
}

// Action is one physical step. Degrees and Overshoot apply to spins;
// Release applies to flips.
type Action struct {
	Kind      ActionKind
	Degrees   int
	Overshoot int
	Release   bool
}

// TurnOvershoot is the backlash overshoot applied to every grabbed face turn.
const TurnOvershoot = 22

var (
	ReleaseAction     = Action{Kind: ActionRelease}
	GrabAction        = Action{Kind: ActionGrab}
	FlipAction        = Action{Kind: ActionFlip}
	FlipReleaseAction = Action{Kind: ActionFlip, Release: true}
)

// SpinAction returns a turntable spin.
func SpinAction(degrees, overshoot int) Action {
	return Action{Kind: ActionSpin, Degrees: degrees, Overshoot: overshoot}
}

// String renders the action in the compact form used by logs and plans:
// release, grab, flip, flip+release, spin(-90), spin(-90,22).
func (a Action) String() string {
	switch a.Kind {
	case ActionSpin:
		if a.Overshoot != 0 {
			return fmt.Sprintf("spin(%d,%d)", a.Degrees, a.Overshoot)
		}
		return fmt.Sprintf("spin(%d)", a.Degrees)
	case ActionFlip:
		if a.Release {
			return "flip+release"
		}
		return "flip"
	default:
		return a.Kind.String()
	}
}

// FormatActions joins actions with spaces.
func FormatActions(actions []Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}
