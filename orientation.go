package cubebot

import (
	"fmt"
	"strings"
)

// Orientation records which face currently sits at the Up, Front and Right
// reference positions of the robot.
type Orientation [3]Face

var (
	// DefaultOrientation is assumed after homing.
	DefaultOrientation = Orientation{Up, Front, Right}

	// ScanOrientation is held after a colour scan. The scan labels faces by
	// where they were when it began, and ends with the original left face up.
	ScanOrientation = Orientation{Left, Front, Up}
)

// Up returns the face at the top position.
func (o Orientation) Up() Face { return o[0] }

// Front returns the face at the front position.
func (o Orientation) Front() Face { return o[1] }

// Right returns the face at the right position.
func (o Orientation) Right() Face { return o[2] }

// Down returns the face resting on the turntable.
func (o Orientation) Down() Face { return o[0].Opposite() }

// Back returns the face at the back position.
func (o Orientation) Back() Face { return o[1].Opposite() }

// Left returns the face at the left position.
func (o Orientation) Left() Face { return o[2].Opposite() }

// Valid reports whether the three faces are known, distinct and mutually
// non-opposite.
func (o Orientation) Valid() bool {
	for i := 0; i < 3; i++ {
		if !o[i].Valid() {
			return false
		}
		for j := i + 1; j < 3; j++ {
			if o[i] == o[j] || o[i] == o[j].Opposite() {
				return false
			}
		}
	}
	return true
}

// Slot is a position on the held cube relative to the robot.
type Slot int

const (
	SlotTop Slot = iota
	SlotFront
	SlotRight
	SlotBottom
	SlotBack
	SlotLeft
)

func (s Slot) String() string {
	switch s {
	case SlotTop:
		return "top"
	case SlotFront:
		return "front"
	case SlotRight:
		return "right"
	case SlotBottom:
		return "bottom"
	case SlotBack:
		return "back"
	case SlotLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Locate returns the slot currently occupied by face f.
func (o Orientation) Locate(f Face) Slot {
	switch f {
	case o.Up():
		return SlotTop
	case o.Front():
		return SlotFront
	case o.Right():
		return SlotRight
	case o.Down():
		return SlotBottom
	case o.Back():
		return SlotBack
	default:
		return SlotLeft
	}
}

// Flipped returns the orientation after one flip: the front face comes up
// and the old top goes to the back.
func (o Orientation) Flipped() Orientation {
	up := o[0]
	o[0] = o[1]
	o[1] = up.Opposite()
	return o
}

// Spun returns the orientation after the released cube is rotated on the
// turntable. Degrees must be a multiple of 90.
func (o Orientation) Spun(degrees int) Orientation {
	quarters := ((degrees/90)%4 + 4) % 4
	for i := 0; i < quarters; i++ {
		front := o[1]
		o[1] = o[2]
		o[2] = front.Opposite()
	}
	return o
}

// Apply returns the orientation after a reorientation action. Spins are
// treated as whole-cube rotations, which holds whenever the grip is released.
func (o Orientation) Apply(a Action) Orientation {
	switch a.Kind {
	case ActionFlip:
		return o.Flipped()
	case ActionSpin:
		return o.Spun(a.Degrees)
	default:
		return o
	}
}

// String returns the orientation as face letters, e.g. "[U F R]".
func (o Orientation) String() string {
	return "[" + o[0].Letter() + " " + o[1].Letter() + " " + o[2].Letter() + "]"
}

// ParseOrientation parses three face letters, optionally separated by commas
// or spaces: "UFR", "U,F,R", "L F U".
func ParseOrientation(s string) (Orientation, error) {
	letters := strings.NewReplacer(",", "", " ", "", "[", "", "]", "").Replace(s)
	if len(letters) != 3 {
		return Orientation{}, fmt.Errorf("%w: %q needs three faces", ErrInvalidOrientation, s)
	}

	var o Orientation
	for i := 0; i < 3; i++ {
		f, ok := FaceFromLetter(letters[i])
		if !ok {
			return Orientation{}, fmt.Errorf("%w: %q has unknown face %q", ErrInvalidOrientation, s, letters[i])
		}
		o[i] = f
	}

	if !o.Valid() {
		return Orientation{}, fmt.Errorf("%w: %s", ErrInvalidOrientation, o)
	}
	return o, nil
}
