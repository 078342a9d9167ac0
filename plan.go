package cubebot

import "fmt"

// Plan is the physical realisation of one move from a given orientation.
type Plan struct {
	Move     Move
	Before   Orientation
	Slot     Slot     // Where the target face was before reorientation
	Reorient []Action // Brings the target face down onto the turntable
	Turn     []Action // Grabs the upper layers and turns the bottom face
	After    Orientation
}

// Actions returns the full ordered action list.
func (p Plan) Actions() []Action {
	actions := make([]Action, 0, len(p.Reorient)+len(p.Turn))
	actions = append(actions, p.Reorient...)
	return append(actions, p.Turn...)
}

// PlanMove decides the reorientation needed before m can be executed from
// orientation o, and the orientation that results.
//
// The robot can only turn the bottom face, so the target face is brought
// down with the fewest flips and spins:
//
//	top     flip, flip
//	front   release, spin(180), flip
//	right   release, spin(-90), flip
//	bottom  nothing
//	back    flip
//	left    release, spin(90), flip
//
// Every move then ends with grab, spin(degrees, TurnOvershoot).
func PlanMove(o Orientation, m Move) (Plan, error) {
	if !o.Valid() {
		return Plan{}, fmt.Errorf("%w: %s", ErrInvalidOrientation, o)
	}
	if !m.Face.Valid() {
		return Plan{}, &ParseError{Token: m.Notation(), Reason: "no face letter"}
	}

	p := Plan{Move: m, Before: o, Slot: o.Locate(m.Face)}
	u, f, r := o[0], o[1], o[2]

	switch p.Slot {
	case SlotTop:
		p.Reorient = []Action{FlipAction, FlipAction}
		u, f = u.Opposite(), f.Opposite()
	case SlotFront:
		p.Reorient = []Action{ReleaseAction, SpinAction(180, 0), FlipAction}
		f, r = f.Opposite(), r.Opposite()
		u, f = f, u.Opposite()
	case SlotRight:
		p.Reorient = []Action{ReleaseAction, SpinAction(-90, 0), FlipAction}
		r, f = f, r.Opposite()
		u, f = f, u.Opposite()
	case SlotBottom:
	case SlotBack:
		p.Reorient = []Action{FlipAction}
		u, f = f, u.Opposite()
	case SlotLeft:
		p.Reorient = []Action{ReleaseAction, SpinAction(90, 0), FlipAction}
		f, r = r, f.Opposite()
		u, f = f, u.Opposite()
	}

	p.Turn = []Action{GrabAction, SpinAction(m.Degrees, TurnOvershoot)}
	p.After = Orientation{u, f, r}
	return p, nil
}

// PlanMoves plans a sequence, threading the orientation through each move.
func PlanMoves(o Orientation, moves []Move) ([]Plan, error) {
	plans := make([]Plan, 0, len(moves))
	for _, m := range moves {
		p, err := PlanMove(o, m)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
		o = p.After
	}
	return plans, nil
}
