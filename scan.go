package cubebot

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// FaceReader samples the nine colours of the face currently on top.
type FaceReader interface {
	ReadFace(ctx context.Context, face ScanFace) ([9]RGB, error)
}

// Solver turns 54 facelet colours into a move sequence in cube notation.
type Solver interface {
	Solve(ctx context.Context, facelets Facelets) (string, error)
}

// Solution is the result of a scan-and-solve run.
type Solution struct {
	Facelets Facelets
	Raw      string // Solver output as received
	Moves    []Move
}

// scanSteps lists the actions that present each face to the camera.
var scanSteps = []struct {
	actions []Action
	face    ScanFace
}{
	{[]Action{ReleaseAction}, ScanTop},
	{[]Action{FlipReleaseAction}, ScanFront},
	{[]Action{FlipReleaseAction}, ScanBottom},
	{[]Action{SpinAction(90, 0), FlipReleaseAction}, ScanRight},
	{[]Action{SpinAction(-90, 0), FlipReleaseAction}, ScanBack},
	{[]Action{FlipReleaseAction}, ScanLeft},
}

// Scan presents every face to reader and assembles the facelet colours.
// Afterwards the faces are labelled relative to the cube as it was when the
// scan began, and the orientation is ScanOrientation.
func (r *Robot) Scan(ctx context.Context, reader FaceReader) (Facelets, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.scan(ctx, reader)
}

func (r *Robot) scan(ctx context.Context, reader FaceReader) (Facelets, error) {
	var facelets Facelets

	r.log.Info("Scanning cube")
	for _, s := range scanSteps {
		for _, a := range s.actions {
			if err := r.perform(ctx, a); err != nil {
				return facelets, fmt.Errorf("failed to %s before reading %s: %w", a, s.face, err)
			}
			r.orientation = r.orientation.Apply(a)
		}

		colors, err := reader.ReadFace(ctx, s.face)
		if err != nil {
			return facelets, collaboratorError("face reader", err)
		}
		facelets.SetFace(s.face, colors)
		r.log.WithField("face", s.face.String()).Debug("Read face")
	}

	r.orientation = ScanOrientation
	return facelets, nil
}

// Solve scans the cube, asks solver for a solution and executes it.
func (r *Robot) Solve(ctx context.Context, reader FaceReader, solver Solver) (Solution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var sol Solution
	facelets, err := r.scan(ctx, reader)
	if err != nil {
		return sol, err
	}
	sol.Facelets = facelets

	raw, err := solver.Solve(ctx, facelets)
	sol.Raw = raw
	if err != nil {
		var ce *CollaboratorError
		if errors.As(err, &ce) {
			if ce.Raw == "" {
				ce.Raw = raw
			}
			return sol, err
		}
		return sol, &CollaboratorError{Tool: "solver", Raw: raw, Err: err}
	}
	if strings.TrimSpace(raw) == "" {
		return sol, &CollaboratorError{Tool: "solver", Raw: raw, Err: errors.New("empty solution")}
	}

	moves, err := ParseMoves(raw)
	if err != nil {
		return sol, &CollaboratorError{Tool: "solver", Raw: raw, Err: err}
	}
	sol.Moves = moves

	r.log.WithField("moves", len(moves)).Infof("Solving: %s", FormatMoves(moves))
	if err := r.apply(ctx, moves); err != nil {
		return sol, err
	}
	return sol, nil
}

// collaboratorError wraps err unless it already is a CollaboratorError.
func collaboratorError(tool string, err error) error {
	var ce *CollaboratorError
	if errors.As(err, &ce) {
		return err
	}
	return &CollaboratorError{Tool: tool, Err: err}
}
