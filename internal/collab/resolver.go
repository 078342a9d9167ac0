package collab

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubebot"
)

// Default command templates. {rgb} is the facelet JSON object, {state} the
// resolver's output.
var (
	DefaultResolver = []string{"rubiks-color-resolver.py", "--rgb", "{rgb}"}
	DefaultKociemba = []string{"kociemba", "{state}"}
)

// Resolver turns facelet colours into a solution. The resolver command
// classifies the colours; when Kociemba is set its last output line is
// passed on to that command, whose last line is the solution.
type Resolver struct {
	Runner   Runner
	Command  []string
	Kociemba []string // optional
	Log      logrus.FieldLogger
}

var _ cubebot.Solver = (*Resolver)(nil)

// NewResolver returns a resolver using subprocesses. Pass a nil kociemba
// when the resolver itself prints moves.
func NewResolver(command, kociemba []string, log logrus.FieldLogger) *Resolver {
	if len(command) == 0 {
		command = DefaultResolver
	}
	return &Resolver{
		Runner:   ExecRunner{},
		Command:  command,
		Kociemba: kociemba,
		Log:      log,
	}
}

// Solve runs the resolver (and solver stage) for facelets.
func (r *Resolver) Solve(ctx context.Context, facelets cubebot.Facelets) (string, error) {
	rgb, err := facelets.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed to encode facelets: %w", err)
	}

	state, err := r.stage(ctx, "resolver", r.Command, map[string]string{"rgb": string(rgb)})
	if err != nil {
		return "", err
	}
	if len(r.Kociemba) == 0 {
		return state, nil
	}
	if state == "" {
		return "", &cubebot.CollaboratorError{Tool: "resolver", Raw: state, Err: fmt.Errorf("empty cube state")}
	}
	return r.stage(ctx, "kociemba", r.Kociemba, map[string]string{"state": state})
}

func (r *Resolver) stage(ctx context.Context, tool string, template []string, vars map[string]string) (string, error) {
	name, args, err := expand(template, vars)
	if err != nil {
		return "", &cubebot.CollaboratorError{Tool: tool, Err: err}
	}
	out, err := r.Runner.Run(ctx, name, args...)
	if err != nil {
		return "", &cubebot.CollaboratorError{Tool: tool, Raw: string(out), Err: err}
	}
	line := lastLine(out)
	if r.Log != nil {
		r.Log.WithFields(logrus.Fields{"tool": tool, "output": line}).Debug("collaborator finished")
	}
	return line, nil
}
