package cubebot

import (
	"errors"
	"fmt"

	"github.com/SeamusWaldron/cubebot/internal/motion"
	"github.com/SeamusWaldron/cubebot/internal/profile"
)

// Sentinel errors for the cubebot package.
var (
	// Parsing errors
	ErrInvalidNotation = errors.New("cubebot: invalid move notation")

	// Configuration errors
	ErrUnsupportedVariant = profile.ErrUnsupportedVariant

	// Mechanical errors
	ErrStall = motion.ErrStall

	// External tool errors
	ErrCollaborator = errors.New("cubebot: collaborator failed")

	// State errors
	ErrInvalidOrientation = errors.New("cubebot: invalid orientation")
)

// StallError reports a position seek or homing loop that did not converge.
type StallError = motion.StallError

// ParseError reports a move token that could not be parsed.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cubebot: invalid move %q: %s", e.Token, e.Reason)
}

// Is reports whether target is ErrInvalidNotation.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidNotation
}

// CollaboratorError reports a failure of an external tool (camera, tracker,
// colour resolver, solver). Raw carries whatever the tool produced.
type CollaboratorError struct {
	Tool string
	Raw  string
	Err  error
}

func (e *CollaboratorError) Error() string {
	msg := fmt.Sprintf("cubebot: %s failed", e.Tool)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Raw != "" {
		msg += fmt.Sprintf(" (output %q)", truncate(e.Raw, 120))
	}
	return msg
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCollaborator.
func (e *CollaboratorError) Is(target error) bool {
	return target == ErrCollaborator
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
