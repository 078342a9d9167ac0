package cubebot

import (
	"strings"
)

// Face turn amounts in turntable degrees. A clockwise quarter turn of the
// bottom face is a negative spin.
const (
	Clockwise        = -90
	CounterClockwise = 90
	HalfTurn         = -180
)

// Move is a parsed face turn request.
type Move struct {
	Face    Face // Which face to turn
	Degrees int  // Clockwise, CounterClockwise or HalfTurn
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2
func (m Move) Notation() string {
	suffix := ""
	switch m.Degrees {
	case CounterClockwise:
		suffix = "'"
	case HalfTurn, -HalfTurn:
		suffix = "2"
	}
	return m.Face.Letter() + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	inv := m
	switch m.Degrees {
	case Clockwise:
		inv.Degrees = CounterClockwise
	case CounterClockwise:
		inv.Degrees = Clockwise
	}
	return inv
}

// Quarters returns the signed number of quarter turns of the turntable.
func (m Move) Quarters() int {
	return m.Degrees / 90
}

// ParseMove parses a single notation token.
//
// The grammar is a face letter (U F R D B L) optionally followed by ' (counter
// clockwise) or 2 (half turn). Anything else, including the combined suffix
// 2', is rejected with a *ParseError naming the token.
func ParseMove(token string) (Move, error) {
	if token == "" {
		return Move{}, &ParseError{Token: token, Reason: "empty token"}
	}

	face, ok := FaceFromLetter(token[0])
	if !ok {
		return Move{}, &ParseError{Token: token, Reason: "no face letter"}
	}

	m := Move{Face: face, Degrees: Clockwise}
	switch suffix := token[1:]; suffix {
	case "":
	case "'":
		m.Degrees = CounterClockwise
	case "2":
		m.Degrees = HalfTurn
	case "2'", "'2":
		return Move{}, &ParseError{Token: token, Reason: "half turn cannot also be primed"}
	default:
		return Move{}, &ParseError{Token: token, Reason: "unknown suffix " + suffix}
	}
	return m, nil
}

// ParseMoves parses a whitespace-separated sequence of moves.
// Example: "R U R' U'"
// The first malformed token aborts parsing.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}
