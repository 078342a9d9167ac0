package cubebot

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		token string
		want  Move
	}{
		{"R", Move{Right, Clockwise}},
		{"U'", Move{Up, CounterClockwise}},
		{"F2", Move{Front, HalfTurn}},
		{"D", Move{Down, -90}},
		{"B'", Move{Back, 90}},
		{"L2", Move{Left, -180}},
	}
	for _, tt := range tests {
		got, err := ParseMove(tt.token)
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %+v, want %+v", tt.token, got, tt.want)
		}
		if got.Notation() != tt.token {
			t.Errorf("Notation() = %q, want %q", got.Notation(), tt.token)
		}
	}
}

func TestParseMoveErrors(t *testing.T) {
	for _, token := range []string{"", "X", "r", "R3", "R2'", "R'2", "RR", "U''"} {
		_, err := ParseMove(token)
		if err == nil {
			t.Errorf("ParseMove(%q) should fail", token)
			continue
		}
		if !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) error %v should match ErrInvalidNotation", token, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Token != token {
			t.Errorf("ParseMove(%q) error should name the token, got %v", token, err)
		}
	}
}

func TestParseMovesStopsAtFirstError(t *testing.T) {
	moves, err := ParseMoves("R U Q2 F")
	if err == nil {
		t.Fatal("expected error")
	}
	if moves != nil {
		t.Errorf("moves = %v, want nil on error", moves)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Token != "Q2" {
		t.Errorf("error = %v, want token Q2", err)
	}
}

func TestParseMovesWhitespace(t *testing.T) {
	moves, err := ParseMoves("  R\tU'\n F2  ")
	if err != nil {
		t.Fatalf("ParseMoves error: %v", err)
	}
	if got := FormatMoves(moves); got != "R U' F2" {
		t.Errorf("FormatMoves = %q", got)
	}

	moves, err = ParseMoves("")
	if err != nil || len(moves) != 0 {
		t.Errorf("ParseMoves(\"\") = %v, %v", moves, err)
	}
}

func TestMoveInverse(t *testing.T) {
	if R.Inverse() != RPrime || RPrime.Inverse() != R || R2.Inverse() != R2 {
		t.Error("Inverse mismatch")
	}
	if R.Quarters() != -1 || RPrime.Quarters() != 1 || R2.Quarters() != -2 {
		t.Error("Quarters mismatch")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ReleaseAction, "release"},
		{GrabAction, "grab"},
		{FlipAction, "flip"},
		{FlipReleaseAction, "flip+release"},
		{SpinAction(-90, 0), "spin(-90)"},
		{SpinAction(-180, TurnOvershoot), "spin(-180,22)"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.a, got, tt.want)
		}
	}
}
