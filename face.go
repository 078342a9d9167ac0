package cubebot

// Face identifies one of the six sides of the cube.
type Face int

const (
	Up    Face = 0
	Front Face = 1
	Right Face = 2
	Down  Face = 3
	Back  Face = 4
	Left  Face = 5
)

// Faces lists every face in numeric order.
var Faces = [6]Face{Up, Front, Right, Down, Back, Left}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	return (f + 3) % 6
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= Up && f <= Left
}

// Letter returns the single-letter notation for the face.
func (f Face) Letter() string {
	switch f {
	case Up:
		return "U"
	case Front:
		return "F"
	case Right:
		return "R"
	case Down:
		return "D"
	case Back:
		return "B"
	case Left:
		return "L"
	default:
		return "?"
	}
}

func (f Face) String() string {
	switch f {
	case Up:
		return "up"
	case Front:
		return "front"
	case Right:
		return "right"
	case Down:
		return "down"
	case Back:
		return "back"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// FaceFromLetter returns the face for a notation letter.
func FaceFromLetter(c byte) (Face, bool) {
	switch c {
	case 'U':
		return Up, true
	case 'F':
		return Front, true
	case 'R':
		return Right, true
	case 'D':
		return Down, true
	case 'B':
		return Back, true
	case 'L':
		return Left, true
	}
	return 0, false
}
