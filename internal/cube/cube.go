// Package cube provides a 3x3 Rubik's cube model that can stand in for the
// robot: it executes physical actions, reads faces like the camera and
// compares states up to whole-cube rotation.
package cube

import (
	"strings"

	"github.com/SeamusWaldron/cubebot"
)

// Color represents a face color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// palette holds the colour samples the simulated camera reports.
var palette = [6]cubebot.RGB{
	White:  {235, 235, 235},
	Yellow: {230, 220, 40},
	Green:  {30, 160, 70},
	Blue:   {20, 70, 180},
	Red:    {190, 30, 40},
	Orange: {240, 120, 20},
}

// RGB returns the colour as the simulated camera reports it.
func (c Color) RGB() cubebot.RGB {
	if int(c) < len(palette) {
		return palette[c]
	}
	return cubebot.RGB{}
}

// ColorOf returns the color of face f when solved.
func ColorOf(f cubebot.Face) Color {
	switch f {
	case cubebot.Up:
		return White
	case cubebot.Down:
		return Yellow
	case cubebot.Front:
		return Green
	case cubebot.Back:
		return Blue
	case cubebot.Right:
		return Red
	default:
		return Orange
	}
}

// faceOfColor is the inverse of ColorOf.
func faceOfColor(c Color) cubebot.Face {
	for _, f := range cubebot.Faces {
		if ColorOf(f) == c {
			return f
		}
	}
	return cubebot.Up
}

// vec is a position or direction in the robot frame: x toward the right
// face, y toward the top, z toward the front.
type vec [3]int

func (a vec) dot(b vec) int {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func (a vec) cross(b vec) vec {
	return vec{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

// quarter turns v 90 degrees counterclockwise about the unit axis a, as
// seen looking at the origin from the tip of a.
func (v vec) quarter(a vec) vec {
	d := a.dot(v)
	c := a.cross(v)
	return vec{d*a[0] + c[0], d*a[1] + c[1], d*a[2] + c[2]}
}

// normal returns the outward direction of the position f.
func normal(f cubebot.Face) vec {
	switch f {
	case cubebot.Up:
		return vec{0, 1, 0}
	case cubebot.Down:
		return vec{0, -1, 0}
	case cubebot.Front:
		return vec{0, 0, 1}
	case cubebot.Back:
		return vec{0, 0, -1}
	case cubebot.Right:
		return vec{1, 0, 0}
	default:
		return vec{-1, 0, 0}
	}
}

func positionOf(n vec) cubebot.Face {
	for _, f := range cubebot.Faces {
		if normal(f) == n {
			return f
		}
	}
	return cubebot.Up
}

// grid returns the index 0-8 of a sticker at p on the face at position f,
// in the usual net layout: rows top to bottom, columns left to right, with
// the top and bottom faces read as if tipped toward the viewer.
func grid(f cubebot.Face, p vec) int {
	x, y, z := p[0], p[1], p[2]
	var row, col int
	switch f {
	case cubebot.Up:
		row, col = z+1, x+1
	case cubebot.Down:
		row, col = 1-z, x+1
	case cubebot.Front:
		row, col = 1-y, x+1
	case cubebot.Back:
		row, col = 1-y, 1-x
	case cubebot.Right:
		row, col = 1-y, 1-z
	default:
		row, col = 1-y, z+1
	}
	return row*3 + col
}

type sticker struct {
	pos    vec
	normal vec
	color  Color
}

// Cube represents a 3x3 Rubik's cube sitting in the robot. Positions are
// physical: Up is whatever currently faces the camera.
type Cube struct {
	stickers [54]sticker

	grabbed   bool
	performed []cubebot.Action
	failAfter int
	failErr   error
}

// New creates a solved cube with standard orientation:
// White on top, Green in front.
func New() *Cube {
	c := &Cube{failAfter: -1}
	i := 0
	for _, f := range cubebot.Faces {
		n := normal(f)
		for a := -1; a <= 1; a++ {
			for b := -1; b <= 1; b++ {
				// The sticker sits at n; a and b fill the two free axes.
				p := n
				free := make([]int, 0, 2)
				for axis := 0; axis < 3; axis++ {
					if n[axis] == 0 {
						free = append(free, axis)
					}
				}
				p[free[0]], p[free[1]] = a, b
				c.stickers[i] = sticker{pos: p, normal: n, color: ColorOf(f)}
				i++
			}
		}
	}
	return c
}

// Oriented creates a solved cube sitting with the faces of o on top, in
// front and on the right.
func Oriented(o cubebot.Orientation) *Cube {
	for _, r := range New().rotations() {
		if r.Orientation() == o {
			return r
		}
	}
	return New()
}

// Clone creates a deep copy of the cube state. Failure injection and the
// performed-action log are not copied.
func (c *Cube) Clone() *Cube {
	return &Cube{stickers: c.stickers, grabbed: c.grabbed, failAfter: -1}
}

// IsSolved returns true if every face shows a single color.
func (c *Cube) IsSolved() bool {
	for _, f := range cubebot.Faces {
		face := c.Face(f)
		for _, col := range face {
			if col != face[4] {
				return false
			}
		}
	}
	return true
}

// Face returns the nine colors at position f in net order.
func (c *Cube) Face(f cubebot.Face) [9]Color {
	var out [9]Color
	n := normal(f)
	for _, s := range c.stickers {
		if s.normal == n {
			out[grid(f, s.pos)] = s.color
		}
	}
	return out
}

// Orientation reports which logical faces, identified by their centre
// colours, sit on top, in front and on the right.
func (c *Cube) Orientation() cubebot.Orientation {
	return cubebot.Orientation{
		faceOfColor(c.Face(cubebot.Up)[4]),
		faceOfColor(c.Face(cubebot.Front)[4]),
		faceOfColor(c.Face(cubebot.Right)[4]),
	}
}

// faceletOffset is where each position starts in resolver numbering.
var faceletOffset = map[cubebot.Face]int{
	cubebot.Up:    0,
	cubebot.Left:  9,
	cubebot.Front: 18,
	cubebot.Right: 27,
	cubebot.Back:  36,
	cubebot.Down:  45,
}

// Facelets returns the physical state in resolver numbering.
func (c *Cube) Facelets() cubebot.Facelets {
	var out cubebot.Facelets
	for _, f := range cubebot.Faces {
		for i, col := range c.Face(f) {
			out[faceletOffset[f]+i] = col.RGB()
		}
	}
	return out
}

// Turn rotates the layer at position f by degrees, negative being
// clockwise as seen from outside that face.
func (c *Cube) Turn(f cubebot.Face, degrees int) {
	n := normal(f)
	c.rotate(n, degrees, func(s sticker) bool { return s.pos.dot(n) == 1 })
}

// Rotate turns the whole cube about the axis through position f.
func (c *Cube) Rotate(f cubebot.Face, degrees int) {
	c.rotate(normal(f), degrees, func(sticker) bool { return true })
}

func (c *Cube) rotate(axis vec, degrees int, sel func(sticker) bool) {
	q := (degrees / 90) % 4
	if q < 0 {
		q += 4
	}
	for i := range c.stickers {
		if !sel(c.stickers[i]) {
			continue
		}
		for k := 0; k < q; k++ {
			c.stickers[i].pos = c.stickers[i].pos.quarter(axis)
			c.stickers[i].normal = c.stickers[i].normal.quarter(axis)
		}
	}
}

// ApplyMove turns the layer of the logical face named by m, wherever that
// face currently sits.
func (c *Cube) ApplyMove(m cubebot.Move) {
	c.Turn(c.positionOfFace(m.Face), m.Degrees)
}

// ApplyMoves applies a sequence of moves to the cube.
func (c *Cube) ApplyMoves(moves []cubebot.Move) {
	for _, m := range moves {
		c.ApplyMove(m)
	}
}

func (c *Cube) positionOfFace(f cubebot.Face) cubebot.Face {
	want := ColorOf(f)
	for _, s := range c.stickers {
		if s.pos == s.normal && s.color == want {
			return positionOf(s.normal)
		}
	}
	return f
}

// rotations returns the 24 whole-cube rotations of c.
func (c *Cube) rotations() []*Cube {
	tops := [][]cubebot.Face{
		{},
		{cubebot.Right},
		{cubebot.Right, cubebot.Right},
		{cubebot.Left},
		{cubebot.Front},
		{cubebot.Back},
	}
	out := make([]*Cube, 0, 24)
	for _, seq := range tops {
		r := c.Clone()
		for _, axis := range seq {
			r.Rotate(axis, cubebot.Clockwise)
		}
		for y := 0; y < 4; y++ {
			out = append(out, r.Clone())
			r.Rotate(cubebot.Up, cubebot.Clockwise)
		}
	}
	return out
}

// Equivalent reports whether other shows the same state as c once both are
// held the same way up.
func (c *Cube) Equivalent(other *Cube) bool {
	want := c.colors()
	for _, r := range other.rotations() {
		if r.colors() == want {
			return true
		}
	}
	return false
}

func (c *Cube) colors() [54]Color {
	var out [54]Color
	for _, f := range cubebot.Faces {
		for i, col := range c.Face(f) {
			out[faceletOffset[f]+i] = col
		}
	}
	return out
}

// String returns a text representation of the cube as a net.
func (c *Cube) String() string {
	var b strings.Builder
	writeRows := func(faces []cubebot.Face, indent bool) {
		for row := 0; row < 3; row++ {
			if indent {
				b.WriteString("      ")
			}
			for _, f := range faces {
				face := c.Face(f)
				for col := 0; col < 3; col++ {
					b.WriteString(face[row*3+col].String() + " ")
				}
			}
			b.WriteString("\n")
		}
	}

	writeRows([]cubebot.Face{cubebot.Up}, true)
	writeRows([]cubebot.Face{cubebot.Left, cubebot.Front, cubebot.Right, cubebot.Back}, false)
	writeRows([]cubebot.Face{cubebot.Down}, true)
	return b.String()
}
