package cubebot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RGB is a colour sample as reported by the cube tracker.
type RGB [3]int

// Facelets holds the 54 sampled colours in the resolver's facelet numbering:
// up 1-9, left 10-18, front 19-27, right 28-36, back 37-45, down 46-54.
type Facelets [54]RGB

// At returns the colour of facelet n (1-54).
func (f *Facelets) At(n int) RGB {
	return f[n-1]
}

// Set stores the colour of facelet n (1-54).
func (f *Facelets) Set(n int, c RGB) {
	f[n-1] = c
}

// SetFace stores nine colours read from face s in camera order.
func (f *Facelets) SetFace(s ScanFace, colors [9]RGB) {
	numbers := s.Numbers()
	for i, c := range colors {
		f.Set(numbers[i], c)
	}
}

// MarshalJSON encodes the facelets as the resolver's request object,
// {"1": [r, g, b], "2": [r, g, b], ...} in facelet order.
func (f Facelets) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteString("{")
	for i, c := range f {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "\"%d\": [%d, %d, %d]", i+1, c[0], c[1], c[2])
	}
	b.WriteString("}")
	return []byte(b.String()), nil
}

// UnmarshalJSON decodes the object written by MarshalJSON.
func (f *Facelets) UnmarshalJSON(data []byte) error {
	var raw map[string]RGB
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, c := range raw {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(f) {
			return fmt.Errorf("facelet key %q out of range", key)
		}
		f.Set(n, c)
	}
	return nil
}

// ScanFace names the face presented to the camera during a scan, relative to
// the cube as it was when the scan began.
type ScanFace int

const (
	ScanTop ScanFace = iota
	ScanFront
	ScanBottom
	ScanRight
	ScanBack
	ScanLeft
)

// ScanOrder is the order in which faces are presented to the camera.
var ScanOrder = [6]ScanFace{ScanTop, ScanFront, ScanBottom, ScanRight, ScanBack, ScanLeft}

func (s ScanFace) String() string {
	switch s {
	case ScanTop:
		return "top"
	case ScanFront:
		return "front"
	case ScanBottom:
		return "bottom"
	case ScanRight:
		return "right"
	case ScanBack:
		return "back"
	case ScanLeft:
		return "left"
	default:
		return "unknown"
	}
}

// Face returns the logical face a scan step reads.
func (s ScanFace) Face() Face {
	switch s {
	case ScanTop:
		return Up
	case ScanFront:
		return Front
	case ScanBottom:
		return Down
	case ScanRight:
		return Right
	case ScanBack:
		return Back
	default:
		return Left
	}
}

// Numbers returns the facelet numbers for the nine camera readings of s.
// The camera sees some faces rotated, hence the permutations.
func (s ScanFace) Numbers() [9]int {
	switch s {
	case ScanTop:
		return [9]int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	case ScanFront:
		return [9]int{19, 20, 21, 22, 23, 24, 25, 26, 27}
	case ScanRight:
		return [9]int{36, 35, 34, 33, 32, 31, 30, 29, 28}
	case ScanBack:
		return [9]int{43, 40, 37, 44, 41, 38, 45, 42, 39}
	case ScanLeft:
		return [9]int{16, 13, 10, 17, 14, 11, 18, 15, 12}
	default:
		return [9]int{46, 47, 48, 49, 50, 51, 52, 53, 54}
	}
}
