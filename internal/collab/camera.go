package collab

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubebot"
)

// Default command templates. {file} is replaced by the image path.
var (
	DefaultCapture = []string{"raspistill", "-w", "300", "-h", "300", "-t", "1", "-o", "{file}"}
	DefaultTracker = []string{"rubiks-cube-tracker.py", "--filename", "{file}"}
)

// Camera photographs the face on top of the cube and has a tracker
// program sample its nine squares.
type Camera struct {
	Runner  Runner
	Capture []string
	Tracker []string
	Dir     string // Where images are written; default os temp dir
	Log     logrus.FieldLogger
}

var _ cubebot.FaceReader = (*Camera)(nil)

// NewCamera returns a camera using the default commands and subprocesses.
func NewCamera(dir string, log logrus.FieldLogger) *Camera {
	return &Camera{
		Runner:  ExecRunner{},
		Capture: DefaultCapture,
		Tracker: DefaultTracker,
		Dir:     dir,
		Log:     log,
	}
}

// ReadFace captures and samples the face presented for face.
func (c *Camera) ReadFace(ctx context.Context, face cubebot.ScanFace) ([9]cubebot.RGB, error) {
	var colors [9]cubebot.RGB

	file := filepath.Join(c.Dir, fmt.Sprintf("cubebot_%s_face.jpg", face))
	vars := map[string]string{"file": file, "face": face.String()}

	name, args, err := expand(c.Capture, vars)
	if err != nil {
		return colors, &cubebot.CollaboratorError{Tool: "capture", Err: err}
	}
	if out, err := c.Runner.Run(ctx, name, args...); err != nil {
		return colors, &cubebot.CollaboratorError{Tool: "capture", Raw: string(out), Err: err}
	}

	name, args, err = expand(c.Tracker, vars)
	if err != nil {
		return colors, &cubebot.CollaboratorError{Tool: "tracker", Err: err}
	}
	out, err := c.Runner.Run(ctx, name, args...)
	if err != nil {
		return colors, &cubebot.CollaboratorError{Tool: "tracker", Raw: string(out), Err: err}
	}

	colors, err = ParseTrackerOutput(out)
	if err != nil {
		return colors, &cubebot.CollaboratorError{Tool: "tracker", Raw: string(out), Err: err}
	}
	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{"face": face.String(), "file": file}).Debug("sampled face")
	}
	return colors, nil
}

var tripleRe = regexp.MustCompile(`\[\s*(-?\d+)\s*,\s*(-?\d+)\s*,\s*(-?\d+)\s*\]`)

// ParseTrackerOutput extracts nine [r, g, b] triples from the JSON object
// the tracker prints after its log lines. The object starts on a line of its
// own beginning with "{".
func ParseTrackerOutput(out []byte) ([9]cubebot.RGB, error) {
	var colors [9]cubebot.RGB

	text := string(out)
	start := 0
	if !strings.HasPrefix(text, "{") {
		i := strings.Index(text, "\n{")
		if i < 0 {
			return colors, fmt.Errorf("no colour object in tracker output")
		}
		start = i + 1
	}
	body := text[start:]
	if end := strings.Index(body, "}"); end >= 0 {
		body = body[:end]
	}

	matches := tripleRe.FindAllStringSubmatch(body, -1)
	if len(matches) < 9 {
		return colors, fmt.Errorf("tracker reported %d squares, want 9", len(matches))
	}
	for i := 0; i < 9; i++ {
		for ch := 0; ch < 3; ch++ {
			v, err := strconv.Atoi(matches[i][ch+1])
			if err != nil {
				return colors, fmt.Errorf("bad colour value %q: %w", matches[i][ch+1], err)
			}
			colors[i][ch] = v
		}
	}
	return colors, nil
}
