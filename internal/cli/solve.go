package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubebot"
	"github.com/SeamusWaldron/cubebot/internal/collab"
	"github.com/SeamusWaldron/cubebot/internal/journal"
)

var (
	solveCapture  string
	solveTracker  string
	solveResolver string
	solveKociemba string
	solveImageDir string
	solveScramble string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Scan the cube, solve it and execute the solution",
	Long: `Home the robot, present each face to the camera, hand the 54 colours to the
colour resolver and execute the returned solution.

Command templates are split on spaces. {file} is the image path, {face} the
face being read, {rgb} the facelet JSON and {state} the resolver output.
With --kociemba the resolver's last line is passed to that command, whose last
line is the solution; otherwise the resolver must print moves itself.

With --virtual the camera is replaced by the virtual cube, which can be
scrambled first with --scramble.`,
	Example: `  cubebot solve --kociemba "kociemba {state}"
  cubebot solve --virtual --scramble "R U F" --resolver "./fake-resolver {rgb}"`,
	RunE: runSolve,
}

func init() {
	f := solveCmd.Flags()
	f.StringVar(&solveCapture, "capture", strings.Join(collab.DefaultCapture, " "), "Image capture command")
	f.StringVar(&solveTracker, "tracker", strings.Join(collab.DefaultTracker, " "), "Facelet tracker command")
	f.StringVar(&solveResolver, "resolver", strings.Join(collab.DefaultResolver, " "), "Colour resolver command")
	f.StringVar(&solveKociemba, "kociemba", "", "Optional solver command fed the resolver output")
	f.StringVar(&solveImageDir, "image-dir", os.TempDir(), "Directory for captured images")
	f.StringVar(&solveScramble, "scramble", "", "Moves applied to the virtual cube before scanning")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	scramble, err := cubebot.ParseMoves(solveScramble)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	s, err := openRobot(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	var reader cubebot.FaceReader
	if s.virtual != nil {
		s.virtual.ApplyMoves(scramble)
		reader = s.virtual
	} else {
		if len(scramble) > 0 {
			return fmt.Errorf("--scramble needs --virtual")
		}
		cam := collab.NewCamera(solveImageDir, s.log)
		cam.Capture = strings.Fields(solveCapture)
		cam.Tracker = strings.Fields(solveTracker)
		reader = cam
	}
	solver := collab.NewResolver(strings.Fields(solveResolver), strings.Fields(solveKociemba), s.log)

	if err := s.begin(journal.KindSolve, ""); err != nil {
		return err
	}
	if err := s.robot.Home(ctx); err != nil {
		return s.finish(err)
	}

	sol, err := s.robot.Solve(ctx, reader, solver)
	if s.journal != nil && (err == nil || sol.Raw != "") {
		if jerr := s.journal.EndWithScan(sol.Facelets, sol.Raw, err); jerr != nil {
			s.log.WithError(jerr).Warn("Failed to journal scan")
		}
	}
	if err := s.finish(err); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%d moves)\n", moveStyle.Render("solved:"), cubebot.FormatMoves(sol.Moves), len(sol.Moves))
	if s.virtual != nil {
		fmt.Fprint(out, s.virtual.String())
		if !s.virtual.IsSolved() {
			return fmt.Errorf("virtual cube is not solved after executing the solution")
		}
	}
	return nil
}
