package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubebot"
	"github.com/SeamusWaldron/cubebot/internal/journal"
)

var (
	runTUI    bool
	runNoHome bool
)

var runCmd = &cobra.Command{
	Use:   "run MOVES...",
	Short: "Home the robot and execute a move sequence",
	Long: `Home the robot, then execute a move sequence. The whole sequence is parsed
before anything moves; a malformed token aborts the run.

With --tui a live view shows each move as it completes.`,
	Example: `  cubebot run --sim "R U R' U'"
  cubebot run --virtual --tui R U2 F'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMoves,
}

func init() {
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Show a live progress view")
	runCmd.Flags().BoolVar(&runNoHome, "no-home", false, "Skip homing; the cube must be in the default orientation")
	rootCmd.AddCommand(runCmd)
}

func runMoves(cmd *cobra.Command, args []string) error {
	moves, err := cubebot.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("no moves given")
	}

	if runTUI {
		return runMovesTUI(cmd, moves)
	}

	ctx := cmd.Context()
	s, err := openRobot(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.begin(journal.KindMoves, cubebot.FormatMoves(moves)); err != nil {
		return err
	}
	if !runNoHome {
		if err := s.robot.Home(ctx); err != nil {
			return s.finish(err)
		}
	}
	if err := s.finish(s.robot.Apply(ctx, moves...)); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", moveStyle.Render("done:"), cubebot.FormatMoves(moves))
	if s.virtual != nil {
		fmt.Fprint(cmd.OutOrStdout(), s.virtual.String())
	}
	return nil
}

func runMovesTUI(cmd *cobra.Command, moves []cubebot.Move) error {
	ctx := cmd.Context()
	steps := make(chan cubebot.Step, len(moves))

	s, err := openRobot(ctx, cubebot.WithObserver(func(st cubebot.Step) { steps <- st }))
	if err != nil {
		return err
	}
	defer s.Close()

	// Log lines would tear the alternate screen.
	s.log.SetOutput(io.Discard)

	if err := s.begin(journal.KindMoves, cubebot.FormatMoves(moves)); err != nil {
		return err
	}

	model := newRunModel(ctx, s.robot, moves, steps, !runNoHome)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return s.finish(fmt.Errorf("failed to run TUI: %w", err))
	}

	m := final.(*runModel)
	if err := s.finish(m.err); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d moves in %s\n", moveStyle.Render("done:"), len(m.steps), m.elapsed().Round(time.Millisecond))
	return nil
}
