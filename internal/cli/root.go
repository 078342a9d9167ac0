// Package cli implements the command-line interface for cubebot.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var (
	// Global flags
	profileName string
	profileFile string
	port        string
	baudRate    int
	gripID      int
	turnID      int
	useSim      bool
	useVirtual  bool
	dbPath      string
	verbose     bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubebot",
	Short: "Two-motor Rubik's cube robot",
	Long: `cubebot drives a two-motor Rubik's cube robot: a grip that holds the top two
layers and tips the cube, and a turntable that turns the bottom layer.

Moves are given in standard notation (R U R' U' F2 ...). The robot tracks how
the cube is held and reorients it before each face turn.

Use --sim to run against simulated motors and --virtual to drive a virtual
cube instead of any motors at all.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Interrupts cancel the running operation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&profileName, "profile", "ev3", "Robot variant (nxt1, ev3)")
	pf.StringVar(&profileFile, "profile-file", "", "YAML calibration overrides")
	pf.StringVar(&port, "port", "", "Servo bus serial port (default: first port found)")
	pf.IntVar(&baudRate, "baud", 1_000_000, "Servo bus baud rate")
	pf.IntVar(&gripID, "grip-id", 1, "Grip servo ID")
	pf.IntVar(&turnID, "turn-id", 2, "Turntable servo ID")
	pf.BoolVar(&useSim, "sim", false, "Use simulated motors")
	pf.BoolVar(&useVirtual, "virtual", false, "Drive a virtual cube instead of motors")
	pf.StringVar(&dbPath, "db", "", "Journal database path (journaling is off when empty)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
