package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubebot/internal/journal"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Home the grip and zero the turntable",
	RunE:  runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	s, err := openRobot(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.begin(journal.KindHome, ""); err != nil {
		return err
	}
	if err := s.finish(s.robot.Home(ctx)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s orientation %s\n", moveStyle.Render("homed:"), s.robot.Orientation())
	return nil
}
