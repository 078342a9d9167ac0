package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubebot"
	"github.com/SeamusWaldron/cubebot/internal/cube"
)

var (
	planFrom   string
	planVerify bool
)

var planCmd = &cobra.Command{
	Use:   "plan MOVES...",
	Short: "Show the physical actions for a move sequence",
	Long: `Plan a move sequence without touching the robot. Each row shows where the
target face sits, the reorientation needed to bring it onto the turntable and
the orientation afterwards.

With --verify the actions are also executed on a virtual cube and compared
against applying the notation directly.`,
	Example: `  cubebot plan "R U R' U'"
  cubebot plan F2 B --from "L,F,U" --verify`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planFrom, "from", "UFR", "Starting orientation as up, front, right faces")
	planCmd.Flags().BoolVar(&planVerify, "verify", false, "Check the plan on a virtual cube")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	from, err := cubebot.ParseOrientation(planFrom)
	if err != nil {
		return err
	}
	moves, err := cubebot.ParseMoves(strings.Join(args, " "))
	if err != nil {
		return err
	}
	plans, err := cubebot.PlanMoves(from, moves)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d moves from %s", len(moves), from)))
	fmt.Fprintln(out, planTable(plans))

	actions := 0
	for _, p := range plans {
		actions += len(p.Actions())
	}
	fmt.Fprintln(out, statusStyle.Render(fmt.Sprintf("%d physical actions", actions)))

	if planVerify {
		if err := cube.VerifyPlan(from, moves); err != nil {
			fmt.Fprintln(out, errorStyle.Render("verify: FAILED"))
			return err
		}
		fmt.Fprintln(out, moveStyle.Render("verify: virtual cube matches notation"))
	}
	return nil
}

func planTable(plans []cubebot.Plan) string {
	rows := make([][]string, len(plans))
	for i, p := range plans {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			p.Move.Notation(),
			p.Before.String(),
			p.Slot.String(),
			cubebot.FormatActions(p.Actions()),
			p.After.String(),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(statusStyle).
		Headers("#", "Move", "Before", "Slot", "Actions", "After").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 3:
				return slotStyle.Padding(0, 1)
			default:
				return cellStyle
			}
		}).
		Render()
}
