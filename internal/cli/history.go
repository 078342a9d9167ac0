package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubebot/internal/journal"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List journaled runs",
	Long:  `List the most recent runs recorded in the journal (--db, default ~/.cubebot/journal.db).`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := dbPath
	if path == "" {
		p, err := journal.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	db, err := journal.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := journal.NewRunRepository(db).List(historyLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, statusStyle.Render("No runs recorded in "+path))
		return nil
	}

	moves := journal.NewMoveRepository(db)
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		count, err := moves.Count(r.RunID)
		if err != nil {
			return err
		}
		duration := "-"
		if r.DurationMs != nil {
			duration = (time.Duration(*r.DurationMs) * time.Millisecond).String()
		}
		status := r.Status
		if r.Error != nil {
			status += ": " + *r.Error
		}
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Kind,
			r.Variant,
			strconv.Itoa(count),
			duration,
			status,
			r.Sequence,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(statusStyle).
		Headers("Started", "Kind", "Variant", "Moves", "Duration", "Status", "Sequence").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(out, t.Render())
	return nil
}
