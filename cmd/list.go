package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/planner"
	"github.com/dayloop/dayloop/internal/ui"
	"github.com/dayloop/dayloop/models"
)

var (
	listDate   string
	listAll    bool
	listStatus string
)

// listCmd prints the scheduled tasks.
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List scheduled tasks",
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listDate, "on", "", "only tasks on this day, YYYY-MM-DD (default today)")
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "list tasks on every day")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (planned, in_progress, completed, skipped)")
}

func runList(cmd *cobra.Command, args []string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	date := listDate
	if date == "" && !listAll {
		date = todayDate()
	}

	filter := func(t models.Task) bool {
		if date != "" && t.ScheduledFor != date {
			return false
		}
		if listStatus != "" && t.Status != models.TaskStatus(listStatus) {
			return false
		}
		return true
	}

	tasks, err := plannerStore.ListTasks(filter, sortTasksForDisplay)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	if len(tasks) == 0 {
		fmt.Println(ui.StyleSubtle.Render("No tasks scheduled."))
		return nil
	}

	table := ui.Table{Headers: []string{"", "ID", "DAY", "SLOT", "TITLE", "TAGS"}}
	for _, t := range tasks {
		title := t.Title
		if t.Progressive {
			title += " " + ui.StyleWarning.Render("↑")
		}
		table.Rows = append(table.Rows, []string{
			ui.StatusGlyph(string(t.Status)),
			shortID(t.ID),
			t.ScheduledFor,
			taskSlotColumn(t),
			title,
			strings.Join(t.Tags, ","),
		})
	}
	fmt.Print(table.Render())

	if date != "" {
		assigned, remaining := planner.RemainingMinutes(tasks, date, "")
		fmt.Println(ui.StyleSubtle.Render(
			fmt.Sprintf("%d of %d minutes assigned, %d left", assigned, planner.DayCapacityMinutes, remaining)))
	}
	return nil
}
