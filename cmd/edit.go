package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/planner"
	"github.com/dayloop/dayloop/internal/ui"
	"github.com/dayloop/dayloop/models"
)

var (
	editTitle       string
	editDesc        string
	editDate        string
	editDuration    int
	editStart       string
	editDeadline    string
	editProgressive bool
	editUntimed     bool
	editTags        string
)

// editCmd changes a task's fields. Timing changes go back through slot
// validation exactly like a fresh add.
var editCmd = &cobra.Command{
	Use:   "edit <task>",
	Short: "Edit a task",
	Long: `Edit a task's fields. Changing --duration, --start, --deadline, or --on
re-validates the slot against the day's other tasks; --untimed clears all
timing.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVar(&editDesc, "desc", "", "new description")
	editCmd.Flags().StringVar(&editDate, "on", "", "move to day, YYYY-MM-DD")
	editCmd.Flags().IntVar(&editDuration, "duration", 0, "new duration in minutes (switches to duration mode)")
	editCmd.Flags().StringVar(&editStart, "start", "", "new start time HH:MM (switches to time mode)")
	editCmd.Flags().StringVar(&editDeadline, "deadline", "", "new deadline time HH:MM")
	editCmd.Flags().BoolVarP(&editProgressive, "progressive", "p", false, "toggle the progressive flag to this value")
	editCmd.Flags().BoolVar(&editUntimed, "untimed", false, "clear duration and times")
	editCmd.Flags().StringVar(&editTags, "tags", "", "replace tags (comma-separated)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if editDuration != 0 && (editStart != "" || editDeadline != "") {
		return fmt.Errorf("--duration cannot be combined with --start/--deadline")
	}

	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	task, err := resolveTask(plannerStore, args[0])
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	updated, err := plannerStore.UpdateTask(task.ID, func(t *models.Task) error {
		if editTitle != "" {
			t.Title = editTitle
		}
		if flags.Changed("desc") {
			t.Description = editDesc
		}
		if flags.Changed("progressive") {
			t.Progressive = editProgressive
		}
		if flags.Changed("tags") {
			t.Tags = parseTags(editTags)
		}
		if editDate != "" {
			t.ScheduledFor = editDate
		}

		switch {
		case editUntimed:
			t.DurationMinutes = nil
			t.StartAt = nil
			t.DeadlineAt = nil
		case editDuration != 0:
			d := editDuration
			t.DurationMinutes = &d
			t.StartAt = nil
			t.DeadlineAt = nil
		case editStart != "" || editDeadline != "" || editDate != "":
			start := editStart
			deadline := editDeadline
			if start == "" && t.StartAt != nil {
				start = t.StartAt.Format(models.ClockLayout)
			}
			if deadline == "" && t.DeadlineAt != nil {
				deadline = t.DeadlineAt.Format(models.ClockLayout)
			}
			if t.DurationMinutes != nil && (editStart != "" || editDeadline != "") {
				t.DurationMinutes = nil
			}
			if t.DurationMinutes == nil {
				slot, err := planner.Validate(nil, t.ScheduledFor, planner.Draft{
					StartTime:    start,
					DeadlineTime: deadline,
				}, t.ID)
				if err != nil {
					return err
				}
				t.StartAt = slot.StartAt
				t.DeadlineAt = slot.DeadlineAt
			}
		}
		return nil
	})
	if err != nil {
		var verr *planner.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(ui.StyleError.Render("✗ " + verr.Reason))
			return fmt.Errorf("task not updated")
		}
		return fmt.Errorf("update task: %w", err)
	}

	fmt.Printf("%s %s on %s (%s)\n",
		ui.StyleSuccess.Render("✓"), updated.Title, updated.ScheduledFor, taskSlotColumn(updated))
	return nil
}
