package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/planner"
	"github.com/dayloop/dayloop/internal/ui"
	"github.com/dayloop/dayloop/models"
)

var (
	addDate        string
	addDesc        string
	addDuration    int
	addStart       string
	addDeadline    string
	addProgressive bool
	addTags        string
)

// addCmd schedules a new task.
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Schedule a task on a day",
	Long: `Schedule a task against a day's 24-hour budget.

A task is scheduled either by duration or by time, never both:

  dayloop add "Deep work" --duration 90
  dayloop add "Standup" --start 09:00 --deadline 09:15
  dayloop add "Call mum" --start 19:00
  dayloop add "Read" --on 2026-09-01 --progressive`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&addDate, "on", "", "day to schedule on, YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&addDesc, "desc", "", "task description")
	addCmd.Flags().IntVar(&addDuration, "duration", 0, "duration in minutes (duration mode)")
	addCmd.Flags().StringVar(&addStart, "start", "", "start time HH:MM (time mode)")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "deadline time HH:MM (time mode)")
	addCmd.Flags().BoolVarP(&addProgressive, "progressive", "p", false, "count this task toward the day's progress quota")
	addCmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if addDuration != 0 && (addStart != "" || addDeadline != "") {
		return fmt.Errorf("--duration cannot be combined with --start/--deadline")
	}

	date := addDate
	if date == "" {
		date = todayDate()
	}

	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	tasks, err := plannerStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	draft := planner.Draft{
		DurationMinutes: addDuration,
		StartTime:       addStart,
		DeadlineTime:    addDeadline,
	}
	slot, err := planner.Validate(tasks, date, draft, "")
	if err != nil {
		var verr *planner.ValidationError
		if errors.As(err, &verr) {
			fmt.Println(ui.StyleError.Render("✗ " + verr.Reason))
			return fmt.Errorf("task not scheduled")
		}
		return err
	}

	task := models.NewTask(title, date)
	task.Description = addDesc
	task.Progressive = addProgressive
	task.Tags = parseTags(addTags)
	task.StartAt = slot.StartAt
	task.DeadlineAt = slot.DeadlineAt
	task.DurationMinutes = slot.DurationMinutes

	created, err := plannerStore.CreateTask(task)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	_, remaining := planner.RemainingMinutes(append(tasks, created), date, "")
	fmt.Printf("%s %s on %s (%s) · %d minutes left\n",
		ui.StyleSuccess.Render("✓"), created.Title, created.ScheduledFor, taskSlotColumn(created), remaining)
	return nil
}
