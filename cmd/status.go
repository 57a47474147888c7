package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/ui"
	"github.com/dayloop/dayloop/models"
	"github.com/dayloop/dayloop/store"
)

// doneCmd, startCmd, and skipCmd are thin status-change wrappers. Without an
// argument they fall back to interactive selection.
var doneCmd = &cobra.Command{
	Use:   "done [task]",
	Short: "Mark a task completed",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(args, models.StatusCompleted, "Mark which task as done")
	},
}

var startCmd = &cobra.Command{
	Use:   "start [task]",
	Short: "Mark a task in progress",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(args, models.StatusInProgress, "Start which task")
	},
}

var skipCmd = &cobra.Command{
	Use:   "skip [task]",
	Short: "Mark a task skipped",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetStatus(args, models.StatusSkipped, "Skip which task")
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(skipCmd)
}

func runSetStatus(args []string, status models.TaskStatus, label string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	task, err := pickTask(plannerStore, args, label, func(t models.Task) bool {
		return t.Status != status
	})
	if err != nil {
		return err
	}

	updated, err := plannerStore.SetTaskStatus(task.ID, status)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	fmt.Printf("%s %s is now %s\n", ui.StyleSuccess.Render("✓"), updated.Title, updated.Status)
	return nil
}

// pickTask resolves the optional positional argument, falling back to an
// interactive prompt.
func pickTask(plannerStore store.PlannerStore, args []string, label string, filterFn func(models.Task) bool) (models.Task, error) {
	if len(args) == 1 {
		return resolveTask(plannerStore, args[0])
	}
	task, err := selectTaskInteractive(plannerStore, filterFn, label)
	if errors.Is(err, ErrNoTasksFound) {
		return models.Task{}, fmt.Errorf("nothing to do: %w", err)
	}
	return task, err
}
