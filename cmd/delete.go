package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/ui"
)

var deleteYes bool

// deleteCmd removes a task after confirmation.
var deleteCmd = &cobra.Command{
	Use:     "delete [task]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")
}

func runDelete(cmd *cobra.Command, args []string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	task, err := pickTask(plannerStore, args, "Delete which task", nil)
	if err != nil {
		return err
	}

	if !deleteYes {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete %q (%s)", task.Title, task.ScheduledFor),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println(ui.StyleSubtle.Render("Aborted."))
			return nil
		}
	}

	if err := plannerStore.DeleteTask(task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	fmt.Printf("%s Deleted %q\n", ui.StyleSuccess.Render("✓"), task.Title)
	return nil
}
