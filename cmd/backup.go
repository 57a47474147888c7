package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/ui"
)

// backupCmd and restoreCmd copy the state document in and out.
var backupCmd = &cobra.Command{
	Use:   "backup <path>",
	Short: "Copy the planner state to a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plannerStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = plannerStore.Close() }()

		if err := plannerStore.Backup(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Backed up to %s\n", ui.StyleSuccess.Render("✓"), args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <path>",
	Short: "Replace the planner state from a backup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plannerStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = plannerStore.Close() }()

		if err := plannerStore.Restore(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Restored from %s\n", ui.StyleSuccess.Render("✓"), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}
