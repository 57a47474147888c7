package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/progress"
	"github.com/dayloop/dayloop/internal/ui"
	"github.com/dayloop/dayloop/models"
)

var (
	winsMissed bool
)

var winsCmd = &cobra.Command{
	Use:   "wins",
	Short: "Show and override week wins",
	RunE:  runWinsList,
}

// winsSetCmd records a manual override for a week; winsClearCmd reverts to
// the auto-derived value.
var winsSetCmd = &cobra.Command{
	Use:   "set <weekId>",
	Short: "Manually mark a week as won (or missed with --missed)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plannerStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = plannerStore.Close() }()

		if err := plannerStore.SetWeekWin(args[0], !winsMissed); err != nil {
			return err
		}
		state := "won"
		if winsMissed {
			state = "missed"
		}
		fmt.Printf("%s Week %s manually marked %s\n", ui.StyleSuccess.Render("✓"), args[0], state)
		return nil
	},
}

var winsClearCmd = &cobra.Command{
	Use:   "clear <weekId>",
	Short: "Remove a manual override, reverting to the auto value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		plannerStore, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = plannerStore.Close() }()

		if err := plannerStore.ClearWeekWin(args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Override cleared for week %s\n", ui.StyleSuccess.Render("✓"), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(winsCmd)
	winsCmd.AddCommand(winsSetCmd)
	winsCmd.AddCommand(winsClearCmd)
	winsSetCmd.Flags().BoolVar(&winsMissed, "missed", false, "mark the week as missed instead of won")
}

func runWinsList(cmd *cobra.Command, args []string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	anchor := anchorDate(plannerStore)
	if anchor == "" {
		fmt.Println(ui.StyleSubtle.Render("Set your date of birth (dayloop profile set --dob) to see week wins."))
		return nil
	}

	tasks, err := plannerStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	overrides, err := plannerStore.WeekWins()
	if err != nil {
		return fmt.Errorf("load win overrides: %w", err)
	}

	prefs := plannerPrefs()
	summaries := progress.ComputeDaySummaries(tasks, prefs, anchor)
	auto := progress.DeriveAutoWeekWins(summaries, prefs.ProgressiveDaysForWeekWin)
	merged := progress.MergeWins(auto, overrides)

	if len(merged) == 0 {
		fmt.Println(ui.StyleSubtle.Render("No week wins yet."))
		return nil
	}

	weekIDs := make([]string, 0, len(merged))
	for weekID := range merged {
		weekIDs = append(weekIDs, weekID)
	}
	sort.Strings(weekIDs)

	table := ui.Table{Headers: []string{"WEEK", "WIN", "SOURCE"}}
	for _, weekID := range weekIDs {
		entry := merged[weekID]
		glyph := ui.StyleSuccess.Render(ui.GlyphWin)
		if !entry.Fulfilled {
			glyph = ui.StyleSubtle.Render(ui.GlyphMiss)
		}
		source := "auto"
		if entry.Status == models.WinManual {
			source = "manual"
		}
		table.Rows = append(table.Rows, []string{weekID, glyph, source})
	}
	fmt.Print(table.Render())
	return nil
}
