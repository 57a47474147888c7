package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/planner"
	"github.com/dayloop/dayloop/internal/progress"
	"github.com/dayloop/dayloop/internal/ui"
)

var todayOn string

// todayCmd summarizes one day: budget usage and progress counters.
var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's budget and progress",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayOn, "on", "", "summarize this day instead, YYYY-MM-DD")
}

func runToday(cmd *cobra.Command, args []string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	date := todayOn
	if date == "" {
		date = todayDate()
	}

	tasks, err := plannerStore.ListTasks(nil, nil)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	assigned, remaining := planner.RemainingMinutes(tasks, date, "")
	fmt.Println(ui.StyleTitle.Render(date))
	fmt.Printf("Budget: %d of %d minutes assigned, %d left\n", assigned, planner.DayCapacityMinutes, remaining)

	anchor := anchorDate(plannerStore)
	if anchor == "" {
		fmt.Println(ui.StyleSubtle.Render("Set your date of birth (dayloop profile set --dob) to track progress."))
		return nil
	}

	summaries := progress.ComputeDaySummaries(tasks, plannerPrefs(), anchor)
	s, ok := summaries[date]
	if !ok {
		fmt.Println(ui.StyleSubtle.Render("No tasks on this day."))
		return nil
	}

	fmt.Printf("Tasks: %d total, %d done, %d in progress, %d progressive\n",
		s.TotalTasks, s.CompletedTasks, s.InProgressTasks, s.ProgressiveTasks)
	fmt.Printf("Completion: %.0f%%\n", s.CompletionRate*100)
	if s.Progressed {
		fmt.Println(ui.StyleSuccess.Render("Progressed ✓") + ui.StyleSubtle.Render(" ("+s.WeekID+")"))
	} else {
		fmt.Println(ui.StyleSubtle.Render("Not progressed yet (" + s.WeekID + ")"))
	}
	return nil
}
