package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/dayloop/dayloop/internal/ui"
	"github.com/dayloop/dayloop/models"
)

var (
	remindEvery   int
	remindHourly  int
	remindDaily   string
	remindWeekly  string
	remindMonthly string
	remindYearly  string
	remindAt      string
	remindDesc    string
	remindYes     bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Manage recurring reminders",
}

// remindAddCmd creates a reminder from exactly one schedule flag.
var remindAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a recurring reminder",
	Long: `Create a recurring reminder. Exactly one schedule flag selects the rule:

  dayloop remind add "Stretch" --every 30
  dayloop remind add "Stand up" --hourly-at 50
  dayloop remind add "Journal" --daily-at 21:30
  dayloop remind add "Review week" --weekly Mon --at 08:00
  dayloop remind add "Pay rent" --monthly 1 --at 09:00
  dayloop remind add "Her birthday" --yearly 05-14 --at 08:00

Weekdays are Mon..Sun or 0..6 (Monday is 0).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRemindAdd,
}

var remindListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reminders",
	RunE:  runRemindList,
}

var remindDeleteCmd = &cobra.Command{
	Use:   "delete <reminder>",
	Short: "Delete a reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemindDelete,
}

func init() {
	rootCmd.AddCommand(remindCmd)
	remindCmd.AddCommand(remindAddCmd)
	remindCmd.AddCommand(remindListCmd)
	remindCmd.AddCommand(remindDeleteCmd)

	remindAddCmd.Flags().IntVar(&remindEvery, "every", 0, "fire every N minutes")
	remindAddCmd.Flags().IntVar(&remindHourly, "hourly-at", -1, "fire hourly at this minute mark (0-59)")
	remindAddCmd.Flags().StringVar(&remindDaily, "daily-at", "", "fire daily at HH:MM")
	remindAddCmd.Flags().StringVar(&remindWeekly, "weekly", "", "fire weekly on these days (Mon,Fri or 0,4)")
	remindAddCmd.Flags().StringVar(&remindMonthly, "monthly", "", "fire monthly on these days of month (1,15)")
	remindAddCmd.Flags().StringVar(&remindYearly, "yearly", "", "fire yearly on these MM-DD dates")
	remindAddCmd.Flags().StringVar(&remindAt, "at", "", "time of day HH:MM for --weekly/--monthly/--yearly")
	remindAddCmd.Flags().StringVar(&remindDesc, "desc", "", "reminder description")

	remindDeleteCmd.Flags().BoolVarP(&remindYes, "yes", "y", false, "skip the confirmation prompt")
}

func runRemindAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	schedule, err := scheduleFromFlags(cmd)
	if err != nil {
		return err
	}

	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	reminder := models.NewReminder(title, schedule)
	reminder.Description = remindDesc
	created, err := plannerStore.CreateReminder(reminder)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	fmt.Printf("%s %s, %s\n", ui.StyleSuccess.Render("✓"), created.Title, created.Schedule.Describe())
	return nil
}

func runRemindList(cmd *cobra.Command, args []string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	reminders, err := plannerStore.ListReminders()
	if err != nil {
		return fmt.Errorf("list reminders: %w", err)
	}
	if len(reminders) == 0 {
		fmt.Println(ui.StyleSubtle.Render("No reminders."))
		return nil
	}

	table := ui.Table{Headers: []string{"ID", "TITLE", "SCHEDULE"}}
	for _, r := range reminders {
		table.Rows = append(table.Rows, []string{shortID(r.ID), r.Title, r.Schedule.Describe()})
	}
	fmt.Print(table.Render())
	return nil
}

func runRemindDelete(cmd *cobra.Command, args []string) error {
	plannerStore, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = plannerStore.Close() }()

	reminder, err := resolveReminder(plannerStore, args[0])
	if err != nil {
		return err
	}
	if !remindYes {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Delete reminder %q (%s)", reminder.Title, reminder.Schedule.Describe()),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			fmt.Println(ui.StyleSubtle.Render("Aborted."))
			return nil
		}
	}
	if err := plannerStore.DeleteReminder(reminder.ID); err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	fmt.Printf("%s Deleted %q\n", ui.StyleSuccess.Render("✓"), reminder.Title)
	return nil
}

// scheduleFromFlags maps the mutually exclusive schedule flags onto a
// ReminderSchedule. Range validation happens in the model.
func scheduleFromFlags(cmd *cobra.Command) (models.ReminderSchedule, error) {
	flags := cmd.Flags()
	set := 0
	for _, name := range []string{"every", "hourly-at", "daily-at", "weekly", "monthly", "yearly"} {
		if flags.Changed(name) {
			set++
		}
	}
	if set != 1 {
		return models.ReminderSchedule{}, fmt.Errorf("exactly one of --every, --hourly-at, --daily-at, --weekly, --monthly, --yearly is required")
	}

	switch {
	case flags.Changed("every"):
		return models.ReminderSchedule{Kind: models.ScheduleEveryMinutes, IntervalMinutes: remindEvery}, nil
	case flags.Changed("hourly-at"):
		return models.ReminderSchedule{Kind: models.ScheduleHourly, MinuteMark: remindHourly}, nil
	case flags.Changed("daily-at"):
		return models.ReminderSchedule{Kind: models.ScheduleDaily, Time: remindDaily}, nil
	case flags.Changed("weekly"):
		days, err := parseWeekdays(remindWeekly)
		if err != nil {
			return models.ReminderSchedule{}, err
		}
		return models.ReminderSchedule{Kind: models.ScheduleWeekly, DaysOfWeek: days, Time: remindAt}, nil
	case flags.Changed("monthly"):
		days, err := parseIntList(remindMonthly)
		if err != nil {
			return models.ReminderSchedule{}, err
		}
		return models.ReminderSchedule{Kind: models.ScheduleMonthly, DaysOfMonth: days, Time: remindAt}, nil
	default:
		dates := parseTags(remindYearly)
		return models.ReminderSchedule{Kind: models.ScheduleYearly, Dates: dates, Time: remindAt}, nil
	}
}

var weekdayIndex = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

// parseWeekdays accepts Mon,Fri style names or 0..6 indices (Monday=0).
func parseWeekdays(raw string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if d, ok := weekdayIndex[part]; ok {
			days = append(days, d)
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("invalid weekday %q (want Mon..Sun or 0..6)", part)
		}
		days = append(days, d)
	}
	return days, nil
}

func parseIntList(raw string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
