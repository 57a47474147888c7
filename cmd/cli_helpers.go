package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dayloop/dayloop/models"
	"github.com/dayloop/dayloop/store"
)

// todayDate returns the local calendar date.
func todayDate() string {
	return time.Now().Format(models.DateLayout)
}

// parseTags splits a comma-separated tag flag into a trimmed set.
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// sortTasksForDisplay orders tasks by day, then start time (timed first),
// then title.
func sortTasksForDisplay(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.ScheduledFor != b.ScheduledFor {
			return a.ScheduledFor < b.ScheduledFor
		}
		switch {
		case a.StartAt != nil && b.StartAt != nil:
			if !a.StartAt.Equal(*b.StartAt) {
				return a.StartAt.Before(*b.StartAt)
			}
		case a.StartAt != nil:
			return true
		case b.StartAt != nil:
			return false
		}
		return a.Title < b.Title
	})
}

// resolveTask finds a single task by ID prefix or exact title match.
func resolveTask(plannerStore store.PlannerStore, ref string) (models.Task, error) {
	tasks, err := plannerStore.ListTasks(nil, nil)
	if err != nil {
		return models.Task{}, err
	}
	var matches []models.Task
	for _, t := range tasks {
		if t.ID == ref || strings.EqualFold(t.Title, ref) {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", ref)
	}
	return models.Task{}, fmt.Errorf("%q is ambiguous: %d tasks match", ref, len(matches))
}

// resolveReminder finds a single reminder by ID prefix or exact title.
func resolveReminder(plannerStore store.PlannerStore, ref string) (models.Reminder, error) {
	reminders, err := plannerStore.ListReminders()
	if err != nil {
		return models.Reminder{}, err
	}
	var matches []models.Reminder
	for _, r := range reminders {
		if r.ID == ref || strings.EqualFold(r.Title, ref) {
			return r, nil
		}
		if strings.HasPrefix(r.ID, ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Reminder{}, fmt.Errorf("no reminder matches %q", ref)
	}
	return models.Reminder{}, fmt.Errorf("%q is ambiguous: %d reminders match", ref, len(matches))
}

// taskSlotColumn renders the task's slot for table output.
func taskSlotColumn(t models.Task) string {
	if t.DurationMinutes != nil {
		return fmt.Sprintf("%dm", *t.DurationMinutes)
	}
	if t.StartAt == nil {
		return "-"
	}
	if t.DeadlineAt == nil {
		return t.StartAt.Format(models.ClockLayout)
	}
	return t.StartAt.Format(models.ClockLayout) + "-" + t.DeadlineAt.Format(models.ClockLayout)
}

// shortID trims a UUID to its first group for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// plannerPrefs maps the configured thresholds onto the aggregation
// preferences. Zero is meaningful for progressiveTasksPerDay (a day always
// counts), so values are copied as-is.
func plannerPrefs() models.Preferences {
	cfg := GetConfig().Planner
	return models.Preferences{
		ProgressiveTasksPerDay:    cfg.ProgressiveTasksPerDay,
		ProgressiveDaysForWeekWin: cfg.ProgressiveDaysForWeekWin,
		DayFulfillmentThreshold:   cfg.DayFulfillmentThreshold,
		ReminderLeadMinutes:       cfg.ReminderLeadMinutes,
	}
}

// anchorDate returns the life-calendar anchor: the stored profile's date of
// birth, or the configured one as fallback. Empty means progress summaries
// are unavailable.
func anchorDate(plannerStore store.PlannerStore) string {
	if profile, err := plannerStore.Profile(); err == nil && profile.DateOfBirth != "" {
		return profile.DateOfBirth
	}
	return GetConfig().Planner.DateOfBirth
}
