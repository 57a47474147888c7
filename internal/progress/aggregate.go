// Package progress folds the committed task set into per-day summaries and
// derived week-win state. Weeks are Monday-start and identified by their
// offset from the week containing the profile's date of birth.
package progress

import (
	"fmt"
	"time"

	"github.com/dayloop/dayloop/models"
)

const daysPerWeek = 7

// WeekStart returns the Monday 00:00 of the week containing t, in t's
// location.
func WeekStart(t time.Time) time.Time {
	back := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -back)
}

// DayWeekID expresses the week containing date as an index of complete weeks
// since the week containing anchor, formatted as a stable key. Dates in the
// anchor's own week map to w0000; earlier dates go negative. An unparseable
// date or anchor yields "".
func DayWeekID(date, anchor string) string {
	d, err := time.ParseInLocation(models.DateLayout, date, time.Local)
	if err != nil {
		return ""
	}
	a, err := time.ParseInLocation(models.DateLayout, anchor, time.Local)
	if err != nil {
		return ""
	}
	days := daysBetween(WeekStart(a), WeekStart(d))
	return FormatWeekID(days / daysPerWeek)
}

// daysBetween counts calendar days from a to b, immune to DST-shortened days.
func daysBetween(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours() / 24)
}

// FormatWeekID renders a week index as its stable string key.
func FormatWeekID(index int) string {
	return fmt.Sprintf("w%04d", index)
}

// ComputeDaySummaries groups tasks by their scheduled day and derives the
// per-day counters. A day is progressed when its progressive-task count
// meets prefs.ProgressiveTasksPerDay (a zero threshold always passes). An
// absent or malformed anchor yields no summaries rather than an error.
func ComputeDaySummaries(tasks []models.Task, prefs models.Preferences, anchor string) map[string]models.DaySummary {
	summaries := make(map[string]models.DaySummary)
	if anchor == "" {
		return summaries
	}
	if _, err := time.ParseInLocation(models.DateLayout, anchor, time.Local); err != nil {
		return summaries
	}

	for _, t := range tasks {
		if t.ScheduledFor == "" {
			continue
		}
		s, ok := summaries[t.ScheduledFor]
		if !ok {
			s = models.DaySummary{
				Date:   t.ScheduledFor,
				WeekID: DayWeekID(t.ScheduledFor, anchor),
			}
		}
		s.TotalTasks++
		switch t.Status {
		case models.StatusCompleted:
			s.CompletedTasks++
		case models.StatusInProgress:
			s.InProgressTasks++
		}
		if t.Progressive {
			s.ProgressiveTasks++
		}
		summaries[t.ScheduledFor] = s
	}

	for date, s := range summaries {
		if s.TotalTasks > 0 {
			s.CompletionRate = float64(s.CompletedTasks) / float64(s.TotalTasks)
		}
		s.Progressed = s.ProgressiveTasks >= prefs.ProgressiveTasksPerDay
		s.Fulfilled = s.Progressed
		summaries[date] = s
	}
	return summaries
}

// DeriveAutoWeekWins counts progressed days per week and returns the set of
// weeks meeting weekTarget, clamped to [1, 7].
func DeriveAutoWeekWins(summaries map[string]models.DaySummary, weekTarget int) map[string]bool {
	if weekTarget < 1 {
		weekTarget = 1
	}
	if weekTarget > daysPerWeek {
		weekTarget = daysPerWeek
	}

	progressedDays := make(map[string]int)
	for _, s := range summaries {
		if s.Progressed && s.WeekID != "" {
			progressedDays[s.WeekID]++
		}
	}

	wins := make(map[string]bool)
	for weekID, n := range progressedDays {
		if n >= weekTarget {
			wins[weekID] = true
		}
	}
	return wins
}

// MergeWins combines the auto-win set with the user's stored overrides. A
// manual entry shadows the auto value for its week; auto recomputation never
// deletes an override, clearing one is a separate explicit store action.
func MergeWins(auto map[string]bool, overrides map[string]models.WeekWinEntry) map[string]models.WeekWinEntry {
	merged := make(map[string]models.WeekWinEntry, len(auto)+len(overrides))
	for weekID := range auto {
		merged[weekID] = models.WeekWinEntry{Status: models.WinAuto, Fulfilled: true}
	}
	for weekID, entry := range overrides {
		if entry.Status == models.WinManual {
			merged[weekID] = entry
		}
	}
	return merged
}
