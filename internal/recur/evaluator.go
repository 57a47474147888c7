// Package recur decides when recurring reminders are due against a wall
// clock. Evaluation is pure; the only state is a per-reminder last-fired
// instant kept behind the FiredStore interface so a periodic sweep can
// guarantee at most one trigger per due window.
package recur

import (
	"time"

	"github.com/dayloop/dayloop/models"
)

// Tolerance windows below each cadence period. They absorb polling jitter
// from the reference 15-second tick without double-firing or skipping a
// cycle. The constants are product-tuned guards, not derived boundaries; do
// not tighten them to exact periods.
const (
	hourlyMinGap  = time.Hour - 30*time.Second
	dailyMinGap   = 24*time.Hour - 10*time.Minute
	weeklyMinGap  = 7*24*time.Hour - 10*time.Minute
	monthlyMinGap = 27 * 24 * time.Hour
	yearlyMinGap  = 350 * 24 * time.Hour
)

// DueNow reports whether a schedule should fire at now, given the instant it
// last fired. Schedules are assumed well-formed (rejected at construction
// time by models.ReminderSchedule.Validate).
func DueNow(s models.ReminderSchedule, now, lastFired time.Time) bool {
	sinceLast := now.Sub(lastFired)

	switch s.Kind {
	case models.ScheduleEveryMinutes:
		return sinceLast >= time.Duration(s.IntervalMinutes)*time.Minute
	case models.ScheduleHourly:
		return now.Minute() == s.MinuteMark && sinceLast >= hourlyMinGap
	case models.ScheduleDaily:
		return clockMatches(now, s.Time) && sinceLast >= dailyMinGap
	case models.ScheduleWeekly:
		return containsInt(s.DaysOfWeek, ISOWeekday(now)) &&
			clockMatches(now, s.Time) && sinceLast >= weeklyMinGap
	case models.ScheduleMonthly:
		return containsInt(s.DaysOfMonth, now.Day()) &&
			clockMatches(now, s.Time) && sinceLast >= monthlyMinGap
	case models.ScheduleYearly:
		return containsString(s.Dates, now.Format("01-02")) &&
			clockMatches(now, s.Time) && sinceLast >= yearlyMinGap
	}
	return false
}

// ISOWeekday maps time.Weekday onto the schedule convention Monday=0 through
// Sunday=6.
func ISOWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func clockMatches(now time.Time, clock string) bool {
	return now.Format(models.ClockLayout) == clock
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func containsString(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
