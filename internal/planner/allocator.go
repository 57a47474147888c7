// Package planner validates proposed task slots against a day's committed
// tasks and the fixed daily capacity. All functions are pure with respect to
// the task set passed in; the store is the owner of the canonical set and
// re-runs validation on every create and edit.
package planner

import (
	"fmt"
	"time"

	"github.com/dayloop/dayloop/models"
)

// DayCapacityMinutes is the fixed per-day time budget.
const DayCapacityMinutes = 1440

// Draft is a proposed slot for one day, as the command layer collects it.
// A non-zero DurationMinutes selects duration mode; otherwise the optional
// StartTime/DeadlineTime wall-clock strings (HH:MM) select time mode. Both
// empty is valid and produces an untimed task.
type Draft struct {
	DurationMinutes int
	StartTime       string
	DeadlineTime    string
}

// Slot is the normalized result of a successful validation. Exactly one of
// the two shapes is populated: DurationMinutes, or the timestamp pair (where
// DeadlineAt may be nil, and both are nil for an untimed task).
type Slot struct {
	StartAt         *time.Time
	DeadlineAt      *time.Time
	DurationMinutes *int
}

// ValidationError is an expected rejection of a draft: empty date,
// non-positive duration, capacity overflow, deadline before start, or an
// overlap conflict. It is a value for the user, not a program fault.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func rejectf(format string, args ...interface{}) (Slot, error) {
	return Slot{}, &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// TaskDurationMinutes returns the minutes a committed task occupies on its
// day: its explicit duration, the start-to-deadline span, or zero.
func TaskDurationMinutes(t models.Task) int {
	if t.DurationMinutes != nil {
		return *t.DurationMinutes
	}
	if t.StartAt != nil && t.DeadlineAt != nil {
		m := int(t.DeadlineAt.Sub(*t.StartAt) / time.Minute)
		if m < 0 {
			return 0
		}
		return m
	}
	return 0
}

// TotalAssignedMinutes sums the committed minutes on date, skipping the task
// identified by excludeID (pass "" to include all).
func TotalAssignedMinutes(tasks []models.Task, date, excludeID string) int {
	total := 0
	for _, t := range tasks {
		if t.ScheduledFor != date || t.ID == excludeID {
			continue
		}
		total += TaskDurationMinutes(t)
	}
	return total
}

// RemainingMinutes reports the assigned minutes on date and how many of the
// daily budget remain.
func RemainingMinutes(tasks []models.Task, date, excludeID string) (assigned, remaining int) {
	assigned = TotalAssignedMinutes(tasks, date, excludeID)
	capped := assigned
	if capped > DayCapacityMinutes {
		capped = DayCapacityMinutes
	}
	return assigned, DayCapacityMinutes - capped
}

// Validate checks a draft slot against the committed tasks on date and
// returns the normalized slot, or a *ValidationError naming the rejection.
// excludeID removes one task from consideration so that re-validating a
// committed task against its own prior state succeeds.
func Validate(tasks []models.Task, date string, draft Draft, excludeID string) (Slot, error) {
	if date == "" {
		return rejectf("a day must be selected before scheduling")
	}

	if draft.DurationMinutes != 0 {
		return validateDuration(tasks, date, draft.DurationMinutes, excludeID)
	}
	return validateTimed(tasks, date, draft, excludeID)
}

func validateDuration(tasks []models.Task, date string, minutes int, excludeID string) (Slot, error) {
	if minutes <= 0 {
		return rejectf("duration must be greater than zero minutes")
	}
	if _, remaining := RemainingMinutes(tasks, date, excludeID); minutes > remaining {
		return rejectf("not enough time left on %s: requested %d minutes, remaining %d", date, minutes, remaining)
	}
	m := minutes
	return Slot{DurationMinutes: &m}, nil
}

func validateTimed(tasks []models.Task, date string, draft Draft, excludeID string) (Slot, error) {
	if draft.StartTime == "" {
		if draft.DeadlineTime != "" {
			return rejectf("a deadline requires a start time")
		}
		// Untimed: occupies the day without a clock position.
		return Slot{}, nil
	}

	start, err := combine(date, draft.StartTime)
	if err != nil {
		return rejectf("invalid start time %q", draft.StartTime)
	}
	slot := Slot{StartAt: &start}

	if draft.DeadlineTime != "" {
		deadline, err := combine(date, draft.DeadlineTime)
		if err != nil {
			return rejectf("invalid deadline time %q", draft.DeadlineTime)
		}
		if !deadline.After(start) {
			return rejectf("deadline %s must be after start %s", draft.DeadlineTime, draft.StartTime)
		}
		minutes := int(deadline.Sub(start) / time.Minute)
		if _, remaining := RemainingMinutes(tasks, date, excludeID); minutes > remaining {
			return rejectf("not enough time left on %s: requested %d minutes, remaining %d", date, minutes, remaining)
		}
		slot.DeadlineAt = &deadline
	}

	for _, other := range tasks {
		if other.ScheduledFor != date || other.ID == excludeID || other.StartAt == nil {
			continue
		}
		if conflicts(slot, other) {
			return rejectf("overlaps %q (%s)", other.Title, formatRange(other))
		}
	}
	return slot, nil
}

// conflicts applies the interval rules between a candidate slot with a start
// time and a committed task with a start time:
//
//   - identical start instants always conflict;
//   - two full intervals conflict when they overlap;
//   - a lone start conflicts when it falls strictly inside the other's
//     interval.
func conflicts(candidate Slot, other models.Task) bool {
	cs := *candidate.StartAt
	es := *other.StartAt

	if cs.Equal(es) {
		return true
	}
	switch {
	case candidate.DeadlineAt != nil && other.DeadlineAt != nil:
		return cs.Before(*other.DeadlineAt) && es.Before(*candidate.DeadlineAt)
	case candidate.DeadlineAt != nil:
		return es.After(cs) && es.Before(*candidate.DeadlineAt)
	case other.DeadlineAt != nil:
		return cs.After(es) && cs.Before(*other.DeadlineAt)
	}
	return false
}

// ValidateTask re-runs Validate for an already-shaped task, excluding itself
// from the committed set. The store calls this on every create and edit so
// the committed set never violates the capacity or overlap invariants.
func ValidateTask(tasks []models.Task, t models.Task) (Slot, error) {
	draft := Draft{}
	if t.DurationMinutes != nil {
		draft.DurationMinutes = *t.DurationMinutes
	} else {
		if t.StartAt != nil {
			draft.StartTime = t.StartAt.Format(models.ClockLayout)
		}
		if t.DeadlineAt != nil {
			draft.DeadlineTime = t.DeadlineAt.Format(models.ClockLayout)
		}
	}
	return Validate(tasks, t.ScheduledFor, draft, t.ID)
}

func combine(date, clock string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout+" "+models.ClockLayout, date+" "+clock, time.Local)
}

func formatRange(t models.Task) string {
	if t.StartAt == nil {
		return ""
	}
	if t.DeadlineAt == nil {
		return t.StartAt.Format(models.ClockLayout)
	}
	return t.StartAt.Format(models.ClockLayout) + "–" + t.DeadlineAt.Format(models.ClockLayout)
}
