package models

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleKind discriminates the recurrence rule variants.
type ScheduleKind string

const (
	ScheduleEveryMinutes ScheduleKind = "every_minutes"
	ScheduleHourly       ScheduleKind = "hourly"
	ScheduleDaily        ScheduleKind = "daily"
	ScheduleWeekly       ScheduleKind = "weekly"
	ScheduleMonthly      ScheduleKind = "monthly"
	ScheduleYearly       ScheduleKind = "yearly"
)

// ReminderSchedule is a tagged recurrence rule. Kind selects the variant;
// only the fields belonging to that variant are meaningful.
//
// Weekday convention is ISO with Monday=0 through Sunday=6. Yearly dates are
// MM-DD strings.
type ReminderSchedule struct {
	Kind            ScheduleKind `json:"kind" validate:"required,oneof=every_minutes hourly daily weekly monthly yearly"`
	IntervalMinutes int          `json:"intervalMinutes,omitempty" validate:"omitempty,min=1"`
	MinuteMark      int          `json:"minuteMark,omitempty" validate:"min=0,max=59"`
	Time            string       `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	DaysOfWeek      []int        `json:"daysOfWeek,omitempty" validate:"dive,min=0,max=6"`
	DaysOfMonth     []int        `json:"daysOfMonth,omitempty" validate:"dive,min=1,max=31"`
	Dates           []string     `json:"dates,omitempty" validate:"dive,datetime=01-02"`
}

// Validate checks the kind-specific requirements the struct tags cannot
// express (a daily rule needs a time, a weekly rule needs weekdays, and so
// on). Schedules are rejected here, at construction time; the evaluator
// assumes well-formed rules.
func (s ReminderSchedule) Validate() error {
	if err := ValidateStruct(s); err != nil {
		return err
	}
	switch s.Kind {
	case ScheduleEveryMinutes:
		if s.IntervalMinutes < 1 {
			return fmt.Errorf("every_minutes schedule requires intervalMinutes >= 1")
		}
	case ScheduleHourly:
		// MinuteMark range is covered by the struct tags; zero is a valid mark.
	case ScheduleDaily:
		if s.Time == "" {
			return fmt.Errorf("daily schedule requires a time")
		}
	case ScheduleWeekly:
		if s.Time == "" {
			return fmt.Errorf("weekly schedule requires a time")
		}
		if len(s.DaysOfWeek) == 0 {
			return fmt.Errorf("weekly schedule requires at least one weekday")
		}
	case ScheduleMonthly:
		if s.Time == "" {
			return fmt.Errorf("monthly schedule requires a time")
		}
		if len(s.DaysOfMonth) == 0 {
			return fmt.Errorf("monthly schedule requires at least one day of month")
		}
	case ScheduleYearly:
		if s.Time == "" {
			return fmt.Errorf("yearly schedule requires a time")
		}
		if len(s.Dates) == 0 {
			return fmt.Errorf("yearly schedule requires at least one MM-DD date")
		}
	default:
		return fmt.Errorf("unknown schedule kind %q", s.Kind)
	}
	return nil
}

var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Describe renders the rule for a notification body, e.g.
// "every 30 minutes" or "weekly on Mon, Fri at 08:00".
func (s ReminderSchedule) Describe() string {
	switch s.Kind {
	case ScheduleEveryMinutes:
		if s.IntervalMinutes == 1 {
			return "every minute"
		}
		return fmt.Sprintf("every %d minutes", s.IntervalMinutes)
	case ScheduleHourly:
		return fmt.Sprintf("hourly at :%02d", s.MinuteMark)
	case ScheduleDaily:
		return fmt.Sprintf("daily at %s", s.Time)
	case ScheduleWeekly:
		names := make([]string, 0, len(s.DaysOfWeek))
		for _, d := range s.DaysOfWeek {
			if d >= 0 && d < len(weekdayNames) {
				names = append(names, weekdayNames[d])
			}
		}
		return fmt.Sprintf("weekly on %s at %s", strings.Join(names, ", "), s.Time)
	case ScheduleMonthly:
		days := make([]string, 0, len(s.DaysOfMonth))
		for _, d := range s.DaysOfMonth {
			days = append(days, fmt.Sprintf("%d", d))
		}
		return fmt.Sprintf("monthly on day %s at %s", strings.Join(days, ", "), s.Time)
	case ScheduleYearly:
		return fmt.Sprintf("yearly on %s at %s", strings.Join(s.Dates, ", "), s.Time)
	}
	return string(s.Kind)
}

// Reminder is a recurring notification definition. Its last-fired memory is
// owned by the recurrence evaluator, not the model.
type Reminder struct {
	ID          string           `json:"id" validate:"required,uuid4"`
	Title       string           `json:"title" validate:"required,min=1,max=255"`
	Description string           `json:"description,omitempty"`
	Schedule    ReminderSchedule `json:"schedule" validate:"required"`
	CreatedAt   time.Time        `json:"createdAt" validate:"required"`
	UpdatedAt   time.Time        `json:"updatedAt" validate:"required"`
}

// NewReminder returns a reminder with timestamps set. The ID is assigned by
// the store on create.
func NewReminder(title string, schedule ReminderSchedule) Reminder {
	now := time.Now()
	return Reminder{
		Title:     title,
		Schedule:  schedule,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
