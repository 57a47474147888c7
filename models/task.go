package models

import (
	"time"
)

// TaskStatus represents the possible statuses of a task.
type TaskStatus string

const (
	StatusPlanned    TaskStatus = "planned"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusSkipped    TaskStatus = "skipped"
)

// DateLayout is the calendar-date layout used by ScheduledFor and the
// profile's date of birth.
const DateLayout = "2006-01-02"

// ClockLayout is the wall-clock layout used by reminder schedules and the
// add/edit time flags.
const ClockLayout = "15:04"

// Task is a unit of planned work occupying a slice of one day.
//
// A task is scheduled in exactly one of two modes: by duration
// (DurationMinutes set, no timestamps) or by time (StartAt alone, StartAt
// plus DeadlineAt, or neither for an untimed entry). ReminderAt is a derived
// single-shot reminder instant, recomputed from StartAt whenever it changes.
type Task struct {
	ID              string     `json:"id" validate:"required,uuid4"`
	Title           string     `json:"title" validate:"required,min=1,max=255"`
	Description     string     `json:"description,omitempty"`
	ScheduledFor    string     `json:"scheduledFor" validate:"required,datetime=2006-01-02"`
	StartAt         *time.Time `json:"startAt,omitempty" validate:"excluded_with=DurationMinutes"`
	DeadlineAt      *time.Time `json:"deadlineAt,omitempty" validate:"excluded_with=DurationMinutes"`
	ReminderAt      *time.Time `json:"reminderAt,omitempty"`
	DurationMinutes *int       `json:"durationMinutes,omitempty" validate:"omitempty,min=1"`
	Progressive     bool       `json:"progressive"`
	Tags            []string   `json:"tags,omitempty"`
	Status          TaskStatus `json:"status" validate:"required,oneof=planned in_progress completed skipped"`
	CreatedAt       time.Time  `json:"createdAt" validate:"required"`
	UpdatedAt       time.Time  `json:"updatedAt" validate:"required"`
}

// Timed reports whether the task occupies a concrete start instant.
func (t Task) Timed() bool {
	return t.StartAt != nil
}

// NewTask returns a task with defaults filled in. The ID is assigned by the
// store on create.
func NewTask(title, scheduledFor string) Task {
	now := time.Now()
	return Task{
		Title:        title,
		ScheduledFor: scheduledFor,
		Status:       StatusPlanned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
