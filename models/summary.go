package models

// WinStatus marks how a week-win entry came to be.
type WinStatus string

const (
	WinAuto   WinStatus = "auto"
	WinManual WinStatus = "manual"
)

// DaySummary is the derived per-day rollup of the committed task set. It is
// recomputed, never authoritative; Fulfilled mirrors Progressed and is kept
// for persistence-shape compatibility.
type DaySummary struct {
	Date             string  `json:"date"`
	CompletionRate   float64 `json:"completionRate"`
	TotalTasks       int     `json:"totalTasks"`
	CompletedTasks   int     `json:"completedTasks"`
	InProgressTasks  int     `json:"inProgressTasks"`
	ProgressiveTasks int     `json:"progressiveTasks"`
	Progressed       bool    `json:"progressed"`
	WeekID           string  `json:"weekId"`
	Fulfilled        bool    `json:"fulfilled"`
}

// WeekWinEntry is a week's win state. Auto entries are derived from day
// summaries; manual entries are user overrides that shadow the auto value
// until explicitly cleared.
type WeekWinEntry struct {
	Status    WinStatus `json:"status" validate:"required,oneof=auto manual"`
	Fulfilled bool      `json:"fulfilled"`
}

// Preferences are the tunable thresholds of the progress pipeline.
type Preferences struct {
	ProgressiveTasksPerDay    int `json:"progressiveTasksPerDay" mapstructure:"progressiveTasksPerDay"`
	ProgressiveDaysForWeekWin int `json:"progressiveDaysForWeekWin" mapstructure:"progressiveDaysForWeekWin"`
	DayFulfillmentThreshold   int `json:"dayFulfillmentThreshold" mapstructure:"dayFulfillmentThreshold"`
	ReminderLeadMinutes       int `json:"reminderLeadMinutes" mapstructure:"reminderLeadMinutes"`
}

// DefaultPreferences returns the documented fallback thresholds.
func DefaultPreferences() Preferences {
	return Preferences{
		ProgressiveTasksPerDay:    1,
		ProgressiveDaysForWeekWin: 3,
		DayFulfillmentThreshold:   40,
		ReminderLeadMinutes:       10,
	}
}

// Profile anchors the life calendar. DateOfBirth is a YYYY-MM-DD date; an
// empty value disables week identification and progress summaries.
type Profile struct {
	Name        string `json:"name,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
