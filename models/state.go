package models

// PlannerState is the whole-application document the store persists: the
// canonical task and reminder collections, the manual week-win overrides
// keyed by weekId, and the user's profile and preferences.
type PlannerState struct {
	SchemaVersion string                  `json:"schemaVersion,omitempty"`
	Tasks         []Task                  `json:"tasks" validate:"dive"`
	Reminders     []Reminder              `json:"reminders,omitempty" validate:"dive"`
	WeekWins      map[string]WeekWinEntry `json:"weekWins,omitempty"`
	Profile       Profile                 `json:"profile"`
	Preferences   Preferences             `json:"preferences"`
}

// EmptyState returns a state document with initialized collections and
// default preferences.
func EmptyState() PlannerState {
	return PlannerState{
		SchemaVersion: "1",
		Tasks:         []Task{},
		Reminders:     []Reminder{},
		WeekWins:      map[string]WeekWinEntry{},
		Preferences:   DefaultPreferences(),
	}
}
