package store

import "github.com/dayloop/dayloop/models"

// PlannerStore owns the canonical planner state: tasks, reminders, manual
// week-win overrides, and the user's profile and preferences. The engine
// packages (planner, recur, progress) are pure; every mutation funnels
// through a store implementation, which re-runs slot validation on each task
// create and edit.
type PlannerStore interface {
	// Initialize configures the store (file path, data format) and loads any
	// existing state. It must be called before any other operation.
	Initialize(config map[string]string) error

	// CreateTask validates and adds a task. The store assigns the ID and
	// timestamps and derives the single-shot reminder instant from the
	// task's start time and the reminder-lead preference.
	CreateTask(task models.Task) (models.Task, error)
	// GetTask retrieves a task by ID.
	GetTask(id string) (models.Task, error)
	// UpdateTask applies mutate to a copy of the stored task, then
	// re-validates its slot against the rest of the day before committing.
	UpdateTask(id string, mutate func(*models.Task) error) (models.Task, error)
	// SetTaskStatus is the status-change shortcut used by done/skip/start.
	SetTaskStatus(id string, status models.TaskStatus) (models.Task, error)
	// DeleteTask removes a task.
	DeleteTask(id string) error
	// ListTasks returns tasks, optionally filtered and sorted.
	ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task)) ([]models.Task, error)

	// CreateReminder validates the schedule and adds a reminder.
	CreateReminder(reminder models.Reminder) (models.Reminder, error)
	// GetReminder retrieves a reminder by ID.
	GetReminder(id string) (models.Reminder, error)
	// UpdateReminder applies mutate to a copy of the stored reminder and
	// re-validates its schedule before committing.
	UpdateReminder(id string, mutate func(*models.Reminder) error) (models.Reminder, error)
	// DeleteReminder removes a reminder. The sweep loop prunes its
	// last-fired memory on the next reload.
	DeleteReminder(id string) error
	// ListReminders returns all reminders.
	ListReminders() ([]models.Reminder, error)

	// WeekWins returns the stored manual overrides keyed by weekId.
	WeekWins() (map[string]models.WeekWinEntry, error)
	// SetWeekWin records a manual override for a week.
	SetWeekWin(weekID string, fulfilled bool) error
	// ClearWeekWin removes a manual override, revealing the auto value.
	ClearWeekWin(weekID string) error

	// Profile and preferences round-trip the life-calendar anchor and the
	// progress thresholds.
	Profile() (models.Profile, error)
	SetProfile(profile models.Profile) error
	Preferences() (models.Preferences, error)
	SetPreferences(prefs models.Preferences) error

	// Backup copies the data file to destinationPath.
	Backup(destinationPath string) error
	// Restore replaces the data file with sourcePath's contents.
	Restore(sourcePath string) error
	// Close releases the file lock.
	Close() error
}
