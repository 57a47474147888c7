// Package types holds the unified application configuration shared by the
// command layer.
package types

// AppConfig is the root configuration structure, unmarshaled from viper
// (config file, DAYLOOP_* environment variables, flags).
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Project ProjectConfig `mapstructure:"project"`
	Data    DataConfig    `mapstructure:"data"`
	Planner PlannerConfig `mapstructure:"planner"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// ProjectConfig locates the dayloop data directory.
type ProjectConfig struct {
	RootDir string `mapstructure:"rootDir"`
}

// DataConfig names the state document and its encoding.
type DataConfig struct {
	File   string `mapstructure:"file"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=json yaml toml"`
}

// PlannerConfig carries the progress thresholds and the life-calendar
// anchor. Zero is a meaningful threshold (a day always counts), so defaults
// are applied by viper.SetDefault, not here.
type PlannerConfig struct {
	ProgressiveTasksPerDay    int    `mapstructure:"progressiveTasksPerDay" validate:"min=0"`
	ProgressiveDaysForWeekWin int    `mapstructure:"progressiveDaysForWeekWin" validate:"min=0,max=7"`
	DayFulfillmentThreshold   int    `mapstructure:"dayFulfillmentThreshold" validate:"min=0,max=100"`
	ReminderLeadMinutes       int    `mapstructure:"reminderLeadMinutes" validate:"min=0"`
	DateOfBirth               string `mapstructure:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
}

// WatchConfig tunes the reminder sweep loop.
type WatchConfig struct {
	// TickSeconds is the sweep cadence. It must stay minute-level or finer
	// so minute-discriminating schedules cannot skip their due window.
	TickSeconds int `mapstructure:"tickSeconds" validate:"min=1,max=60"`
	// NotifyCommand is an external delivery command (e.g. notify-send);
	// empty means triggers print to stdout.
	NotifyCommand string   `mapstructure:"notifyCommand"`
	NotifyArgs    []string `mapstructure:"notifyArgs"`
}
