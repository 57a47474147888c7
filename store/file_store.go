package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"github.com/dayloop/dayloop/internal/planner"
	"github.com/dayloop/dayloop/models"
)

const (
	defaultDataFile   = "dayloop.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	reminderLeadKey   = "reminderLeadMinutes"

	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"

	checksumSuffix = ".checksum"
)

// FileStore implements PlannerStore on a single state document in JSON,
// YAML, or TOML. Writes go through a temp file and atomic rename, guarded by
// a file lock and a sha256 checksum sidecar. Every operation reloads from
// disk first, so concurrent processes (the CLI and a running watch loop)
// always act on the latest committed state.
type FileStore struct {
	filePath    string
	format      string
	leadMinutes int
	flk         *flock.Flock
	state       models.PlannerState
}

// NewFileStore returns an uninitialized store; Initialize must be called
// before use.
func NewFileStore() *FileStore {
	return &FileStore{
		state:       models.EmptyState(),
		leadMinutes: models.DefaultPreferences().ReminderLeadMinutes,
	}
}

// Initialize configures the file path and format, creates the data file if
// missing, and loads existing state.
func (s *FileStore) Initialize(config map[string]string) error {
	s.filePath = config[dataFileKey]
	if s.filePath == "" {
		s.filePath = defaultDataFile
	}

	format := strings.ToLower(config[dataFileFormatKey])
	switch format {
	case "":
		s.format = formatJSON
	case formatJSON, formatYAML, formatTOML:
		s.format = format
	default:
		return fmt.Errorf("unsupported dataFileFormat %q (want json, yaml, or toml)", format)
	}

	if lead, err := strconv.Atoi(config[reminderLeadKey]); err == nil && lead > 0 {
		s.leadMinutes = lead
	}

	if dir := filepath.Dir(s.filePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire initial lock on %s: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	return s.reload()
}

// FilePath returns the data file path. The watch loop points fsnotify at it.
func (s *FileStore) FilePath() string {
	return s.filePath
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// reload reads and decodes the data file, verifying the checksum sidecar
// when one exists. The caller must hold the lock.
func (s *FileStore) reload() error {
	checksumPath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.state = models.EmptyState()
			_ = os.Remove(checksumPath)
			return s.persist()
		}
		return fmt.Errorf("read data file %s: %w", s.filePath, err)
	}

	if want, err := os.ReadFile(checksumPath); err == nil {
		if got := checksum(data); got != strings.TrimSpace(string(want)) {
			return fmt.Errorf("checksum mismatch for %s: file is corrupt or was modified outside dayloop", s.filePath)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read checksum file %s: %w", checksumPath, err)
	}

	if len(data) == 0 {
		s.state = models.EmptyState()
		return nil
	}

	var state models.PlannerState
	switch s.format {
	case formatJSON:
		err = json.Unmarshal(data, &state)
	case formatYAML:
		err = yaml.Unmarshal(data, &state)
	case formatTOML:
		err = toml.Unmarshal(data, &state)
	}
	if err != nil {
		return fmt.Errorf("decode %s state from %s: %w", s.format, s.filePath, err)
	}

	if state.WeekWins == nil {
		state.WeekWins = map[string]models.WeekWinEntry{}
	}
	if state.Preferences == (models.Preferences{}) {
		state.Preferences = models.DefaultPreferences()
	}
	s.state = state
	return nil
}

// persist encodes the state, writes it to a temp file, then atomically
// renames the data file and its checksum sidecar. The caller must hold the
// lock.
func (s *FileStore) persist() error {
	var (
		data []byte
		err  error
	)
	switch s.format {
	case formatJSON:
		data, err = json.MarshalIndent(s.state, "", "  ")
	case formatYAML:
		data, err = yaml.Marshal(s.state)
	case formatTOML:
		buf := new(bytes.Buffer)
		err = toml.NewEncoder(buf).Encode(s.state)
		data = buf.Bytes()
	default:
		err = fmt.Errorf("unsupported data format %q", s.format)
	}
	if err != nil {
		return fmt.Errorf("encode state as %s: %w", s.format, err)
	}

	tmpPath := s.filePath + ".tmp"
	checksumPath := s.filePath + checksumSuffix
	tmpChecksumPath := checksumPath + ".tmp"
	defer func() { _ = os.Remove(tmpPath) }()
	defer func() { _ = os.Remove(tmpChecksumPath) }()

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.WriteFile(tmpChecksumPath, []byte(checksum(data)), 0o644); err != nil {
		return fmt.Errorf("write temp checksum file: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("replace data file %s: %w", s.filePath, err)
	}
	if err := os.Rename(tmpChecksumPath, checksumPath); err != nil {
		return fmt.Errorf("data file %s updated but checksum sidecar was not: %w", s.filePath, err)
	}
	return nil
}

// update runs fn against freshly loaded state under the lock and persists
// the result. fn's changes are discarded if it returns an error.
func (s *FileStore) update(fn func(*models.PlannerState) error) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire lock on %s: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.reload(); err != nil {
		return fmt.Errorf("reload before update: %w", err)
	}
	if err := fn(&s.state); err != nil {
		// Drop the partial mutation.
		_ = s.reload()
		return err
	}
	if err := s.persist(); err != nil {
		_ = s.reload()
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// view runs fn against freshly loaded state under the lock, without
// persisting.
func (s *FileStore) view(fn func(models.PlannerState) error) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire lock on %s: %w", s.filePath, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.reload(); err != nil {
		return err
	}
	return fn(s.state)
}

// applyReminderAt derives the single-shot reminder instant from the task's
// start time and the configured lead, clearing it for untimed tasks.
func (s *FileStore) applyReminderAt(t *models.Task) {
	if t.StartAt == nil {
		t.ReminderAt = nil
		return
	}
	at := t.StartAt.Add(-time.Duration(s.leadMinutes) * time.Minute)
	t.ReminderAt = &at
}

func taskIndex(tasks []models.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func reminderIndex(reminders []models.Reminder, id string) int {
	for i, r := range reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// CreateTask assigns identity and timestamps, validates the task's slot
// against the day's committed tasks, and commits it.
func (s *FileStore) CreateTask(task models.Task) (models.Task, error) {
	err := s.update(func(state *models.PlannerState) error {
		if task.ID == "" {
			task.ID = uuid.NewString()
		} else if taskIndex(state.Tasks, task.ID) >= 0 {
			return fmt.Errorf("task with ID %q already exists", task.ID)
		}
		now := time.Now()
		task.CreatedAt = now
		task.UpdatedAt = now
		if task.Status == "" {
			task.Status = models.StatusPlanned
		}
		s.applyReminderAt(&task)

		if err := models.ValidateStruct(task); err != nil {
			return fmt.Errorf("invalid task: %w", err)
		}
		if _, err := planner.ValidateTask(state.Tasks, task); err != nil {
			return err
		}
		state.Tasks = append(state.Tasks, task)
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// GetTask retrieves a task by ID.
func (s *FileStore) GetTask(id string) (models.Task, error) {
	var task models.Task
	err := s.view(func(state models.PlannerState) error {
		i := taskIndex(state.Tasks, id)
		if i < 0 {
			return fmt.Errorf("task with ID %q not found", id)
		}
		task = state.Tasks[i]
		return nil
	})
	return task, err
}

// UpdateTask applies mutate to a copy of the stored task, re-derives the
// reminder instant, and re-validates the slot before committing.
func (s *FileStore) UpdateTask(id string, mutate func(*models.Task) error) (models.Task, error) {
	var updated models.Task
	err := s.update(func(state *models.PlannerState) error {
		i := taskIndex(state.Tasks, id)
		if i < 0 {
			return fmt.Errorf("task with ID %q not found", id)
		}
		task := state.Tasks[i]
		if err := mutate(&task); err != nil {
			return err
		}
		task.ID = id
		task.UpdatedAt = time.Now()
		s.applyReminderAt(&task)

		if err := models.ValidateStruct(task); err != nil {
			return fmt.Errorf("invalid task: %w", err)
		}
		if _, err := planner.ValidateTask(state.Tasks, task); err != nil {
			return err
		}
		state.Tasks[i] = task
		updated = task
		return nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// SetTaskStatus changes only the task's status.
func (s *FileStore) SetTaskStatus(id string, status models.TaskStatus) (models.Task, error) {
	return s.UpdateTask(id, func(t *models.Task) error {
		t.Status = status
		return nil
	})
}

// DeleteTask removes a task.
func (s *FileStore) DeleteTask(id string) error {
	return s.update(func(state *models.PlannerState) error {
		i := taskIndex(state.Tasks, id)
		if i < 0 {
			return fmt.Errorf("task with ID %q not found", id)
		}
		state.Tasks = append(state.Tasks[:i], state.Tasks[i+1:]...)
		return nil
	})
}

// ListTasks returns tasks, optionally filtered and sorted in place.
func (s *FileStore) ListTasks(filterFn func(models.Task) bool, sortFn func([]models.Task)) ([]models.Task, error) {
	var tasks []models.Task
	err := s.view(func(state models.PlannerState) error {
		tasks = make([]models.Task, 0, len(state.Tasks))
		for _, t := range state.Tasks {
			if filterFn == nil || filterFn(t) {
				tasks = append(tasks, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if sortFn != nil {
		sortFn(tasks)
	}
	return tasks, nil
}

// CreateReminder validates the schedule and commits the reminder.
func (s *FileStore) CreateReminder(reminder models.Reminder) (models.Reminder, error) {
	err := s.update(func(state *models.PlannerState) error {
		if reminder.ID == "" {
			reminder.ID = uuid.NewString()
		} else if reminderIndex(state.Reminders, reminder.ID) >= 0 {
			return fmt.Errorf("reminder with ID %q already exists", reminder.ID)
		}
		now := time.Now()
		reminder.CreatedAt = now
		reminder.UpdatedAt = now

		if err := reminder.Schedule.Validate(); err != nil {
			return fmt.Errorf("invalid schedule: %w", err)
		}
		if err := models.ValidateStruct(reminder); err != nil {
			return fmt.Errorf("invalid reminder: %w", err)
		}
		state.Reminders = append(state.Reminders, reminder)
		return nil
	})
	if err != nil {
		return models.Reminder{}, err
	}
	return reminder, nil
}

// GetReminder retrieves a reminder by ID.
func (s *FileStore) GetReminder(id string) (models.Reminder, error) {
	var reminder models.Reminder
	err := s.view(func(state models.PlannerState) error {
		i := reminderIndex(state.Reminders, id)
		if i < 0 {
			return fmt.Errorf("reminder with ID %q not found", id)
		}
		reminder = state.Reminders[i]
		return nil
	})
	return reminder, err
}

// UpdateReminder applies mutate to a copy of the stored reminder and
// re-validates its schedule before committing.
func (s *FileStore) UpdateReminder(id string, mutate func(*models.Reminder) error) (models.Reminder, error) {
	var updated models.Reminder
	err := s.update(func(state *models.PlannerState) error {
		i := reminderIndex(state.Reminders, id)
		if i < 0 {
			return fmt.Errorf("reminder with ID %q not found", id)
		}
		reminder := state.Reminders[i]
		if err := mutate(&reminder); err != nil {
			return err
		}
		reminder.ID = id
		reminder.UpdatedAt = time.Now()

		if err := reminder.Schedule.Validate(); err != nil {
			return fmt.Errorf("invalid schedule: %w", err)
		}
		if err := models.ValidateStruct(reminder); err != nil {
			return fmt.Errorf("invalid reminder: %w", err)
		}
		state.Reminders[i] = reminder
		updated = reminder
		return nil
	})
	if err != nil {
		return models.Reminder{}, err
	}
	return updated, nil
}

// DeleteReminder removes a reminder.
func (s *FileStore) DeleteReminder(id string) error {
	return s.update(func(state *models.PlannerState) error {
		i := reminderIndex(state.Reminders, id)
		if i < 0 {
			return fmt.Errorf("reminder with ID %q not found", id)
		}
		state.Reminders = append(state.Reminders[:i], state.Reminders[i+1:]...)
		return nil
	})
}

// ListReminders returns all reminders.
func (s *FileStore) ListReminders() ([]models.Reminder, error) {
	var reminders []models.Reminder
	err := s.view(func(state models.PlannerState) error {
		reminders = append([]models.Reminder{}, state.Reminders...)
		return nil
	})
	return reminders, err
}

// WeekWins returns a copy of the stored win entries keyed by weekId.
func (s *FileStore) WeekWins() (map[string]models.WeekWinEntry, error) {
	wins := map[string]models.WeekWinEntry{}
	err := s.view(func(state models.PlannerState) error {
		for weekID, entry := range state.WeekWins {
			wins[weekID] = entry
		}
		return nil
	})
	return wins, err
}

// SetWeekWin records a manual override for a week.
func (s *FileStore) SetWeekWin(weekID string, fulfilled bool) error {
	if weekID == "" {
		return fmt.Errorf("weekId must not be empty")
	}
	return s.update(func(state *models.PlannerState) error {
		state.WeekWins[weekID] = models.WeekWinEntry{Status: models.WinManual, Fulfilled: fulfilled}
		return nil
	})
}

// ClearWeekWin removes a manual override; the week reverts to its auto
// value.
func (s *FileStore) ClearWeekWin(weekID string) error {
	return s.update(func(state *models.PlannerState) error {
		if _, ok := state.WeekWins[weekID]; !ok {
			return fmt.Errorf("no override stored for week %q", weekID)
		}
		delete(state.WeekWins, weekID)
		return nil
	})
}

// Profile returns the stored profile.
func (s *FileStore) Profile() (models.Profile, error) {
	var profile models.Profile
	err := s.view(func(state models.PlannerState) error {
		profile = state.Profile
		return nil
	})
	return profile, err
}

// SetProfile validates and stores the profile.
func (s *FileStore) SetProfile(profile models.Profile) error {
	if err := models.ValidateStruct(profile); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	return s.update(func(state *models.PlannerState) error {
		state.Profile = profile
		return nil
	})
}

// Preferences returns the stored preferences.
func (s *FileStore) Preferences() (models.Preferences, error) {
	var prefs models.Preferences
	err := s.view(func(state models.PlannerState) error {
		prefs = state.Preferences
		return nil
	})
	return prefs, err
}

// SetPreferences stores the preferences.
func (s *FileStore) SetPreferences(prefs models.Preferences) error {
	return s.update(func(state *models.PlannerState) error {
		state.Preferences = prefs
		return nil
	})
}

// Backup copies the data file to destinationPath.
func (s *FileStore) Backup(destinationPath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire lock for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("read data file for backup: %w", err)
	}
	if err := os.WriteFile(destinationPath, data, 0o644); err != nil {
		return fmt.Errorf("write backup to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the data file with sourcePath's contents and reloads.
// The checksum sidecar is removed; the next persist regenerates it.
func (s *FileStore) Restore(sourcePath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("acquire lock for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read backup file %s: %w", sourcePath, err)
	}
	tmpPath := s.filePath + ".tmp_restore"
	defer func() { _ = os.Remove(tmpPath) }()
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("stage restored data: %w", err)
	}
	if err := os.Rename(tmpPath, s.filePath); err != nil {
		return fmt.Errorf("replace data file with restore: %w", err)
	}
	_ = os.Remove(s.filePath + checksumSuffix)
	return s.reload()
}

// Close releases the file lock. Unlock is idempotent.
func (s *FileStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
