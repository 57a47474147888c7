package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dayloop/dayloop/internal/planner"
	"github.com/dayloop/dayloop/models"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore()
	err := s.Initialize(map[string]string{
		"dataFile":            filepath.Join(t.TempDir(), "dayloop.json"),
		"dataFileFormat":      "json",
		"reminderLeadMinutes": "10",
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func intPtr(n int) *int { return &n }

func timePtr(t *testing.T, date, clock string) *time.Time {
	t.Helper()
	v, err := time.ParseInLocation(models.DateLayout+" "+models.ClockLayout, date+" "+clock, time.Local)
	if err != nil {
		t.Fatalf("parse %s %s: %v", date, clock, err)
	}
	return &v
}

func TestCreateAndGetTask(t *testing.T) {
	s := newTestStore(t)

	draft := models.NewTask("Deep work", "2024-06-10")
	draft.DurationMinutes = intPtr(90)
	created, err := s.CreateTask(draft)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ID == "" {
		t.Fatal("store should assign an ID")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("store should stamp timestamps")
	}

	got, err := s.GetTask(created.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "Deep work" || *got.DurationMinutes != 90 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestCreateTaskEnforcesDayBudget(t *testing.T) {
	s := newTestStore(t)

	first := models.NewTask("Morning block", "2024-06-10")
	first.DurationMinutes = intPtr(1400)
	if _, err := s.CreateTask(first); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	second := models.NewTask("Overflow", "2024-06-10")
	second.DurationMinutes = intPtr(60)
	_, err := s.CreateTask(second)
	if err == nil {
		t.Fatal("expected a capacity rejection")
	}
	var verr *planner.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *planner.ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(verr.Reason, "remaining 40") {
		t.Errorf("reason %q should report the remaining minutes", verr.Reason)
	}

	// Same request on another day is fine.
	second.ScheduledFor = "2024-06-11"
	if _, err := s.CreateTask(second); err != nil {
		t.Errorf("other day should accept the task: %v", err)
	}
}

func TestCreateTaskRejectsOverlap(t *testing.T) {
	s := newTestStore(t)

	meeting := models.NewTask("Standup", "2024-06-10")
	meeting.StartAt = timePtr(t, "2024-06-10", "09:00")
	meeting.DeadlineAt = timePtr(t, "2024-06-10", "10:00")
	if _, err := s.CreateTask(meeting); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	clash := models.NewTask("Review", "2024-06-10")
	clash.StartAt = timePtr(t, "2024-06-10", "09:30")
	_, err := s.CreateTask(clash)
	var verr *planner.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *planner.ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(verr.Reason, `"Standup"`) || !strings.Contains(verr.Reason, "09:00–10:00") {
		t.Errorf("reason %q should name the conflicting task and its range", verr.Reason)
	}
}

func TestReminderAtDerivedFromStart(t *testing.T) {
	s := newTestStore(t)

	task := models.NewTask("Call bank", "2024-06-10")
	task.StartAt = timePtr(t, "2024-06-10", "09:00")
	created, err := s.CreateTask(task)
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if created.ReminderAt == nil {
		t.Fatal("timed task should get a reminder instant")
	}
	if got := created.ReminderAt.Format(models.ClockLayout); got != "08:50" {
		t.Errorf("reminderAt = %s, want 08:50 (10 minute lead)", got)
	}

	// Removing the start clears the reminder.
	updated, err := s.UpdateTask(created.ID, func(tk *models.Task) error {
		tk.StartAt = nil
		tk.DeadlineAt = nil
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.ReminderAt != nil {
		t.Error("untimed task should have no reminder instant")
	}
}

func TestUpdateTaskRevalidatesSlot(t *testing.T) {
	s := newTestStore(t)

	a := models.NewTask("A", "2024-06-10")
	a.StartAt = timePtr(t, "2024-06-10", "09:00")
	a.DeadlineAt = timePtr(t, "2024-06-10", "10:00")
	a, err := s.CreateTask(a)
	if err != nil {
		t.Fatalf("CreateTask a: %v", err)
	}

	b := models.NewTask("B", "2024-06-10")
	b.StartAt = timePtr(t, "2024-06-10", "11:00")
	b.DeadlineAt = timePtr(t, "2024-06-10", "12:00")
	b, err = s.CreateTask(b)
	if err != nil {
		t.Fatalf("CreateTask b: %v", err)
	}

	// Touching only the title re-validates against the same slot and passes.
	if _, err := s.UpdateTask(a.ID, func(tk *models.Task) error {
		tk.Title = "A renamed"
		return nil
	}); err != nil {
		t.Errorf("no-op slot update should pass: %v", err)
	}

	// Moving b onto a's slot is rejected and the stored task is untouched.
	_, err = s.UpdateTask(b.ID, func(tk *models.Task) error {
		tk.StartAt = timePtr(t, "2024-06-10", "09:30")
		tk.DeadlineAt = timePtr(t, "2024-06-10", "10:30")
		return nil
	})
	var verr *planner.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("want *planner.ValidationError, got %T: %v", err, err)
	}
	got, err := s.GetTask(b.ID)
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.StartAt.Format(models.ClockLayout) != "11:00" {
		t.Error("rejected update must not change the stored task")
	}
}

func TestSetTaskStatusAndDelete(t *testing.T) {
	s := newTestStore(t)

	task, err := s.CreateTask(models.NewTask("Stretch", "2024-06-10"))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	done, err := s.SetTaskStatus(task.ID, models.StatusCompleted)
	if err != nil {
		t.Fatalf("SetTaskStatus: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", done.Status)
	}

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := s.GetTask(task.ID); err == nil {
		t.Error("deleted task should not be found")
	}
	if err := s.DeleteTask(task.ID); err == nil {
		t.Error("deleting twice should fail")
	}
}

func TestListTasksFilterAndSort(t *testing.T) {
	s := newTestStore(t)

	for _, title := range []string{"c", "a", "b"} {
		task := models.NewTask(title, "2024-06-10")
		if title == "b" {
			task.ScheduledFor = "2024-06-11"
		}
		if _, err := s.CreateTask(task); err != nil {
			t.Fatalf("CreateTask %s: %v", title, err)
		}
	}

	tasks, err := s.ListTasks(
		func(t models.Task) bool { return t.ScheduledFor == "2024-06-10" },
		func(ts []models.Task) {
			for i := range ts {
				for j := i + 1; j < len(ts); j++ {
					if ts[j].Title < ts[i].Title {
						ts[i], ts[j] = ts[j], ts[i]
					}
				}
			}
		},
	)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 2 || tasks[0].Title != "a" || tasks[1].Title != "c" {
		t.Errorf("unexpected listing: %+v", tasks)
	}
}

func TestReminderLifecycle(t *testing.T) {
	s := newTestStore(t)

	r := models.NewReminder("Drink water", models.ReminderSchedule{
		Kind:            models.ScheduleEveryMinutes,
		IntervalMinutes: 45,
	})
	created, err := s.CreateReminder(r)
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if created.ID == "" {
		t.Fatal("store should assign an ID")
	}

	updated, err := s.UpdateReminder(created.ID, func(rm *models.Reminder) error {
		rm.Schedule = models.ReminderSchedule{Kind: models.ScheduleDaily, Time: "08:00"}
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateReminder: %v", err)
	}
	if updated.Schedule.Kind != models.ScheduleDaily {
		t.Errorf("schedule kind = %q, want daily", updated.Schedule.Kind)
	}

	// A broken schedule never reaches disk.
	_, err = s.UpdateReminder(created.ID, func(rm *models.Reminder) error {
		rm.Schedule = models.ReminderSchedule{Kind: models.ScheduleWeekly, Time: "08:00"}
		return nil
	})
	if err == nil {
		t.Error("weekly schedule without weekdays should be rejected")
	}

	if err := s.DeleteReminder(created.ID); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}
	reminders, err := s.ListReminders()
	if err != nil {
		t.Fatalf("ListReminders: %v", err)
	}
	if len(reminders) != 0 {
		t.Errorf("expected empty reminder list, got %d", len(reminders))
	}
}

func TestCreateReminderRejectsBadSchedule(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateReminder(models.NewReminder("Bad", models.ReminderSchedule{Kind: models.ScheduleDaily}))
	if err == nil {
		t.Fatal("daily schedule without time should be rejected")
	}
}

func TestWeekWinOverrides(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetWeekWin("w0012", true); err != nil {
		t.Fatalf("SetWeekWin: %v", err)
	}
	if err := s.SetWeekWin("", true); err == nil {
		t.Error("empty weekId should be rejected")
	}

	wins, err := s.WeekWins()
	if err != nil {
		t.Fatalf("WeekWins: %v", err)
	}
	entry, ok := wins["w0012"]
	if !ok || entry.Status != models.WinManual || !entry.Fulfilled {
		t.Errorf("unexpected entry: %+v", entry)
	}

	if err := s.ClearWeekWin("w0012"); err != nil {
		t.Fatalf("ClearWeekWin: %v", err)
	}
	if err := s.ClearWeekWin("w0012"); err == nil {
		t.Error("clearing a missing override should fail")
	}
}

func TestProfileAndPreferences(t *testing.T) {
	s := newTestStore(t)

	if err := s.SetProfile(models.Profile{Name: "Sam", DateOfBirth: "1990-05-14"}); err != nil {
		t.Fatalf("SetProfile: %v", err)
	}
	if err := s.SetProfile(models.Profile{DateOfBirth: "May 14 1990"}); err == nil {
		t.Error("malformed date of birth should be rejected")
	}
	profile, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if profile.DateOfBirth != "1990-05-14" {
		t.Errorf("profile not persisted: %+v", profile)
	}

	prefs, err := s.Preferences()
	if err != nil {
		t.Fatalf("Preferences: %v", err)
	}
	if prefs != models.DefaultPreferences() {
		t.Errorf("fresh store should carry default preferences, got %+v", prefs)
	}
	prefs.ProgressiveDaysForWeekWin = 5
	if err := s.SetPreferences(prefs); err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}
	prefs, _ = s.Preferences()
	if prefs.ProgressiveDaysForWeekWin != 5 {
		t.Errorf("preferences not persisted: %+v", prefs)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dayloop.yaml")

	s := NewFileStore()
	if err := s.Initialize(map[string]string{"dataFile": path, "dataFileFormat": "yaml"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	task, err := s.CreateTask(models.NewTask("Persist me", "2024-06-10"))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := NewFileStore()
	if err := reopened.Initialize(map[string]string{"dataFile": path, "dataFileFormat": "yaml"}); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.GetTask(task.ID)
	if err != nil {
		t.Fatalf("GetTask after reopen: %v", err)
	}
	if got.Title != "Persist me" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestChecksumDetectsTampering(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CreateTask(models.NewTask("Guarded", "2024-06-10")); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	data, err := os.ReadFile(s.FilePath())
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	tampered := strings.Replace(string(data), "Guarded", "Altered", 1)
	if err := os.WriteFile(s.FilePath(), []byte(tampered), 0o644); err != nil {
		t.Fatalf("tamper: %v", err)
	}

	_, err = s.ListTasks(nil, nil)
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Errorf("expected checksum mismatch, got %v", err)
	}
}

func TestBackupAndRestore(t *testing.T) {
	s := newTestStore(t)
	task, err := s.CreateTask(models.NewTask("Keep", "2024-06-10"))
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	backupPath := filepath.Join(t.TempDir(), "backup.json")
	if err := s.Backup(backupPath); err != nil {
		t.Fatalf("Backup: %v", err)
	}

	if err := s.DeleteTask(task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.Restore(backupPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if _, err := s.GetTask(task.ID); err != nil {
		t.Errorf("restored task should be back: %v", err)
	}
}
