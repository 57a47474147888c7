package progress

import (
	"testing"
	"time"

	"github.com/dayloop/dayloop/models"
)

// The test calendar: 2024-01-01 is a Monday.
const anchor = "2024-01-03" // a Wednesday, anchoring week w0000 at 2024-01-01

func day(t *testing.T, date string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(models.DateLayout, date, time.Local)
	if err != nil {
		t.Fatalf("parse %s: %v", date, err)
	}
	return d
}

func progressiveTask(id, date string, status models.TaskStatus) models.Task {
	task := models.NewTask("T "+id, date)
	task.ID = id
	task.Status = status
	task.Progressive = true
	return task
}

func plainTask(id, date string, status models.TaskStatus) models.Task {
	task := models.NewTask("T "+id, date)
	task.ID = id
	task.Status = status
	return task
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-01", "2024-01-01"}, // Monday maps to itself
		{"2024-01-03", "2024-01-01"},
		{"2024-01-07", "2024-01-01"}, // Sunday still belongs to Monday's week
		{"2024-01-08", "2024-01-08"},
	}
	for _, tt := range tests {
		got := WeekStart(day(t, tt.date)).Format(models.DateLayout)
		if got != tt.want {
			t.Errorf("WeekStart(%s) = %s, want %s", tt.date, got, tt.want)
		}
	}
}

func TestDayWeekID(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"same week as anchor", "2024-01-01", "w0000"},
		{"sunday of anchor week", "2024-01-07", "w0000"},
		{"next week", "2024-01-08", "w0001"},
		{"ten weeks on", "2024-03-11", "w0010"},
		{"week before the anchor", "2023-12-31", "w-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayWeekID(tt.date, anchor); got != tt.want {
				t.Errorf("DayWeekID(%s) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}

	if got := DayWeekID("2024-01-01", ""); got != "" {
		t.Errorf("empty anchor should yield empty weekId, got %q", got)
	}
	if got := DayWeekID("bogus", anchor); got != "" {
		t.Errorf("bad date should yield empty weekId, got %q", got)
	}
}

func TestComputeDaySummaries(t *testing.T) {
	prefs := models.DefaultPreferences()
	tasks := []models.Task{
		progressiveTask("a", "2024-01-01", models.StatusCompleted),
		plainTask("b", "2024-01-01", models.StatusInProgress),
		plainTask("c", "2024-01-01", models.StatusPlanned),
		plainTask("d", "2024-01-02", models.StatusCompleted),
	}

	summaries := ComputeDaySummaries(tasks, prefs, anchor)
	if len(summaries) != 2 {
		t.Fatalf("expected 2 day summaries, got %d", len(summaries))
	}

	monday := summaries["2024-01-01"]
	if monday.TotalTasks != 3 || monday.CompletedTasks != 1 || monday.InProgressTasks != 1 || monday.ProgressiveTasks != 1 {
		t.Errorf("unexpected counters: %+v", monday)
	}
	if monday.CompletionRate < 0.33 || monday.CompletionRate > 0.34 {
		t.Errorf("completionRate = %f, want ~0.33", monday.CompletionRate)
	}
	if !monday.Progressed || !monday.Fulfilled {
		t.Error("one progressive task should meet the default threshold")
	}
	if monday.WeekID != "w0000" {
		t.Errorf("weekId = %q, want w0000", monday.WeekID)
	}

	tuesday := summaries["2024-01-02"]
	if tuesday.Progressed {
		t.Error("a day without progressive tasks should not be progressed")
	}

	// Threshold zero: every day with tasks counts as progressed.
	prefs.ProgressiveTasksPerDay = 0
	always := ComputeDaySummaries(tasks, prefs, anchor)
	if !always["2024-01-02"].Progressed {
		t.Error("threshold 0 should mark every day progressed")
	}
}

func TestComputeDaySummaries_NoAnchor(t *testing.T) {
	tasks := []models.Task{plainTask("a", "2024-01-01", models.StatusPlanned)}
	if got := ComputeDaySummaries(tasks, models.DefaultPreferences(), ""); len(got) != 0 {
		t.Errorf("missing anchor should yield no summaries, got %d", len(got))
	}
	if got := ComputeDaySummaries(tasks, models.DefaultPreferences(), "not-a-date"); len(got) != 0 {
		t.Errorf("malformed anchor should yield no summaries, got %d", len(got))
	}
}

func TestDeriveAutoWeekWins(t *testing.T) {
	prefs := models.DefaultPreferences() // 1 progressive task per day, 3 days per win

	// Week of 2024-01-01: three progressed days. Week of 2024-01-08: two.
	tasks := []models.Task{
		progressiveTask("a", "2024-01-01", models.StatusCompleted),
		progressiveTask("b", "2024-01-02", models.StatusPlanned), // status is irrelevant
		progressiveTask("c", "2024-01-03", models.StatusSkipped),
		progressiveTask("d", "2024-01-08", models.StatusCompleted),
		progressiveTask("e", "2024-01-09", models.StatusCompleted),
	}
	summaries := ComputeDaySummaries(tasks, prefs, anchor)
	wins := DeriveAutoWeekWins(summaries, prefs.ProgressiveDaysForWeekWin)

	if !wins["w0000"] {
		t.Error("week with 3 progressed days should be an auto win")
	}
	if wins["w0001"] {
		t.Error("week with 2 progressed days should not be an auto win")
	}

	// Monotonic: one more progressed day keeps the win.
	tasks = append(tasks, progressiveTask("f", "2024-01-04", models.StatusCompleted))
	moreWins := DeriveAutoWeekWins(ComputeDaySummaries(tasks, prefs, anchor), prefs.ProgressiveDaysForWeekWin)
	if !moreWins["w0000"] {
		t.Error("adding a progressed day must not drop the win")
	}
}

func TestDeriveAutoWeekWins_TargetClamp(t *testing.T) {
	summaries := map[string]models.DaySummary{
		"2024-01-01": {Date: "2024-01-01", WeekID: "w0000", Progressed: true},
	}
	if wins := DeriveAutoWeekWins(summaries, 0); !wins["w0000"] {
		t.Error("target below 1 clamps to 1")
	}
	if wins := DeriveAutoWeekWins(summaries, 99); wins["w0000"] {
		t.Error("target above 7 clamps to 7, one day is not enough")
	}
}

func TestMergeWins(t *testing.T) {
	auto := map[string]bool{"w0001": true}
	overrides := map[string]models.WeekWinEntry{
		"w0001": {Status: models.WinManual, Fulfilled: false}, // user vetoes the auto win
		"w0002": {Status: models.WinManual, Fulfilled: true},
		"w0003": {Status: models.WinAuto, Fulfilled: true}, // stale auto entry is ignored
	}

	merged := MergeWins(auto, overrides)
	if e := merged["w0001"]; e.Fulfilled || e.Status != models.WinManual {
		t.Errorf("manual override should shadow the auto win, got %+v", e)
	}
	if e := merged["w0002"]; !e.Fulfilled || e.Status != models.WinManual {
		t.Errorf("manual win missing, got %+v", e)
	}
	if _, ok := merged["w0003"]; ok {
		t.Error("non-manual stored entries must not shadow recomputation")
	}

	// Clearing the override reveals the auto signal again.
	delete(overrides, "w0001")
	cleared := MergeWins(auto, overrides)
	if e := cleared["w0001"]; !e.Fulfilled || e.Status != models.WinAuto {
		t.Errorf("cleared override should revert to auto, got %+v", e)
	}
}
