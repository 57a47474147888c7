package recur

import (
	"testing"
	"time"

	"github.com/dayloop/dayloop/models"
)

func fixedEvaluator(now time.Time) *Evaluator {
	e := NewEvaluator(NewMemoryFiredStore())
	e.Now = func() time.Time { return now }
	return e
}

func TestSweep_AtMostOncePerWindow(t *testing.T) {
	created := at(t, "2024-01-01 08:00:00")
	reminder := models.Reminder{
		ID:        "r1",
		Title:     "Stretch",
		Schedule:  models.ReminderSchedule{Kind: models.ScheduleEveryMinutes, IntervalMinutes: 5},
		CreatedAt: created,
	}

	e := fixedEvaluator(created.Add(5 * time.Minute))
	first := e.Sweep([]models.Reminder{reminder})
	if len(first) != 1 {
		t.Fatalf("expected one trigger, got %d", len(first))
	}
	if first[0].DedupeKey != "reminder:r1" || first[0].Body != "every 5 minutes" {
		t.Errorf("unexpected trigger payload: %+v", first[0])
	}

	// Same instant again: the fired store has already advanced.
	second := e.Sweep([]models.Reminder{reminder})
	if len(second) != 0 {
		t.Fatalf("expected no trigger on the second pass, got %d", len(second))
	}
}

func TestSweep_NeverFiredMeasuresFromCreation(t *testing.T) {
	created := at(t, "2024-01-01 08:00:00")
	reminder := models.Reminder{
		ID:        "r1",
		Title:     "Water",
		Schedule:  models.ReminderSchedule{Kind: models.ScheduleEveryMinutes, IntervalMinutes: 10},
		CreatedAt: created,
	}

	e := fixedEvaluator(created.Add(3 * time.Minute))
	if got := e.Sweep([]models.Reminder{reminder}); len(got) != 0 {
		t.Errorf("3 minutes after creation should not fire, got %d triggers", len(got))
	}
}

func TestSweepTasks_SingleShot(t *testing.T) {
	start := at(t, "2024-01-01 09:00:00")
	remindAt := start.Add(-10 * time.Minute)
	task := models.Task{
		ID:           "t1",
		Title:        "Standup",
		ScheduledFor: "2024-01-01",
		StartAt:      &start,
		ReminderAt:   &remindAt,
		Status:       models.StatusPlanned,
	}

	e := fixedEvaluator(remindAt.Add(time.Second))
	first := e.SweepTasks([]models.Task{task})
	if len(first) != 1 {
		t.Fatalf("expected one trigger, got %d", len(first))
	}
	if first[0].Body != "starts at 09:00" {
		t.Errorf("body = %q", first[0].Body)
	}
	if second := e.SweepTasks([]models.Task{task}); len(second) != 0 {
		t.Errorf("single-shot reminder fired twice")
	}

	done := task
	done.ID = "t2"
	done.Status = models.StatusCompleted
	if got := e.SweepTasks([]models.Task{done}); len(got) != 0 {
		t.Errorf("completed task should not remind")
	}
}

func TestPrune_ForgetsDeletedEntities(t *testing.T) {
	e := fixedEvaluator(at(t, "2024-01-01 09:00:00"))
	e.Fired.MarkFired("reminder:gone", at(t, "2024-01-01 08:00:00"))
	e.Fired.MarkFired("reminder:kept", at(t, "2024-01-01 08:00:00"))

	kept := models.Reminder{ID: "kept"}
	removed := e.Prune([]models.Reminder{kept}, nil)
	if len(removed) != 1 || removed[0] != "reminder:gone" {
		t.Fatalf("removed = %v, want [reminder:gone]", removed)
	}
	if _, ok := e.Fired.LastFired("reminder:gone"); ok {
		t.Error("pruned key still present")
	}
	if _, ok := e.Fired.LastFired("reminder:kept"); !ok {
		t.Error("kept key was pruned")
	}
}
