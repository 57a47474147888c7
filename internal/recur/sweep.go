package recur

import (
	"time"

	"github.com/dayloop/dayloop/models"
)

// Trigger is the display payload handed to the notification collaborator
// when a reminder comes due.
type Trigger struct {
	Title     string
	Body      string
	DedupeKey string
	At        time.Time
}

// Evaluator sweeps the active reminders on each tick. Now is injectable for
// deterministic tests and defaults to time.Now.
type Evaluator struct {
	Fired FiredStore
	Now   func() time.Time
}

func NewEvaluator(fired FiredStore) *Evaluator {
	return &Evaluator{Fired: fired, Now: time.Now}
}

func (e *Evaluator) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Sweep evaluates every reminder once against the current instant and
// returns the due triggers. A reminder that has never fired is measured from
// its creation time. The last-fired update happens before the trigger is
// returned, so delivery failure in the caller cannot cause a refire.
func (e *Evaluator) Sweep(reminders []models.Reminder) []Trigger {
	now := e.now()
	var due []Trigger
	for _, r := range reminders {
		key := "reminder:" + r.ID
		last, ok := e.Fired.LastFired(key)
		if !ok {
			last = r.CreatedAt
		}
		if !DueNow(r.Schedule, now, last) {
			continue
		}
		e.Fired.MarkFired(key, now)
		due = append(due, Trigger{
			Title:     r.Title,
			Body:      r.Schedule.Describe(),
			DedupeKey: key,
			At:        now,
		})
	}
	return due
}

// SweepTasks evaluates single-shot task reminders (reminderAt, derived from
// a task's start time). Each fires at most once: an entry in the fired store
// at or after the reminder instant suppresses it.
func (e *Evaluator) SweepTasks(tasks []models.Task) []Trigger {
	now := e.now()
	var due []Trigger
	for _, t := range tasks {
		if t.ReminderAt == nil || now.Before(*t.ReminderAt) {
			continue
		}
		if t.Status == models.StatusCompleted || t.Status == models.StatusSkipped {
			continue
		}
		key := "task:" + t.ID
		if last, ok := e.Fired.LastFired(key); ok && !last.Before(*t.ReminderAt) {
			continue
		}
		e.Fired.MarkFired(key, now)
		body := "starts soon"
		if t.StartAt != nil {
			body = "starts at " + t.StartAt.Format(models.ClockLayout)
		}
		due = append(due, Trigger{
			Title:     t.Title,
			Body:      body,
			DedupeKey: key,
			At:        now,
		})
	}
	return due
}

// Prune drops fired-store entries whose reminder or task no longer exists
// and returns their dedupe keys so pending deliveries can be cancelled. The
// sweep loop calls this after every reload of the state document.
func (e *Evaluator) Prune(reminders []models.Reminder, tasks []models.Task) []string {
	keep := make(map[string]struct{}, len(reminders)+len(tasks))
	for _, r := range reminders {
		keep["reminder:"+r.ID] = struct{}{}
	}
	for _, t := range tasks {
		keep["task:"+t.ID] = struct{}{}
	}
	return e.Fired.PruneExcept(keep)
}
