package models

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func validTask() Task {
	t := NewTask("Write report", "2024-06-10")
	t.ID = uuid.New().String()
	return t
}

func TestValidateTaskStruct(t *testing.T) {
	minutes := 90
	start := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		mutate  func(*Task)
		wantErr string
	}{
		{"valid defaults", func(*Task) {}, ""},
		{"valid duration mode", func(tk *Task) { tk.DurationMinutes = &minutes }, ""},
		{"valid timed mode", func(tk *Task) { tk.StartAt = &start }, ""},
		{"missing title", func(tk *Task) { tk.Title = "" }, "Title"},
		{"missing id", func(tk *Task) { tk.ID = "" }, "ID"},
		{"non-uuid id", func(tk *Task) { tk.ID = "task-1" }, "uuid4"},
		{"bad date", func(tk *Task) { tk.ScheduledFor = "10/06/2024" }, "datetime"},
		{"bad status", func(tk *Task) { tk.Status = "paused" }, "oneof"},
		{"zero duration", func(tk *Task) {
			zero := 0
			tk.DurationMinutes = &zero
		}, "min"},
		{"duration and start are exclusive", func(tk *Task) {
			tk.DurationMinutes = &minutes
			tk.StartAt = &start
		}, "excluded_with"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(&task)
			err := ValidateStruct(task)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask("Stretch", "2024-06-10")
	if task.Status != StatusPlanned {
		t.Errorf("status = %q, want planned", task.Status)
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("timestamps should be set")
	}
	if task.Timed() {
		t.Error("a fresh task has no start instant")
	}
}
