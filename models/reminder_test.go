package models

import (
	"testing"
)

func TestReminderScheduleValidate(t *testing.T) {
	tests := []struct {
		name     string
		schedule ReminderSchedule
		wantErr  bool
	}{
		{"every minutes", ReminderSchedule{Kind: ScheduleEveryMinutes, IntervalMinutes: 30}, false},
		{"every minutes without interval", ReminderSchedule{Kind: ScheduleEveryMinutes}, true},
		{"hourly at zero mark", ReminderSchedule{Kind: ScheduleHourly}, false},
		{"hourly mark out of range", ReminderSchedule{Kind: ScheduleHourly, MinuteMark: 75}, true},
		{"daily", ReminderSchedule{Kind: ScheduleDaily, Time: "08:30"}, false},
		{"daily without time", ReminderSchedule{Kind: ScheduleDaily}, true},
		{"daily with bad clock", ReminderSchedule{Kind: ScheduleDaily, Time: "8:30am"}, true},
		{"weekly", ReminderSchedule{Kind: ScheduleWeekly, Time: "09:00", DaysOfWeek: []int{0, 4}}, false},
		{"weekly without days", ReminderSchedule{Kind: ScheduleWeekly, Time: "09:00"}, true},
		{"weekly day out of range", ReminderSchedule{Kind: ScheduleWeekly, Time: "09:00", DaysOfWeek: []int{7}}, true},
		{"monthly", ReminderSchedule{Kind: ScheduleMonthly, Time: "10:00", DaysOfMonth: []int{1, 15}}, false},
		{"monthly without days", ReminderSchedule{Kind: ScheduleMonthly, Time: "10:00"}, true},
		{"yearly", ReminderSchedule{Kind: ScheduleYearly, Time: "12:00", Dates: []string{"05-14"}}, false},
		{"yearly with bad date", ReminderSchedule{Kind: ScheduleYearly, Time: "12:00", Dates: []string{"14-05"}}, true},
		{"unknown kind", ReminderSchedule{Kind: "fortnightly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.schedule.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected a validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestReminderScheduleDescribe(t *testing.T) {
	tests := []struct {
		schedule ReminderSchedule
		want     string
	}{
		{ReminderSchedule{Kind: ScheduleEveryMinutes, IntervalMinutes: 1}, "every minute"},
		{ReminderSchedule{Kind: ScheduleEveryMinutes, IntervalMinutes: 30}, "every 30 minutes"},
		{ReminderSchedule{Kind: ScheduleHourly, MinuteMark: 5}, "hourly at :05"},
		{ReminderSchedule{Kind: ScheduleDaily, Time: "08:30"}, "daily at 08:30"},
		{ReminderSchedule{Kind: ScheduleWeekly, Time: "08:00", DaysOfWeek: []int{0, 4}}, "weekly on Mon, Fri at 08:00"},
		{ReminderSchedule{Kind: ScheduleMonthly, Time: "10:00", DaysOfMonth: []int{1, 15}}, "monthly on day 1, 15 at 10:00"},
		{ReminderSchedule{Kind: ScheduleYearly, Time: "12:00", Dates: []string{"05-14"}}, "yearly on 05-14 at 12:00"},
	}
	for _, tt := range tests {
		if got := tt.schedule.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}
