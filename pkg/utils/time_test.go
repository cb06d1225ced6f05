package utils

import (
	"testing"
	"time"
)

func TestDaysPeriod(t *testing.T) {
	start := time.Date(2021, 3, 1, 9, 30, 0, 0, time.Local)
	end := time.Date(2021, 3, 4, 18, 0, 0, 0, time.Local)

	days := DaysPeriod(start, end)
	if len(days) != 4 {
		t.Fatalf("expected 4 days, got %d: %v", len(days), days)
	}

	want := []string{"2021.03.01", "2021.03.02", "2021.03.03", "2021.03.04"}
	for i, day := range days {
		if got := day.Format(DateFormat); got != want[i] {
			t.Errorf("day #%d = %s, want %s", i, got, want[i])
		}
		if day.Hour() != 0 || day.Minute() != 0 {
			t.Errorf("day #%d not truncated to midnight: %v", i, day)
		}
	}
}

func TestDaysPeriodSingleDay(t *testing.T) {
	day := time.Date(2021, 3, 1, 8, 0, 0, 0, time.Local)
	days := DaysPeriod(day, day)
	if len(days) != 1 {
		t.Fatalf("expected 1 day, got %d", len(days))
	}
}
