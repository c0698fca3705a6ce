package helpers

import (
	"testing"
	"time"

	"filter-delivery-backend/models"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestGenerateRecurringDatesWeekly(t *testing.T) {
	dates, err := GenerateRecurringDates(date(2024, time.January, 1), date(2024, time.January, 15), models.FrequencyWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 8),
		date(2024, time.January, 15),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d", len(dates), len(want))
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGenerateRecurringDatesFixedSteps(t *testing.T) {
	tests := []struct {
		frequency string
		stepDays  int
	}{
		{models.FrequencyDaily, 1},
		{models.FrequencyWeekly, 7},
		{models.FrequencyEvery2ndWeek, 14},
		{models.FrequencyEvery3rdWeek, 21},
		{models.FrequencyEvery5thWeek, 35},
		{models.FrequencyEvery6thWeek, 42},
		{models.FrequencyEvery8thWeek, 56},
	}

	start := date(2024, time.March, 1)
	end := date(2024, time.December, 31)
	for _, tt := range tests {
		t.Run(tt.frequency, func(t *testing.T) {
			dates, err := GenerateRecurringDates(start, end, tt.frequency)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(dates) < 2 {
				t.Fatalf("expected at least two dates, got %d", len(dates))
			}
			if !dates[0].Equal(start) {
				t.Errorf("first date = %v, want %v", dates[0], start)
			}
			for i := 1; i < len(dates); i++ {
				gap := dates[i].Sub(dates[i-1])
				if gap != time.Duration(tt.stepDays)*24*time.Hour {
					t.Errorf("gap between %v and %v = %v, want %d days", dates[i-1], dates[i], gap, tt.stepDays)
				}
				if dates[i].After(end) {
					t.Errorf("date %v lies beyond end %v", dates[i], end)
				}
			}
		})
	}
}

func TestGenerateRecurringDatesWeekdays(t *testing.T) {
	// 2024-01-05 is a Friday; the next weekdays are Mon Jan 8, Tue Jan 9
	dates, err := GenerateRecurringDates(date(2024, time.January, 5), date(2024, time.January, 9), models.FrequencyWeekdays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 3 {
		t.Fatalf("got %d dates, want 3: %v", len(dates), dates)
	}
	for _, d := range dates {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			t.Errorf("weekdays frequency emitted a weekend date %v", d)
		}
	}
}

func TestGenerateRecurringDatesWeekdaysWeekendStart(t *testing.T) {
	// Saturday start rolls forward to Monday
	dates, err := GenerateRecurringDates(date(2024, time.January, 6), date(2024, time.January, 8), models.FrequencyWeekdays)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 1 || !dates[0].Equal(date(2024, time.January, 8)) {
		t.Fatalf("got %v, want exactly [2024-01-08]", dates)
	}
}

func TestGenerateRecurringDatesOneTime(t *testing.T) {
	start := date(2024, time.June, 1)
	dates, err := GenerateRecurringDates(start, date(2020, time.January, 1), models.FrequencyOneTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 1 || !dates[0].Equal(start) {
		t.Fatalf("one_time must emit exactly the start date, got %v", dates)
	}
}

func TestGenerateRecurringDatesStartAfterEnd(t *testing.T) {
	dates, err := GenerateRecurringDates(date(2024, time.June, 2), date(2024, time.June, 1), models.FrequencyWeekly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 0 {
		t.Fatalf("expected no dates when start is after end, got %v", dates)
	}
}

func TestGenerateRecurringDatesMonthlyCalendarArithmetic(t *testing.T) {
	dates, err := GenerateRecurringDates(date(2024, time.January, 15), date(2024, time.April, 30), models.FrequencyMonthly)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{
		date(2024, time.January, 15),
		date(2024, time.February, 15),
		date(2024, time.March, 15),
		date(2024, time.April, 15),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(dates), len(want), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGenerateRecurringDatesAnnuallyLeapYear(t *testing.T) {
	dates, err := GenerateRecurringDates(date(2024, time.February, 29), date(2026, time.March, 31), models.FrequencyAnnually)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// AddDate normalizes Feb 29 + 1y to Mar 1
	if len(dates) != 3 {
		t.Fatalf("got %d dates, want 3: %v", len(dates), dates)
	}
	if !dates[1].Equal(date(2025, time.March, 1)) {
		t.Errorf("dates[1] = %v, want 2025-03-01", dates[1])
	}
}

func TestGenerateRecurringDatesTwiceInAWeek(t *testing.T) {
	prev := SetTwiceWeeklyMode(TwiceWeeklyAlternate)
	defer SetTwiceWeeklyMode(prev)

	dates, err := GenerateRecurringDates(date(2024, time.January, 1), date(2024, time.January, 14), models.FrequencyTwiceInAWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 4),
		date(2024, time.January, 8),
		date(2024, time.January, 11),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(dates), len(want), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGenerateRecurringDatesTwiceInAWeekTruncate(t *testing.T) {
	prev := SetTwiceWeeklyMode(TwiceWeeklyTruncate)
	defer SetTwiceWeeklyMode(prev)

	dates, err := GenerateRecurringDates(date(2024, time.January, 1), date(2024, time.January, 10), models.FrequencyTwiceInAWeek)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 4),
		date(2024, time.January, 7),
		date(2024, time.January, 10),
	}
	if len(dates) != len(want) {
		t.Fatalf("got %d dates, want %d: %v", len(dates), len(want), dates)
	}
	for i := range want {
		if !dates[i].Equal(want[i]) {
			t.Errorf("dates[%d] = %v, want %v", i, dates[i], want[i])
		}
	}
}

func TestGenerateRecurringDatesUnknownFrequency(t *testing.T) {
	if _, err := GenerateRecurringDates(date(2024, time.January, 1), date(2024, time.January, 2), "fortnightly"); err == nil {
		t.Fatal("expected an error for an unknown frequency")
	}
}

func TestGenerateRecurringDatesOrdering(t *testing.T) {
	frequencies := []string{
		models.FrequencyDaily, models.FrequencyWeekdays, models.FrequencyTwiceInAWeek,
		models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyQuarterly,
		models.FrequencySemiAnnually,
	}
	start := date(2024, time.January, 2)
	end := date(2024, time.August, 1)
	for _, frequency := range frequencies {
		t.Run(frequency, func(t *testing.T) {
			dates, err := GenerateRecurringDates(start, end, frequency)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(dates) == 0 {
				t.Fatal("expected at least the start date")
			}
			if !dates[0].Equal(start) {
				t.Errorf("first date = %v, want %v", dates[0], start)
			}
			for i := 1; i < len(dates); i++ {
				if !dates[i].After(dates[i-1]) {
					t.Errorf("dates not strictly increasing at %d: %v then %v", i, dates[i-1], dates[i])
				}
			}
			last := dates[len(dates)-1]
			if last.After(end) {
				t.Errorf("last date %v lies beyond end %v", last, end)
			}
		})
	}
}
