package helpers

import (
	"fmt"
	"os"
	"time"

	"filter-delivery-backend/models"
)

// TwiceWeeklyMode resolves the 3.5-day step of twice_in_a_week.
// "alternate" steps 3 then 4 days so two deliveries land in every week,
// "truncate" always steps 3 days.
const (
	TwiceWeeklyAlternate = "alternate"
	TwiceWeeklyTruncate  = "truncate"
)

var twiceWeeklyMode = TwiceWeeklyAlternate

func init() {
	if mode := os.Getenv("TWICE_WEEKLY_MODE"); mode == TwiceWeeklyTruncate {
		twiceWeeklyMode = TwiceWeeklyTruncate
	}
}

// SetTwiceWeeklyMode overrides the env-derived mode. Returns the previous
// value so tests can restore it.
func SetTwiceWeeklyMode(mode string) string {
	prev := twiceWeeklyMode
	if mode == TwiceWeeklyAlternate || mode == TwiceWeeklyTruncate {
		twiceWeeklyMode = mode
	}
	return prev
}

// ValidFrequency reports whether code is a known frequency.
func ValidFrequency(code string) bool {
	switch code {
	case models.FrequencyDaily, models.FrequencyWeekdays, models.FrequencyTwiceInAWeek,
		models.FrequencyWeekly, models.FrequencyEvery2ndWeek, models.FrequencyEvery3rdWeek,
		models.FrequencyEvery5thWeek, models.FrequencyEvery6thWeek, models.FrequencyEvery8thWeek,
		models.FrequencyMonthly, models.FrequencyQuarterly, models.FrequencySemiAnnually,
		models.FrequencyAnnually, models.FrequencyOneTime:
		return true
	}
	return false
}

// GenerateRecurringDates expands [start, end] and a frequency code into the
// concrete delivery dates. Pure function, no I/O. The start date is always
// emitted when start <= end, except that weekdays rolls a weekend start
// forward to Monday first. one_time emits only the start date and ignores
// the end date entirely.
func GenerateRecurringDates(start time.Time, end time.Time, frequency string) ([]time.Time, error) {
	if !ValidFrequency(frequency) {
		return nil, fmt.Errorf("unknown frequency %q", frequency)
	}

	if frequency == models.FrequencyOneTime {
		return []time.Time{start}, nil
	}

	current := start
	if frequency == models.FrequencyWeekdays {
		current = skipWeekend(current)
	}

	var dates []time.Time
	step := 0
	for !current.After(end) {
		dates = append(dates, current)
		current = nextDate(current, frequency, step)
		step++
	}
	return dates, nil
}

func nextDate(d time.Time, frequency string, step int) time.Time {
	switch frequency {
	case models.FrequencyDaily:
		return d.AddDate(0, 0, 1)
	case models.FrequencyWeekdays:
		return skipWeekend(d.AddDate(0, 0, 1))
	case models.FrequencyTwiceInAWeek:
		if twiceWeeklyMode == TwiceWeeklyTruncate {
			return d.AddDate(0, 0, 3)
		}
		// alternating 3/4 day gaps averages the 3.5-day step
		if step%2 == 0 {
			return d.AddDate(0, 0, 3)
		}
		return d.AddDate(0, 0, 4)
	case models.FrequencyWeekly:
		return d.AddDate(0, 0, 7)
	case models.FrequencyEvery2ndWeek:
		return d.AddDate(0, 0, 14)
	case models.FrequencyEvery3rdWeek:
		return d.AddDate(0, 0, 21)
	case models.FrequencyEvery5thWeek:
		return d.AddDate(0, 0, 35)
	case models.FrequencyEvery6thWeek:
		return d.AddDate(0, 0, 42)
	case models.FrequencyEvery8thWeek:
		return d.AddDate(0, 0, 56)
	case models.FrequencyMonthly:
		return d.AddDate(0, 1, 0)
	case models.FrequencyQuarterly:
		return d.AddDate(0, 3, 0)
	case models.FrequencySemiAnnually:
		return d.AddDate(0, 6, 0)
	case models.FrequencyAnnually:
		return d.AddDate(1, 0, 0)
	}
	return d.AddDate(0, 0, 1)
}

func skipWeekend(d time.Time) time.Time {
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}
