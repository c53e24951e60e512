// Package dateutil provides calendar arithmetic with deterministic
// month-end clamping. time.AddDate normalizes overflow (Jan 31 + 1 month =
// Mar 2/3), which is the wrong behavior for payment cycles: a subscription
// charged on the 31st should charge on Feb 29 in a leap year, not in March.
package dateutil

import "time"

// AddWeeks returns t advanced by n whole weeks.
func AddWeeks(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, 7*n)
}

// AddMonths returns t advanced by n calendar months, preserving the day of
// month where valid and clamping to the last day of the target month
// otherwise.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	target := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(target.Year(), target.Month()); day > last {
		day = last
	}
	return time.Date(target.Year(), target.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddYears returns t advanced by n calendar years, clamping Feb 29 to
// Feb 28 in non-leap target years.
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, 12*n)
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
