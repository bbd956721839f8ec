package domain

import "time"

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateIn(t time.Time, loc *time.Location) civilDate {
	y, m, d := t.In(loc).Date()
	return civilDate{year: y, month: m, day: d}
}

// SameDay compares calendar dates in now's location.
func SameDay(t, now time.Time) bool {
	return dateIn(t, now.Location()) == dateIn(now, now.Location())
}

// IsYesterday reports whether t falls on the calendar day before now, in now's
// location. time.Date normalises day 0 into the previous month.
func IsYesterday(t, now time.Time) bool {
	today := dateIn(now, now.Location())
	yesterday := time.Date(today.year, today.month, today.day-1, 12, 0, 0, 0, now.Location())
	return dateIn(t, now.Location()) == dateIn(yesterday, now.Location())
}
