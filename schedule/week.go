package schedule

import "time"

const DateLayout = "2006-01-02"

// WeekStart normalizes t to the Monday of its ISO week, midnight UTC.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started 6 days earlier
	}
	return t.AddDate(0, 0, -(wd - 1))
}

// WeekDates returns the 7 dates of the week containing t, Monday first.
func WeekDates(t time.Time) [7]string {
	start := WeekStart(t)
	var out [7]string
	for i := 0; i < 7; i++ {
		out[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return out
}

// DatesBetween lists every date from start to end inclusive. Used by the
// calendar projection, which is not limited to 7 columns.
func DatesBetween(start, end time.Time) []string {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out
}
