package belt

import (
	"math"
	"time"

	"utilitybelt/internal/logging"
)

const millisecondsPerWeek = 7 * 24 * 60 * 60 * 1000

// WeekNumber returns the ISO-8601 week number (1-53) of a date value, or -1
// when v is not a date. Weeks run Monday to Sunday; week 1 is the week that
// holds the year's first Thursday.
//
// The computation uses the calendar day of v in v's own location, so the
// result never drifts across daylight-saving transitions.
func WeekNumber(v any) int {
	if !IsDate(v) {
		return -1
	}

	var target time.Time
	switch x := CloneOf(v).(type) {
	case time.Time:
		target = x
	case *time.Time:
		target = *x
	}

	// ISO weeks start on Monday: Sunday is day 7, i.e. offset 6.
	dayNr := (int(target.Weekday()) + 6) % 7

	y, m, d := target.Date()
	thursday := civilDay(y, m, d-dayNr+3)

	firstThursday := civilDay(thursday.Year(), time.January, 1)
	if wd := firstThursday.Weekday(); wd != time.Thursday {
		firstThursday = civilDay(thursday.Year(), time.January, 1+((int(time.Thursday)-int(wd))+7)%7)
	}

	diff := thursday.Sub(firstThursday).Milliseconds()
	week := 1 + int(math.Ceil(float64(diff)/millisecondsPerWeek))
	logging.CalendarDebug("week of %s: thursday=%s first=%s week=%d",
		target.Format(time.DateOnly), thursday.Format(time.DateOnly), firstThursday.Format(time.DateOnly), week)
	return week
}

// civilDay is midnight UTC of the given calendar day; out-of-range days
// normalize the way time.Date does.
func civilDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
