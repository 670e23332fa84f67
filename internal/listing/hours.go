package listing

import (
	"fmt"
	"time"
)

// HoursStatus is the open/closed state of a listing at a point in time.
type HoursStatus struct {
	Known bool
	Open  bool
	Label string
}

// parseClock parses "HH:MM" into minutes after midnight.
func parseClock(s string) (int, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// weekdayIndex maps time.Weekday (Sunday=0) to the Monday-first schedule index.
func weekdayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// span returns the open and close minutes of a day; close is past 24h for
// overnight schedules such as 18:00-02:00.
func (h DayHours) span() (int, int, bool) {
	if h.IsClosed {
		return 0, 0, false
	}
	open, ok := parseClock(h.OpenTime)
	if !ok {
		return 0, 0, false
	}
	closing, ok := parseClock(h.CloseTime)
	if !ok {
		return 0, 0, false
	}
	if closing <= open {
		closing += 24 * 60
	}
	return open, closing, true
}

// Summary renders a day as "09:00 - 17:00", "Closed" or "Not set".
func (h DayHours) Summary() string {
	if h.IsClosed {
		return "Closed"
	}
	if h.OpenTime == "" || h.CloseTime == "" {
		return "Not set"
	}
	return h.OpenTime + " - " + h.CloseTime
}

// OpenStatus reports whether a schedule is open at now and builds a label like
// "Open now · closes 17:00" or "Closed · opens Tue 09:00".
func OpenStatus(hours []DayHours, now time.Time) HoursStatus {
	if len(hours) != len(Weekdays) {
		return HoursStatus{Label: "Hours not available"}
	}

	today := weekdayIndex(now.Weekday())
	minute := now.Hour()*60 + now.Minute()

	// Yesterday's overnight span may still be running.
	yesterday := (today + 6) % 7
	if _, closing, ok := hours[yesterday].span(); ok && closing > 24*60 && minute < closing-24*60 {
		return HoursStatus{Known: true, Open: true, Label: "Open now · closes " + hours[yesterday].CloseTime}
	}

	if open, closing, ok := hours[today].span(); ok && minute >= open && minute < closing {
		return HoursStatus{Known: true, Open: true, Label: "Open now · closes " + hours[today].CloseTime}
	}

	for offset := 0; offset < 7; offset++ {
		idx := (today + offset) % 7
		open, _, ok := hours[idx].span()
		if !ok {
			continue
		}
		if offset == 0 {
			if minute < open {
				return HoursStatus{Known: true, Label: "Closed · opens " + hours[idx].OpenTime}
			}
			continue
		}
		return HoursStatus{Known: true, Label: fmt.Sprintf("Closed · opens %s %s", abbrev(hours[idx].Day), hours[idx].OpenTime)}
	}

	// Only today is open and it already closed: next opening is a week out.
	if _, _, ok := hours[today].span(); ok {
		return HoursStatus{Known: true, Label: fmt.Sprintf("Closed · opens %s %s", abbrev(hours[today].Day), hours[today].OpenTime)}
	}
	return HoursStatus{Known: true, Label: "Closed"}
}

func abbrev(day string) string {
	if len(day) > 3 {
		return day[:3]
	}
	return day
}
