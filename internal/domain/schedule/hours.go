package schedule

import "time"

// BusinessHours describes the bookable window of a clinic week.
// The default mirrors the clinic calendar: Sunday through Friday,
// 08:00 to 21:00, Saturday closed.
type BusinessHours struct {
	Weekdays  map[time.Weekday]bool
	OpenHour  int
	CloseHour int
}

func DefaultBusinessHours() BusinessHours {
	return BusinessHours{
		Weekdays: map[time.Weekday]bool{
			time.Sunday:    true,
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		OpenHour:  8,
		CloseHour: 21,
	}
}

// Contains reports whether [start, end) fits inside one business day.
func (bh BusinessHours) Contains(start, end time.Time) bool {
	if !bh.Weekdays[start.Weekday()] {
		return false
	}

	open := time.Date(start.Year(), start.Month(), start.Day(), bh.OpenHour, 0, 0, 0, start.Location())
	close := time.Date(start.Year(), start.Month(), start.Day(), bh.CloseHour, 0, 0, 0, start.Location())

	if start.Before(open) || end.After(close) {
		return false
	}
	return true
}

// DayRange pins a range to the full business day of the given date,
// used by the all-day toggle in block mode.
func (bh BusinessHours) DayRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), bh.OpenHour, 0, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), bh.CloseHour, 0, 0, 0, day.Location())
	return start, end
}
