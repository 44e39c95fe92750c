package timedataset

import (
	"time"
)

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}
	return t[len(t)-1]
}

// IsDaily reports whether every point falls exactly one calendar day after the previous one.
// Calendar days are compared so a daylight saving shift is still a single day.
func (t TimeSlice) IsDaily() bool {
	for i := 1; i < len(t); i++ {
		if !t[i-1].AddDate(0, 0, 1).Equal(t[i]) {
			return false
		}
	}
	return true
}

// DailyRange returns n consecutive calendar days beginning with start
func DailyRange(start time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, start.AddDate(0, 0, i))
	}
	return t
}
