package domain

import (
	"time"
)

// Streak counts consecutive workout days.
type Streak struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// CalculateStreak walks the log backwards. A day counts only if something
// was performed. The current streak stays alive until the end of the day
// after the last workout.
func CalculateStreak(log CompletionLog, today time.Time) Streak {
	var days []time.Time
	for i := len(log) - 1; i >= 0; i-- {
		if len(log[i].List) == 0 {
			continue
		}
		d, err := ParseDate(log[i].Date)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return Streak{}
	}

	ref, _ := ParseDate(FormatDate(today))
	consecutive := func(later, earlier time.Time) bool {
		return later.AddDate(0, 0, -1).Equal(earlier)
	}

	current := 0
	if days[0].Equal(ref) || consecutive(ref, days[0]) {
		current = 1
		for i := 0; i < len(days)-1; i++ {
			if !consecutive(days[i], days[i+1]) {
				break
			}
			current++
		}
	}

	longest, run := 1, 1
	for i := 0; i < len(days)-1; i++ {
		if consecutive(days[i], days[i+1]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return Streak{Current: current, Longest: longest}
}
