package domain

import "time"

type PeriodStats struct {
	StartDate     string         `json:"start_date"`
	EndDate       string         `json:"end_date"`
	DaysInPeriod  int            `json:"days_in_period"`
	DaysPerformed int            `json:"days_performed"`
	WorkoutRate   float64        `json:"workout_rate"`
	TotalSets     int            `json:"total_sets"`
	TotalVolume   int            `json:"total_volume"`
	DailyVolume   []int          `json:"daily_volume"`
	Exercises     []ExerciseStat `json:"exercises"`
	Streak        Streak         `json:"streak"`
}

type ExerciseStat struct {
	Exercise   string `json:"exercise"`
	Days       int    `json:"days"`
	TotalSets  int    `json:"total_sets"`
	TotalReps  int    `json:"total_reps"`
	Volume     int    `json:"volume"`
	BestWeight int    `json:"best_weight"`
}

type StatsInput struct {
	UserID    string
	StartDate time.Time
	EndDate   time.Time
}
