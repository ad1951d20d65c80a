package domain

import "time"

// Exercise is a user-extensible catalog entry used for ad-hoc calorie
// estimation. It is independent of the weekly schedule.
type Exercise struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	MET      float64 `json:"met"`
}

// WorkoutLog records one completed session. Immutable once created.
type WorkoutLog struct {
	ID                 string    `json:"id"`
	Date               time.Time `json:"date"`
	DayNumber          int       `json:"day_number"`
	CaloriesBurned     int       `json:"calories_burned"`
	DurationMinutes    int       `json:"duration_minutes"`
	ExercisesCompleted []string  `json:"exercises_completed"`
}
