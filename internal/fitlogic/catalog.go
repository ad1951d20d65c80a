package fitlogic

import "github.com/fitlogic/fitlogic-backend/internal/domain"

// DefaultProfile is the profile assumed before the user enters biometrics.
func DefaultProfile() domain.UserProfile {
	return domain.UserProfile{
		Age:           25,
		Sex:           domain.SexMale,
		WeightKg:      70,
		HeightCm:      175,
		ActivityLevel: domain.ActivityModerate,
	}
}

// DefaultRestDays is the rest-day set assumed before the user customizes it,
// leaving a four-day training push.
func DefaultRestDays() []int {
	return []int{5, 7}
}

// DefaultExercises seeds a new account's exercise catalog. IDs are assigned
// at insert time.
func DefaultExercises() []domain.Exercise {
	return []domain.Exercise{
		{Name: "Walking", Category: "LISS", MET: 3.5},
		{Name: "Pushups", Category: "Strength", MET: 8.0},
		{Name: "Squats", Category: "Strength", MET: 5.0},
		{Name: "Running (Moderate)", Category: "Cardio", MET: 10.0},
		{Name: "Swimming", Category: "Cardio", MET: 7.0},
		{Name: "Stretching", Category: "Mobility", MET: 2.3},
		{Name: "Plank", Category: "Core", MET: 3.5},
	}
}
