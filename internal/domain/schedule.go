package domain

import "strconv"

type BMIStatus string

const (
	BMIUnderweight BMIStatus = "Underweight"
	BMINormal      BMIStatus = "Normal"
	BMIOverweight  BMIStatus = "Overweight"
	BMIObese       BMIStatus = "Obese"
)

type DayStatus string

const (
	DayWorkout DayStatus = "Workout"
	DayRest    DayStatus = "Rest"
)

// Activity is one exercise or recovery action within a day. Duration, target,
// calories, sets, reps and MET are all optional; at least one of duration,
// target or calories is present on generated activities.
type Activity struct {
	Name     string  `json:"name"`
	Duration string  `json:"duration,omitempty"`
	Calories int     `json:"calories,omitempty"`
	Target   string  `json:"target,omitempty"`
	Sets     int     `json:"sets,omitempty"`
	Reps     string  `json:"reps,omitempty"`
	MET      float64 `json:"met,omitempty"`
}

// DisplayLabel picks the label a client should show: duration first, then
// target, then the calorie estimate.
func (a Activity) DisplayLabel() string {
	if a.Duration != "" {
		return a.Duration
	}
	if a.Target != "" {
		return a.Target
	}
	if a.Calories > 0 {
		return strconv.Itoa(a.Calories) + " kcal"
	}
	return ""
}

type DaySchedule struct {
	Day               int        `json:"day"`
	Status            DayStatus  `json:"status"`
	Activities        []Activity `json:"activities"`
	SorenessTriggered bool       `json:"soreness_triggered,omitempty"`
}
