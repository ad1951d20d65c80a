// Package fitlogic holds the pure computational core: health-metric formulas
// and the weekly routine generator. Functions here are deterministic and free
// of side effects; input validation is the caller's responsibility.
package fitlogic

import (
	"math"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

// activityMultipliers maps each activity level to its TDEE multiplier.
var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary: 1.2,
	domain.ActivityLight:     1.375,
	domain.ActivityModerate:  1.55,
	domain.ActivityVery:      1.725,
	domain.ActivityAthlete:   1.9,
}

// Fixed daily micronutrient baselines.
const (
	vitaminDIU    = 700
	vitaminB12Mcg = 2.4
	ironMaleMg    = 8
	ironFemaleMg  = 18
)

// CalculateBMI returns the BMI rounded to one decimal and its classification.
// Bands are half-open with inclusive lower bounds: <18.5 Underweight,
// [18.5,25) Normal, [25,30) Overweight, >=30 Obese. Behavior on non-positive
// inputs is undefined; the HTTP boundary rejects them.
func CalculateBMI(weightKg, heightCm float64) (float64, domain.BMIStatus) {
	heightM := heightCm / 100
	bmi := weightKg / (heightM * heightM)

	var status domain.BMIStatus
	switch {
	case bmi < 18.5:
		status = domain.BMIUnderweight
	case bmi < 25:
		status = domain.BMINormal
	case bmi < 30:
		status = domain.BMIOverweight
	default:
		status = domain.BMIObese
	}

	return math.Round(bmi*10) / 10, status
}

// CalculateMifflinStJeor returns the unrounded basal metabolic rate in
// kcal/day via the Mifflin-St Jeor equation.
func CalculateMifflinStJeor(p domain.UserProfile) float64 {
	bmr := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if p.Sex == domain.SexMale {
		return bmr + 5
	}
	return bmr - 161
}

// HealthMetricsFor derives the full metric snapshot from a profile. TDEE is
// rounded from the unrounded BMR product so the two roundings do not compound.
func HealthMetricsFor(p domain.UserProfile) domain.HealthMetrics {
	bmi, status := CalculateBMI(p.WeightKg, p.HeightCm)
	bmr := CalculateMifflinStJeor(p)
	tdee := bmr * activityMultipliers[p.ActivityLevel]

	iron := ironFemaleMg
	if p.Sex == domain.SexMale {
		iron = ironMaleMg
	}

	return domain.HealthMetrics{
		BMI:           bmi,
		BMIStatus:     status,
		BMR:           int(math.Round(bmr)),
		TDEE:          int(math.Round(tdee)),
		ProteinTarget: int(math.Round(1.8 * p.WeightKg)),
		VitaminD:      vitaminDIU,
		VitaminB12:    vitaminB12Mcg,
		Iron:          iron,
	}
}

// CaloriesBurned estimates energy expenditure in kcal for an activity at the
// given MET intensity performed for durationMinutes by a person of weightKg.
func CaloriesBurned(met, weightKg, durationMinutes float64) int {
	return int(math.Round(met * weightKg * durationMinutes / 60))
}
