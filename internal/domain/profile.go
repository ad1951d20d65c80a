package domain

type Sex string

const (
	SexMale   Sex = "Male"
	SexFemale Sex = "Female"
)

func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

type ActivityLevel string

const (
	ActivitySedentary ActivityLevel = "Sedentary"
	ActivityLight     ActivityLevel = "Lightly Active"
	ActivityModerate  ActivityLevel = "Moderately Active"
	ActivityVery      ActivityLevel = "Very Active"
	ActivityAthlete   ActivityLevel = "Extra Active"
)

func (a ActivityLevel) Valid() bool {
	switch a {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityVery, ActivityAthlete:
		return true
	}
	return false
}

// UserProfile is the sole source of truth for metric derivation. It is
// replaced wholesale on every edit, never patched field by field.
type UserProfile struct {
	Age           int           `json:"age"`
	Sex           Sex           `json:"sex"`
	WeightKg      float64       `json:"weight_kg"`
	HeightCm      float64       `json:"height_cm"`
	ActivityLevel ActivityLevel `json:"activity_level"`
}

// HealthMetrics is a derived, read-only snapshot recomputed from the profile.
type HealthMetrics struct {
	BMI           float64   `json:"bmi"`
	BMIStatus     BMIStatus `json:"bmi_status"`
	BMR           int       `json:"bmr"`
	TDEE          int       `json:"tdee"`
	ProteinTarget int       `json:"protein_target"`
	VitaminD      int       `json:"vitamin_d"`
	VitaminB12    float64   `json:"vitamin_b12"`
	Iron          int       `json:"iron"`
}
