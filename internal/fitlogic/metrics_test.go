package fitlogic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

func TestCalculateBMI_Bands(t *testing.T) {
	// Height of 100cm makes BMI numerically equal to weight, so the band
	// boundaries can be probed directly.
	tests := []struct {
		name   string
		weight float64
		want   domain.BMIStatus
	}{
		{"just under 18.5", 18.49, domain.BMIUnderweight},
		{"exactly 18.5", 18.5, domain.BMINormal},
		{"just under 25", 24.99, domain.BMINormal},
		{"exactly 25", 25.0, domain.BMIOverweight},
		{"just under 30", 29.99, domain.BMIOverweight},
		{"exactly 30", 30.0, domain.BMIObese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, status := CalculateBMI(tt.weight, 100)
			assert.Equal(t, tt.want, status)
		})
	}
}

func TestCalculateBMI_Rounding(t *testing.T) {
	bmi, status := CalculateBMI(70, 175)
	assert.Equal(t, 22.9, bmi)
	assert.Equal(t, domain.BMINormal, status)
}

func TestCalculateMifflinStJeor(t *testing.T) {
	male := domain.UserProfile{Age: 25, Sex: domain.SexMale, WeightKg: 70, HeightCm: 175}
	assert.Equal(t, 1673.75, CalculateMifflinStJeor(male))

	female := domain.UserProfile{Age: 30, Sex: domain.SexFemale, WeightKg: 60, HeightCm: 165}
	assert.Equal(t, 1320.25, CalculateMifflinStJeor(female))
}

func TestHealthMetricsFor(t *testing.T) {
	p := domain.UserProfile{
		Age:           25,
		Sex:           domain.SexMale,
		WeightKg:      70,
		HeightCm:      175,
		ActivityLevel: domain.ActivityModerate,
	}

	m := HealthMetricsFor(p)

	require.Equal(t, domain.BMINormal, m.BMIStatus)
	assert.Equal(t, 22.9, m.BMI)
	assert.Equal(t, 1674, m.BMR)
	// TDEE rounds the unrounded BMR product: 1673.75 * 1.55 = 2594.3125.
	assert.Equal(t, 2594, m.TDEE)
	assert.Equal(t, 126, m.ProteinTarget)
	assert.Equal(t, 700, m.VitaminD)
	assert.Equal(t, 2.4, m.VitaminB12)
	assert.Equal(t, 8, m.Iron)
}

func TestHealthMetricsFor_FemaleIron(t *testing.T) {
	p := domain.UserProfile{
		Age:           30,
		Sex:           domain.SexFemale,
		WeightKg:      60,
		HeightCm:      165,
		ActivityLevel: domain.ActivitySedentary,
	}

	m := HealthMetricsFor(p)

	assert.Equal(t, 18, m.Iron)
	assert.Equal(t, 1320, m.BMR)
	assert.Equal(t, 1584, m.TDEE) // 1320.25 * 1.2 = 1584.3
	assert.Equal(t, 108, m.ProteinTarget)
}

func TestCaloriesBurned(t *testing.T) {
	assert.Equal(t, 280, CaloriesBurned(8.0, 70, 30))
	assert.Equal(t, 123, CaloriesBurned(3.5, 70, 30)) // 122.5 rounds up
	assert.Equal(t, 0, CaloriesBurned(3.5, 70, 0))
}
