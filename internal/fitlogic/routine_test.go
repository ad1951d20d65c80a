package fitlogic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

func TestGenerateRoutine_NormalWithDefaultRestDays(t *testing.T) {
	routine := GenerateRoutine(domain.BMINormal, []int{5, 7})

	require.Len(t, routine, 7)
	for i, day := range routine {
		assert.Equal(t, i+1, day.Day)
	}

	for _, day := range []int{1, 2, 3, 4} {
		entry := routine[day-1]
		assert.Equal(t, domain.DayWorkout, entry.Status, "day %d", day)
		assert.Len(t, entry.Activities, 6, "day %d", day)
	}

	for _, day := range []int{5, 7} {
		entry := routine[day-1]
		assert.Equal(t, domain.DayRest, entry.Status, "day %d", day)
		require.Len(t, entry.Activities, 2, "day %d", day)
		assert.Equal(t, "Light Stretching", entry.Activities[0].Name)
		assert.Equal(t, "Active Mobility", entry.Activities[1].Name)
	}

	day6 := routine[5]
	assert.Equal(t, domain.DayWorkout, day6.Status)
	require.Len(t, day6.Activities, 1)
	assert.Equal(t, "Compound Lifting", day6.Activities[0].Name)
}

func TestGenerateRoutine_SetScaling(t *testing.T) {
	tests := []struct {
		status    domain.BMIStatus
		main      int
		secondary int
	}{
		{domain.BMINormal, 3, 2},
		{domain.BMIOverweight, 4, 3},
		{domain.BMIObese, 4, 3},
		{domain.BMIUnderweight, 2, 2},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			routine := GenerateRoutine(tt.status, nil)
			day1 := routine[0]
			require.Len(t, day1.Activities, 6)

			bench := day1.Activities[0] // main slot
			flyes := day1.Activities[2] // secondary slot
			assert.Equal(t, tt.main, bench.Sets)
			assert.Equal(t, tt.secondary, flyes.Sets)
			assert.Equal(t, "8-10 reps", bench.Reps)
			assert.Equal(t, 8.0, bench.MET)
		})
	}
}

func TestGenerateRoutine_Fillers(t *testing.T) {
	underweight := GenerateRoutine(domain.BMIUnderweight, nil)
	require.Len(t, underweight[4].Activities, 1)
	assert.Equal(t, "Bodyweight Squats", underweight[4].Activities[0].Name)
	assert.Equal(t, "2 sets x 12", underweight[4].Activities[0].Duration)

	obese := GenerateRoutine(domain.BMIObese, nil)
	require.Len(t, obese[6].Activities, 1)
	walk := obese[6].Activities[0]
	assert.Equal(t, "LISS: Fast Walking", walk.Name)
	assert.Equal(t, "45 min", walk.Duration)
	assert.Zero(t, walk.Sets)
}

func TestGenerateRoutine_DurationLabels(t *testing.T) {
	schedule := GenerateRoutine(domain.BMINormal, nil)
	day4 := schedule[3].Activities

	require.Len(t, day4, 6)
	assert.Equal(t, "3 sets x 8-10", day4[0].Duration)
	assert.Equal(t, "2 sets x 10-12", day4[2].Duration)

	// Planks are time-based; the label keeps the seconds unit.
	assert.Equal(t, "Planks", day4[4].Name)
	assert.Equal(t, "3 sets x 30-60s", day4[4].Duration)

	// "per leg"/"per side" qualifiers are dropped from the label.
	assert.Equal(t, "2 sets x 15-20", day4[5].Duration)
}

func TestGenerateRoutine_Deterministic(t *testing.T) {
	a := GenerateRoutine(domain.BMINormal, []int{2, 5, 7})
	b := GenerateRoutine(domain.BMINormal, []int{2, 5, 7})
	assert.Equal(t, a, b)
}

func TestGenerateRoutine_AllRestDays(t *testing.T) {
	routine := GenerateRoutine(domain.BMINormal, []int{1, 2, 3, 4, 5, 6, 7})
	for _, day := range routine {
		assert.Equal(t, domain.DayRest, day.Status)
	}
}

func TestApplySoreness(t *testing.T) {
	schedule := GenerateRoutine(domain.BMINormal, []int{5, 7})

	day, applied := ApplySoreness(schedule, 3)
	require.True(t, applied)
	assert.Equal(t, 4, day)

	adjusted := schedule[3]
	assert.Equal(t, domain.DayRest, adjusted.Status)
	assert.True(t, adjusted.SorenessTriggered)
	require.Len(t, adjusted.Activities, 2)
	assert.Equal(t, "Light Mobility Flow", adjusted.Activities[0].Name)
	assert.Equal(t, "Foam Rolling", adjusted.Activities[1].Name)

	// Already converted: nothing further happens.
	_, applied = ApplySoreness(schedule, 3)
	assert.False(t, applied)
}

func TestApplySoreness_NextDayIsRest(t *testing.T) {
	schedule := GenerateRoutine(domain.BMINormal, []int{5, 7})

	day, applied := ApplySoreness(schedule, 4)
	assert.Equal(t, 5, day)
	assert.False(t, applied)
	assert.False(t, schedule[4].SorenessTriggered)
}

func TestApplySoreness_WrapsWeek(t *testing.T) {
	schedule := GenerateRoutine(domain.BMINormal, nil)

	day, applied := ApplySoreness(schedule, 7)
	assert.Equal(t, 1, day)
	assert.True(t, applied)
}

func TestNormalizeRestDays(t *testing.T) {
	assert.Equal(t, []int{5, 7}, NormalizeRestDays([]int{7, 5, 5}))
	assert.Equal(t, []int{1}, NormalizeRestDays([]int{0, 1, 8, -3}))
	assert.Empty(t, NormalizeRestDays(nil))
}
