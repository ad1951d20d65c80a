package fitlogic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

// exerciseDef describes one slot of a fixed muscle-group block. Secondary
// slots run one set fewer than the dynamic count, floored at 2.
type exerciseDef struct {
	name      string
	reps      string
	met       float64
	secondary bool
}

// workoutBlocks are the fixed day 1-4 muscle-group blocks, keyed by day index.
var workoutBlocks = map[int][]exerciseDef{
	1: { // chest and triceps
		{name: "Bench Press", reps: "8-10 reps", met: 8.0},
		{name: "Incline Dumbbell Press", reps: "10-12 reps", met: 6.0},
		{name: "Chest Flyes", reps: "12-15 reps", met: 5.0, secondary: true},
		{name: "Tricep Dips", reps: "8-10 reps", met: 6.0},
		{name: "Tricep Pushdowns", reps: "10-12 reps", met: 4.0, secondary: true},
		{name: "Skull Crushers", reps: "10-12 reps", met: 4.0, secondary: true},
	},
	2: { // back and biceps
		{name: "Deadlifts", reps: "6-8 reps", met: 9.0},
		{name: "Pull-Ups/Assisted Pull-Ups", reps: "8-10 reps", met: 8.0},
		{name: "Bent Over Rows", reps: "10-12 reps", met: 6.0},
		{name: "Lat Pulldowns", reps: "10-12 reps", met: 5.0, secondary: true},
		{name: "Barbell Curls", reps: "8-10 reps", met: 4.0},
		{name: "Hammer Curls", reps: "10-12 reps", met: 3.5, secondary: true},
	},
	3: { // legs
		{name: "Squats", reps: "8-10 reps", met: 8.0},
		{name: "Lunges", reps: "10-12 reps per leg", met: 6.0},
		{name: "Leg Press", reps: "10-12 reps", met: 5.0, secondary: true},
		{name: "Leg Curls", reps: "10-12 reps", met: 4.0, secondary: true},
		{name: "Calf Raises", reps: "12-15 reps", met: 3.5},
		{name: "Seated Calf Raises", reps: "12-15 reps", met: 3.5, secondary: true},
	},
	4: { // shoulders and abs
		{name: "Overhead Press", reps: "8-10 reps", met: 7.0},
		{name: "Lateral Raises", reps: "10-12 reps", met: 4.0},
		{name: "Front Raises", reps: "10-12 reps", met: 4.0, secondary: true},
		{name: "Face Pulls", reps: "10-12 reps", met: 3.5, secondary: true},
		{name: "Planks", reps: "30-60 seconds", met: 3.5},
		{name: "Russian Twists", reps: "15-20 reps per side", met: 3.5, secondary: true},
	},
}

// setsFor scales workout volume by BMI classification: lower volume for
// underweight users, higher for overweight and obese.
func setsFor(status domain.BMIStatus) int {
	switch status {
	case domain.BMIOverweight, domain.BMIObese:
		return 4
	case domain.BMIUnderweight:
		return 2
	default:
		return 3
	}
}

func restBlock() []domain.Activity {
	return []domain.Activity{
		{Name: "Light Stretching", Duration: "10 min", Calories: 40, MET: 2.3},
		{Name: "Active Mobility", Duration: "15 min", Calories: 60, MET: 3.0},
	}
}

func recoveryBlock() []domain.Activity {
	return []domain.Activity{
		{Name: "Light Mobility Flow", Duration: "15 min", Calories: 50},
		{Name: "Foam Rolling", Duration: "10 min", Calories: 30},
	}
}

func fillerBlock(status domain.BMIStatus, sets int) []domain.Activity {
	switch status {
	case domain.BMIUnderweight:
		return []domain.Activity{{
			Name:     "Bodyweight Squats",
			Duration: fmt.Sprintf("%d sets x 12", sets),
			Sets:     sets,
			MET:      5.0,
		}}
	case domain.BMINormal:
		return []domain.Activity{{
			Name:     "Compound Lifting",
			Duration: "45 min",
			Sets:     sets,
			MET:      6.0,
		}}
	default:
		return []domain.Activity{{
			Name:     "LISS: Fast Walking",
			Duration: "45 min",
			MET:      3.5,
		}}
	}
}

func buildBlock(defs []exerciseDef, sets int) []domain.Activity {
	activities := make([]domain.Activity, 0, len(defs))
	for _, def := range defs {
		n := sets
		if def.secondary {
			n = max(2, sets-1)
		}
		activities = append(activities, domain.Activity{
			Name:     def.name,
			Sets:     n,
			Reps:     def.reps,
			Duration: fmt.Sprintf("%d sets x %s", n, shortReps(def.reps)),
			MET:      def.met,
		})
	}
	return activities
}

// shortReps trims a reps label like "8-10 reps" down to its range for the
// compact duration label. Time-based ranges keep a unit: "30-60 seconds"
// becomes "30-60s".
func shortReps(reps string) string {
	head, rest, ok := strings.Cut(reps, " ")
	if !ok {
		return reps
	}
	if rest == "seconds" {
		return head + "s"
	}
	return head
}

// GenerateRoutine assembles the fixed 7-day schedule for a BMI classification
// and a set of designated rest days. Always returns exactly 7 entries in day
// order; a day is Rest if and only if its index is in restDays. Deterministic.
func GenerateRoutine(status domain.BMIStatus, restDays []int) []domain.DaySchedule {
	rest := make(map[int]bool, len(restDays))
	for _, d := range restDays {
		rest[d] = true
	}
	sets := setsFor(status)

	routine := make([]domain.DaySchedule, 0, 7)
	for day := 1; day <= 7; day++ {
		if rest[day] {
			routine = append(routine, domain.DaySchedule{
				Day:        day,
				Status:     domain.DayRest,
				Activities: restBlock(),
			})
			continue
		}

		var activities []domain.Activity
		if block, ok := workoutBlocks[day]; ok {
			activities = buildBlock(block, sets)
		} else {
			activities = fillerBlock(status, sets)
		}
		routine = append(routine, domain.DaySchedule{
			Day:        day,
			Status:     domain.DayWorkout,
			Activities: activities,
		})
	}
	return routine
}

// NextTrainingDay returns the day index following today in the 1-7 cycle.
func NextTrainingDay(today int) int {
	return today%7 + 1
}

// ApplySoreness converts the workout day following today into an active
// recovery day, in place. Returns the affected day index and whether anything
// changed; rest days and already-adjusted days are left alone.
func ApplySoreness(schedule []domain.DaySchedule, today int) (int, bool) {
	next := NextTrainingDay(today)
	for i := range schedule {
		if schedule[i].Day != next {
			continue
		}
		if schedule[i].Status != domain.DayWorkout {
			return next, false
		}
		schedule[i].Status = domain.DayRest
		schedule[i].SorenessTriggered = true
		schedule[i].Activities = recoveryBlock()
		return next, true
	}
	return next, false
}

// NormalizeRestDays sorts, deduplicates and bounds-checks a rest-day set.
// Out-of-range indices are dropped.
func NormalizeRestDays(days []int) []int {
	seen := make(map[int]bool)
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}
