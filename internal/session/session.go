// Package session drives a user through one day's workout: sets, timed rest
// intervals and completion statistics.
package session

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

type State string

const (
	StateExercising State = "exercising"
	StateResting    State = "resting"
	StateCompleted  State = "completed"
)

// RestSeconds is the fixed countdown between sets and exercises.
const RestSeconds = 45

// defaultMET stands in for activities that carry no MET value when averaging
// session intensity.
const defaultMET = 5.0

var (
	ErrNotExercising = errors.New("session: not in an exercising state")
	ErrNotResting    = errors.New("session: not in a resting state")
	ErrNotCompleted  = errors.New("session: workout not completed")
	ErrEmptyDay      = errors.New("session: day has no activities")
)

// Clock abstracts wall-clock reads so session timing is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Session is the workout-session state machine. All transitions except the
// rest countdown are user-driven; the countdown is advanced by Tick, once per
// elapsed second, by whoever owns the timer.
type Session struct {
	mu sync.Mutex

	day      domain.DaySchedule
	weightKg float64
	clock    Clock

	startedAt   time.Time
	state       State
	activityIdx int
	setNum      int
	restLeft    int
}

func New(day domain.DaySchedule, weightKg float64) (*Session, error) {
	return NewWithClock(day, weightKg, systemClock{})
}

func NewWithClock(day domain.DaySchedule, weightKg float64, clock Clock) (*Session, error) {
	if len(day.Activities) == 0 {
		return nil, ErrEmptyDay
	}
	return &Session{
		day:       day,
		weightKg:  weightKg,
		clock:     clock,
		startedAt: clock.Now(),
		state:     StateExercising,
		setNum:    1,
	}, nil
}

// Snapshot is a point-in-time view of the session for clients.
type Snapshot struct {
	State           State  `json:"state"`
	Day             int    `json:"day"`
	ActivityIndex   int    `json:"activity_index"`
	ActivityCount   int    `json:"activity_count"`
	ActivityName    string `json:"activity_name"`
	ActivityLabel   string `json:"activity_label,omitempty"`
	CurrentSet      int    `json:"current_set"`
	TotalSets       int    `json:"total_sets"`
	RestSecondsLeft int    `json:"rest_seconds_left"`
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.day.Activities[s.activityIdx]
	label := a.Reps
	if label == "" {
		label = a.DisplayLabel()
	}
	return Snapshot{
		State:           s.state,
		Day:             s.day.Day,
		ActivityIndex:   s.activityIdx,
		ActivityCount:   len(s.day.Activities),
		ActivityName:    a.Name,
		ActivityLabel:   label,
		CurrentSet:      s.setNum,
		TotalSets:       totalSets(a),
		RestSecondsLeft: s.restLeft,
	}
}

// Done marks the current set finished and starts the rest countdown.
func (s *Session) Done() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateExercising {
		return ErrNotExercising
	}
	s.state = StateResting
	s.restLeft = RestSeconds
	return nil
}

// Tick advances the rest countdown by one second. Outside the resting state
// it is a no-op. When the countdown reaches zero the session advances to the
// next set, the next activity, or completion.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateResting {
		return
	}
	if s.restLeft > 0 {
		s.restLeft--
	}
	if s.restLeft == 0 {
		s.advanceLocked()
	}
}

// SkipRest forces the countdown to zero and advances immediately, yielding
// the same post-transition state as a natural expiry.
func (s *Session) SkipRest() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateResting {
		return ErrNotResting
	}
	s.restLeft = 0
	s.advanceLocked()
	return nil
}

func (s *Session) advanceLocked() {
	current := s.day.Activities[s.activityIdx]
	if s.setNum < totalSets(current) {
		s.state = StateExercising
		s.setNum++
		return
	}
	if s.activityIdx < len(s.day.Activities)-1 {
		s.state = StateExercising
		s.activityIdx++
		s.setNum = 1
		return
	}
	s.state = StateCompleted
}

// State returns the current machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Resting reports whether the rest countdown is live.
func (s *Session) Resting() bool {
	return s.State() == StateResting
}

// Summary builds the completed-workout record. Duration is elapsed wall-clock
// time rounded to whole minutes with a floor of 1; calories use the mean MET
// across the day's activities, unweighted by sets or duration.
func (s *Session) Summary() (domain.WorkoutLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return domain.WorkoutLog{}, ErrNotCompleted
	}

	now := s.clock.Now()
	minutes := int(math.Round(now.Sub(s.startedAt).Minutes()))
	if minutes < 1 {
		minutes = 1
	}

	var metSum float64
	names := make([]string, 0, len(s.day.Activities))
	for _, a := range s.day.Activities {
		met := a.MET
		if met == 0 {
			met = defaultMET
		}
		metSum += met
		names = append(names, a.Name)
	}
	avgMET := metSum / float64(len(s.day.Activities))

	return domain.WorkoutLog{
		ID:                 uuid.NewString(),
		Date:               now,
		DayNumber:          s.day.Day,
		CaloriesBurned:     int(math.Round(avgMET * s.weightKg * float64(minutes) / 60)),
		DurationMinutes:    minutes,
		ExercisesCompleted: names,
	}, nil
}

func totalSets(a domain.Activity) int {
	if a.Sets > 0 {
		return a.Sets
	}
	return 1
}
