// Package service holds the stateful glue between the pure fitlogic core and
// persistence: the per-account schedule holder and the outbound mail client.
package service

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
	"github.com/fitlogic/fitlogic-backend/internal/fitlogic"
	"github.com/fitlogic/fitlogic-backend/internal/repository"
)

var ErrInvalidDay = errors.New("day index must be between 1 and 7")

// StateStore is the key/value record store behind profile and rest-day state.
type StateStore interface {
	Save(accountID int64, key string, payload any) error
	Load(accountID int64, key string, out any) (bool, error)
}

// Tracker owns each account's derived weekly schedule. Profile and rest days
// are persisted write-through on every change; the schedule itself is derived
// state, regenerated whenever the BMI classification or the rest-day set
// changes and mutated in place by the soreness rule. The core generator stays
// pure; all mutation lives here.
type Tracker struct {
	mu    sync.Mutex
	store StateStore
	cache map[int64]*accountSchedule
}

type accountSchedule struct {
	bmiStatus domain.BMIStatus
	restDays  []int
	days      []domain.DaySchedule
}

func NewTracker(store StateStore) *Tracker {
	return &Tracker{
		store: store,
		cache: make(map[int64]*accountSchedule),
	}
}

// Profile returns the stored profile, or the default one before first save.
func (t *Tracker) Profile(accountID int64) (domain.UserProfile, error) {
	var p domain.UserProfile
	ok, err := t.store.Load(accountID, repository.RecordProfile, &p)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !ok {
		return fitlogic.DefaultProfile(), nil
	}
	return p, nil
}

// SaveProfile replaces the profile wholesale and returns the fresh metrics.
func (t *Tracker) SaveProfile(accountID int64, p domain.UserProfile) (domain.HealthMetrics, error) {
	if err := t.store.Save(accountID, repository.RecordProfile, p); err != nil {
		return domain.HealthMetrics{}, err
	}
	return fitlogic.HealthMetricsFor(p), nil
}

func (t *Tracker) Metrics(accountID int64) (domain.HealthMetrics, error) {
	p, err := t.Profile(accountID)
	if err != nil {
		return domain.HealthMetrics{}, err
	}
	return fitlogic.HealthMetricsFor(p), nil
}

func (t *Tracker) RestDays(accountID int64) ([]int, error) {
	var days []int
	ok, err := t.store.Load(accountID, repository.RecordRestDays, &days)
	if err != nil {
		return nil, err
	}
	if !ok {
		return fitlogic.DefaultRestDays(), nil
	}
	return days, nil
}

// SetRestDays replaces the rest-day set. Input is normalized: deduplicated,
// sorted, out-of-range indices dropped.
func (t *Tracker) SetRestDays(accountID int64, days []int) ([]int, error) {
	normalized := fitlogic.NormalizeRestDays(days)
	if err := t.store.Save(accountID, repository.RecordRestDays, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

// ToggleRestDay flips a single day's membership in the rest-day set.
func (t *Tracker) ToggleRestDay(accountID int64, day int) ([]int, error) {
	if day < 1 || day > 7 {
		return nil, ErrInvalidDay
	}
	days, err := t.RestDays(accountID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(days, day) {
		days = slices.DeleteFunc(days, func(d int) bool { return d == day })
	} else {
		days = append(days, day)
	}
	return t.SetRestDays(accountID, days)
}

// scheduleInputs loads the two inputs the generator depends on.
func (t *Tracker) scheduleInputs(accountID int64) (domain.BMIStatus, []int, error) {
	p, err := t.Profile(accountID)
	if err != nil {
		return "", nil, err
	}
	days, err := t.RestDays(accountID)
	if err != nil {
		return "", nil, err
	}
	_, status := fitlogic.CalculateBMI(p.WeightKg, p.HeightCm)
	return status, days, nil
}

// currentLocked returns the cached schedule entry, regenerating it when the
// BMI classification or rest-day set has moved since the cached copy was
// built. Soreness adjustments survive as long as neither input changes.
// Callers hold t.mu.
func (t *Tracker) currentLocked(accountID int64, status domain.BMIStatus, restDays []int) *accountSchedule {
	cached, ok := t.cache[accountID]
	if ok && cached.bmiStatus == status && slices.Equal(cached.restDays, restDays) {
		return cached
	}
	cached = &accountSchedule{
		bmiStatus: status,
		restDays:  restDays,
		days:      fitlogic.GenerateRoutine(status, restDays),
	}
	t.cache[accountID] = cached
	return cached
}

// copySchedule deep-copies the schedule so callers never share the cached
// backing arrays with the soreness mutation.
func copySchedule(days []domain.DaySchedule) []domain.DaySchedule {
	out := make([]domain.DaySchedule, len(days))
	for i, d := range days {
		d.Activities = slices.Clone(d.Activities)
		out[i] = d
	}
	return out
}

// Schedule returns a copy of the account's current 7-day schedule.
func (t *Tracker) Schedule(accountID int64) ([]domain.DaySchedule, error) {
	status, days, err := t.scheduleInputs(accountID)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return copySchedule(t.currentLocked(accountID, status, days).days), nil
}

// Day returns one schedule entry, for starting a workout session.
func (t *Tracker) Day(accountID int64, day int) (domain.DaySchedule, error) {
	if day < 1 || day > 7 {
		return domain.DaySchedule{}, ErrInvalidDay
	}
	schedule, err := t.Schedule(accountID)
	if err != nil {
		return domain.DaySchedule{}, err
	}
	for _, d := range schedule {
		if d.Day == day {
			return d, nil
		}
	}
	return domain.DaySchedule{}, fmt.Errorf("day %d missing from schedule", day)
}

// LogSoreness converts the next scheduled workout day into an active recovery
// day. Returns the affected day index and whether the schedule changed.
func (t *Tracker) LogSoreness(accountID int64, today int) (int, bool, error) {
	if today < 1 || today > 7 {
		return 0, false, ErrInvalidDay
	}
	status, days, err := t.scheduleInputs(accountID)
	if err != nil {
		return 0, false, err
	}

	// Resolve the cached entry and mutate it under the same lock, so the
	// adjustment can never land on a copy that regeneration has discarded.
	t.mu.Lock()
	defer t.mu.Unlock()
	entry := t.currentLocked(accountID, status, days)
	day, applied := fitlogic.ApplySoreness(entry.days, today)
	return day, applied, nil
}
