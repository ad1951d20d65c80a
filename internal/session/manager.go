package session

import (
	"errors"
	"sync"
	"time"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
)

var (
	ErrSessionActive = errors.New("session: a workout session is already active")
	ErrNoSession     = errors.New("session: no active workout session")
)

// Manager owns at most one live session per account and the one-second timer
// that drives rest countdowns. The timer goroutine is torn down with its
// session, so abandoning or completing a workout never leaves an orphaned
// ticker.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*runningSession
	clock    Clock
}

type runningSession struct {
	sess *Session
	stop chan struct{}
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[int64]*runningSession),
		clock:    systemClock{},
	}
}

// NewManagerWithClock is for tests that need deterministic session timing.
func NewManagerWithClock(clock Clock) *Manager {
	m := NewManager()
	m.clock = clock
	return m
}

// Start creates a session for the account, rejecting a second concurrent one.
func (m *Manager) Start(accountID int64, day domain.DaySchedule, weightKg float64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[accountID]; exists {
		return nil, ErrSessionActive
	}

	sess, err := NewWithClock(day, weightKg, m.clock)
	if err != nil {
		return nil, err
	}

	r := &runningSession{sess: sess, stop: make(chan struct{})}
	m.sessions[accountID] = r
	go r.run()
	return sess, nil
}

func (r *runningSession) run() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.sess.Tick()
		}
	}
}

// Get returns the account's live session, if any.
func (m *Manager) Get(accountID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.sessions[accountID]
	if !ok {
		return nil, false
	}
	return r.sess, true
}

// Abandon discards the account's session without emitting a log.
func (m *Manager) Abandon(accountID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.sessions[accountID]
	if !ok {
		return ErrNoSession
	}
	close(r.stop)
	delete(m.sessions, accountID)
	return nil
}

// Complete returns the session's workout record and tears the session down.
// The session must have reached the completed state. When persist is non-nil
// it runs before teardown; on a persist error the session is kept, so the
// record is not lost to a failed insert.
func (m *Manager) Complete(accountID int64, persist func(domain.WorkoutLog) error) (domain.WorkoutLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.sessions[accountID]
	if !ok {
		return domain.WorkoutLog{}, ErrNoSession
	}

	log, err := r.sess.Summary()
	if err != nil {
		return domain.WorkoutLog{}, err
	}
	if persist != nil {
		if err := persist(log); err != nil {
			return domain.WorkoutLog{}, err
		}
	}

	close(r.stop)
	delete(m.sessions, accountID)
	return log, nil
}
