package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
	"github.com/fitlogic/fitlogic-backend/internal/service"
	"github.com/fitlogic/fitlogic-backend/internal/session"
)

type memLogStore struct {
	logs      map[int64][]domain.WorkoutLog
	createErr error
}

func newMemLogStore() *memLogStore {
	return &memLogStore{logs: make(map[int64][]domain.WorkoutLog)}
}

func (s *memLogStore) Create(accountID int64, log *domain.WorkoutLog) error {
	if s.createErr != nil {
		return s.createErr
	}
	// Newest first, matching the repository's read order.
	s.logs[accountID] = append([]domain.WorkoutLog{*log}, s.logs[accountID]...)
	return nil
}

func (s *memLogStore) ListByAccount(accountID int64) ([]domain.WorkoutLog, error) {
	return s.logs[accountID], nil
}

func (s *memLogStore) Delete(accountID int64, id string) (bool, error) {
	for i, log := range s.logs[accountID] {
		if log.ID == id {
			s.logs[accountID] = append(s.logs[accountID][:i], s.logs[accountID][i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func newWorkoutHandler() (*WorkoutHandler, *memLogStore) {
	logs := newMemLogStore()
	tracker := service.NewTracker(newMemStore())
	return NewWorkoutHandler(session.NewManager(), tracker, logs), logs
}

func postSession(t *testing.T, action func(http.ResponseWriter, *http.Request), wantStatus int) session.Snapshot {
	t.Helper()
	w := httptest.NewRecorder()
	action(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", ""))
	require.Equal(t, wantStatus, w.Code, w.Body.String())

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	return snap
}

func TestWorkoutHandler_FullSessionFlow(t *testing.T) {
	h, logs := newWorkoutHandler()

	// Day 6 for the default Normal profile is Compound Lifting, 3 sets.
	w := httptest.NewRecorder()
	h.StartSession(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", `{"day":6}`))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, session.StateExercising, snap.State)
	assert.Equal(t, "Compound Lifting", snap.ActivityName)
	assert.Equal(t, 3, snap.TotalSets)

	for set := 1; set <= 3; set++ {
		snap = postSession(t, h.Done, http.StatusOK)
		assert.Equal(t, session.StateResting, snap.State)
		snap = postSession(t, h.SkipRest, http.StatusOK)
	}
	assert.Equal(t, session.StateCompleted, snap.State)

	w = httptest.NewRecorder()
	h.Complete(w, authedRequest(http.MethodPost, "/api/v1/workouts/session/complete", ""))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var log domain.WorkoutLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &log))
	assert.Equal(t, 6, log.DayNumber)
	assert.Equal(t, 1, log.DurationMinutes)
	assert.Equal(t, []string{"Compound Lifting"}, log.ExercisesCompleted)
	require.Len(t, logs.logs[1], 1)

	// Session is gone after completion.
	w = httptest.NewRecorder()
	h.GetSession(w, authedRequest(http.MethodGet, "/api/v1/workouts/session", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkoutHandler_StartRejectsSecondSession(t *testing.T) {
	h, _ := newWorkoutHandler()

	w := httptest.NewRecorder()
	h.StartSession(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", `{"day":1}`))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.StartSession(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", `{"day":2}`))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWorkoutHandler_StartValidatesDay(t *testing.T) {
	h, _ := newWorkoutHandler()

	w := httptest.NewRecorder()
	h.StartSession(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", `{"day":9}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkoutHandler_AbandonEmitsNoLog(t *testing.T) {
	h, logs := newWorkoutHandler()

	w := httptest.NewRecorder()
	h.StartSession(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", `{"day":1}`))
	require.Equal(t, http.StatusCreated, w.Code)

	postSession(t, h.Done, http.StatusOK)

	w = httptest.NewRecorder()
	h.Abandon(w, authedRequest(http.MethodDelete, "/api/v1/workouts/session", ""))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, logs.logs[1])
}

func TestWorkoutHandler_CompleteRequiresCompletedState(t *testing.T) {
	h, _ := newWorkoutHandler()

	w := httptest.NewRecorder()
	h.Complete(w, authedRequest(http.MethodPost, "/api/v1/workouts/session/complete", ""))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.StartSession(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", `{"day":1}`))
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	h.Complete(w, authedRequest(http.MethodPost, "/api/v1/workouts/session/complete", ""))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWorkoutHandler_CompleteRetriesAfterStoreFailure(t *testing.T) {
	h, logs := newWorkoutHandler()

	w := httptest.NewRecorder()
	h.StartSession(w, authedRequest(http.MethodPost, "/api/v1/workouts/session", `{"day":6}`))
	require.Equal(t, http.StatusCreated, w.Code)

	snap := postSession(t, h.Done, http.StatusOK)
	require.Equal(t, session.StateResting, snap.State)
	snap = postSession(t, h.SkipRest, http.StatusOK)
	for snap.State != session.StateCompleted {
		snap = postSession(t, h.Done, http.StatusOK)
		snap = postSession(t, h.SkipRest, http.StatusOK)
	}

	logs.createErr = errors.New("db down")
	w = httptest.NewRecorder()
	h.Complete(w, authedRequest(http.MethodPost, "/api/v1/workouts/session/complete", ""))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, logs.logs[1])

	// The session survives a failed insert, so completion can be retried.
	w = httptest.NewRecorder()
	h.GetSession(w, authedRequest(http.MethodGet, "/api/v1/workouts/session", ""))
	require.Equal(t, http.StatusOK, w.Code)

	logs.createErr = nil
	w = httptest.NewRecorder()
	h.Complete(w, authedRequest(http.MethodPost, "/api/v1/workouts/session/complete", ""))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, logs.logs[1], 1)
}

func TestWorkoutHandler_History(t *testing.T) {
	h, logs := newWorkoutHandler()

	w := httptest.NewRecorder()
	h.History(w, authedRequest(http.MethodGet, "/api/v1/workouts/history", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	logs.Create(1, &domain.WorkoutLog{ID: "abc", DayNumber: 2, ExercisesCompleted: []string{"Deadlifts"}})

	w = httptest.NewRecorder()
	h.History(w, authedRequest(http.MethodGet, "/api/v1/workouts/history", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var list []domain.WorkoutLog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "abc", list[0].ID)
}
