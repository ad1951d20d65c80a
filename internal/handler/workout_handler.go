package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
	"github.com/fitlogic/fitlogic-backend/internal/service"
	"github.com/fitlogic/fitlogic-backend/internal/session"
)

// WorkoutLogStore is the history persistence the handler needs.
type WorkoutLogStore interface {
	Create(accountID int64, log *domain.WorkoutLog) error
	ListByAccount(accountID int64) ([]domain.WorkoutLog, error)
	Delete(accountID int64, id string) (bool, error)
}

type WorkoutHandler struct {
	manager *session.Manager
	tracker *service.Tracker
	logs    WorkoutLogStore
}

func NewWorkoutHandler(manager *session.Manager, tracker *service.Tracker, logs WorkoutLogStore) *WorkoutHandler {
	return &WorkoutHandler{manager: manager, tracker: tracker, logs: logs}
}

// StartSession begins a workout for one schedule day. Only one session may be
// live per account.
func (h *WorkoutHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Day int `json:"day"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := accountID(r)
	day, err := h.tracker.Day(id, req.Day)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDay) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load schedule day")
		return
	}

	profile, err := h.tracker.Profile(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	sess, err := h.manager.Start(id, day, profile.WeightKg)
	if err != nil {
		if errors.Is(err, session.ErrSessionActive) {
			writeError(w, http.StatusConflict, "a workout session is already active")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	writeJSON(w, http.StatusCreated, sess.Snapshot())
}

func (h *WorkoutHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.manager.Get(accountID(r))
	if !ok {
		writeError(w, http.StatusNotFound, "no active workout session")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// Done marks the current set finished and starts the 45 second rest countdown.
func (h *WorkoutHandler) Done(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.manager.Get(accountID(r))
	if !ok {
		writeError(w, http.StatusNotFound, "no active workout session")
		return
	}
	if err := sess.Done(); err != nil {
		writeError(w, http.StatusConflict, "session is not in an exercising state")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// SkipRest cuts the rest countdown short, with the same post-transition state
// as a natural expiry.
func (h *WorkoutHandler) SkipRest(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.manager.Get(accountID(r))
	if !ok {
		writeError(w, http.StatusNotFound, "no active workout session")
		return
	}
	if err := sess.SkipRest(); err != nil {
		writeError(w, http.StatusConflict, "session is not resting")
		return
	}
	writeJSON(w, http.StatusOK, sess.Snapshot())
}

// Complete appends the finished session's record to history, then tears the
// session down. A failed insert keeps the session alive for a retry.
func (h *WorkoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)
	log, err := h.manager.Complete(id, func(l domain.WorkoutLog) error {
		return h.logs.Create(id, &l)
	})
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNoSession):
			writeError(w, http.StatusNotFound, "no active workout session")
		case errors.Is(err, session.ErrNotCompleted):
			writeError(w, http.StatusConflict, "workout is not completed yet")
		default:
			writeError(w, http.StatusInternalServerError, "failed to save workout log")
		}
		return
	}

	writeJSON(w, http.StatusCreated, log)
}

// Abandon discards the live session. No log is emitted.
func (h *WorkoutHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Abandon(accountID(r)); err != nil {
		writeError(w, http.StatusNotFound, "no active workout session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkoutHandler) History(w http.ResponseWriter, r *http.Request) {
	logs, err := h.logs.ListByAccount(accountID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list workout history")
		return
	}
	if logs == nil {
		logs = []domain.WorkoutLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *WorkoutHandler) DeleteLog(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.logs.Delete(accountID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete workout log")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "workout log not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
