package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
	"github.com/fitlogic/fitlogic-backend/internal/fitlogic"
	"github.com/fitlogic/fitlogic-backend/internal/service"
)

// ExerciseStore is the catalog persistence the handler needs.
type ExerciseStore interface {
	Create(accountID int64, e *domain.Exercise) error
	ListByAccount(accountID int64) ([]domain.Exercise, error)
	CountByAccount(accountID int64) (int, error)
	Delete(accountID int64, id string) (bool, error)
}

type ExerciseHandler struct {
	store   ExerciseStore
	tracker *service.Tracker
	seedMu  sync.Mutex
}

func NewExerciseHandler(store ExerciseStore, tracker *service.Tracker) *ExerciseHandler {
	return &ExerciseHandler{store: store, tracker: tracker}
}

// List returns the account's catalog, seeding the default exercises on first
// use.
func (h *ExerciseHandler) List(w http.ResponseWriter, r *http.Request) {
	id := accountID(r)

	if err := h.seedDefaults(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to seed exercises")
		return
	}

	exercises, err := h.store.ListByAccount(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list exercises")
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	writeJSON(w, http.StatusOK, exercises)
}

// seedDefaults inserts the default catalog for an account with no exercises.
// The count-then-insert runs under seedMu so two concurrent first requests
// cannot double-seed.
func (h *ExerciseHandler) seedDefaults(accountID int64) error {
	h.seedMu.Lock()
	defer h.seedMu.Unlock()

	count, err := h.store.CountByAccount(accountID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, e := range fitlogic.DefaultExercises() {
		e.ID = uuid.NewString()
		if err := h.store.Create(accountID, &e); err != nil {
			return err
		}
	}
	return nil
}

func (h *ExerciseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var exercise domain.Exercise
	if err := json.NewDecoder(r.Body).Decode(&exercise); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if exercise.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if exercise.MET <= 0 {
		writeError(w, http.StatusBadRequest, "met must be positive")
		return
	}

	exercise.ID = uuid.NewString()
	if err := h.store.Create(accountID(r), &exercise); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create exercise")
		return
	}

	writeJSON(w, http.StatusCreated, exercise)
}

func (h *ExerciseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.store.Delete(accountID(r), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete exercise")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "exercise not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Calories estimates the burn for an arbitrary MET/duration pair using the
// account's current weight.
func (h *ExerciseHandler) Calories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MET             float64 `json:"met"`
		DurationMinutes float64 `json:"duration_minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MET <= 0 || req.DurationMinutes <= 0 {
		writeError(w, http.StatusBadRequest, "met and duration_minutes must be positive")
		return
	}

	profile, err := h.tracker.Profile(accountID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"calories": fitlogic.CaloriesBurned(req.MET, profile.WeightKg, req.DurationMinutes),
	})
}
