package handler

import (
	"encoding/json"
	"net/http"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
	"github.com/fitlogic/fitlogic-backend/internal/service"
)

type ProfileHandler struct {
	tracker *service.Tracker
}

func NewProfileHandler(tracker *service.Tracker) *ProfileHandler {
	return &ProfileHandler{tracker: tracker}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	profile, err := h.tracker.Profile(accountID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Put replaces the profile wholesale and returns it with fresh metrics.
func (h *ProfileHandler) Put(w http.ResponseWriter, r *http.Request) {
	var profile domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if profile.Age <= 0 {
		writeError(w, http.StatusBadRequest, "age must be positive")
		return
	}
	if profile.WeightKg <= 0 {
		writeError(w, http.StatusBadRequest, "weight must be positive")
		return
	}
	if profile.HeightCm <= 0 {
		writeError(w, http.StatusBadRequest, "height must be positive")
		return
	}
	if !profile.Sex.Valid() {
		writeError(w, http.StatusBadRequest, "sex must be Male or Female")
		return
	}
	if !profile.ActivityLevel.Valid() {
		writeError(w, http.StatusBadRequest, "invalid activity level")
		return
	}

	metrics, err := h.tracker.SaveProfile(accountID(r), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"profile": profile,
		"metrics": metrics,
	})
}

func (h *ProfileHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.tracker.Metrics(accountID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute metrics")
		return
	}
	writeJSON(w, http.StatusOK, metrics)
}
