package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/fitlogic/fitlogic-backend/internal/service"
)

type ScheduleHandler struct {
	tracker *service.Tracker
}

func NewScheduleHandler(tracker *service.Tracker) *ScheduleHandler {
	return &ScheduleHandler{tracker: tracker}
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.tracker.Schedule(accountID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build schedule")
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

func (h *ScheduleHandler) PutRestDays(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RestDays []int `json:"rest_days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	days, err := h.tracker.SetRestDays(accountID(r), req.RestDays)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save rest days")
		return
	}

	schedule, err := h.tracker.Schedule(accountID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build schedule")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"rest_days": days,
		"schedule":  schedule,
	})
}

func (h *ScheduleHandler) ToggleRestDay(w http.ResponseWriter, r *http.Request) {
	day, err := strconv.Atoi(mux.Vars(r)["day"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid day index")
		return
	}

	days, err := h.tracker.ToggleRestDay(accountID(r), day)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDay) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to toggle rest day")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"rest_days": days})
}

// Soreness converts the next scheduled workout day into an active recovery
// day. Weekday mapping follows the 1-7 cycle with Sunday as day 7.
func (h *ScheduleHandler) Soreness(w http.ResponseWriter, r *http.Request) {
	today := int(time.Now().Weekday())
	if today == 0 {
		today = 7
	}

	day, applied, err := h.tracker.LogSoreness(accountID(r), today)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to apply soreness adjustment")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"adjusted_day": day,
		"applied":      applied,
	})
}
