package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitlogic/fitlogic-backend/internal/domain"
	"github.com/fitlogic/fitlogic-backend/internal/middleware"
	"github.com/fitlogic/fitlogic-backend/internal/service"
)

// memStore mirrors the MySQL-backed state repository in memory.
type memStore struct {
	records map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string][]byte)}
}

func (s *memStore) Save(accountID int64, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.records[fmt.Sprintf("%d/%s", accountID, key)] = data
	return nil
}

func (s *memStore) Load(accountID int64, key string, out any) (bool, error) {
	data, ok := s.records[fmt.Sprintf("%d/%s", accountID, key)]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, out)
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(r.Context(), middleware.AccountIDKey, int64(1))
	return r.WithContext(ctx)
}

func TestProfileHandler_GetReturnsDefault(t *testing.T) {
	h := NewProfileHandler(service.NewTracker(newMemStore()))

	w := httptest.NewRecorder()
	h.Get(w, authedRequest(http.MethodGet, "/api/v1/profile", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var p domain.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 25, p.Age)
	assert.Equal(t, domain.SexMale, p.Sex)
	assert.Equal(t, 70.0, p.WeightKg)
}

func TestProfileHandler_PutRoundTrip(t *testing.T) {
	tracker := service.NewTracker(newMemStore())
	h := NewProfileHandler(tracker)

	body := `{"age":30,"sex":"Female","weight_kg":60,"height_cm":165,"activity_level":"Sedentary"}`
	w := httptest.NewRecorder()
	h.Put(w, authedRequest(http.MethodPut, "/api/v1/profile", body))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Profile domain.UserProfile   `json:"profile"`
		Metrics domain.HealthMetrics `json:"metrics"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.SexFemale, resp.Profile.Sex)
	assert.Equal(t, 1320, resp.Metrics.BMR)
	assert.Equal(t, 18, resp.Metrics.Iron)

	w = httptest.NewRecorder()
	h.Get(w, authedRequest(http.MethodGet, "/api/v1/profile", ""))
	require.Equal(t, http.StatusOK, w.Code)

	var p domain.UserProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, resp.Profile, p)
}

func TestProfileHandler_PutValidation(t *testing.T) {
	h := NewProfileHandler(service.NewTracker(newMemStore()))

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"zero age", `{"age":0,"sex":"Male","weight_kg":70,"height_cm":175,"activity_level":"Sedentary"}`},
		{"negative weight", `{"age":25,"sex":"Male","weight_kg":-1,"height_cm":175,"activity_level":"Sedentary"}`},
		{"zero height", `{"age":25,"sex":"Male","weight_kg":70,"height_cm":0,"activity_level":"Sedentary"}`},
		{"unknown sex", `{"age":25,"sex":"Other","weight_kg":70,"height_cm":175,"activity_level":"Sedentary"}`},
		{"unknown activity", `{"age":25,"sex":"Male","weight_kg":70,"height_cm":175,"activity_level":"Couch"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Put(w, authedRequest(http.MethodPut, "/api/v1/profile", tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestProfileHandler_Metrics(t *testing.T) {
	h := NewProfileHandler(service.NewTracker(newMemStore()))

	w := httptest.NewRecorder()
	h.Metrics(w, authedRequest(http.MethodGet, "/api/v1/metrics", ""))

	require.Equal(t, http.StatusOK, w.Code)

	var m domain.HealthMetrics
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, 22.9, m.BMI)
	assert.Equal(t, domain.BMINormal, m.BMIStatus)
	assert.Equal(t, 1674, m.BMR)
	assert.Equal(t, 2594, m.TDEE)
	assert.Equal(t, 126, m.ProteinTarget)
}
