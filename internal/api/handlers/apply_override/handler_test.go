package apply_override

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/internal/domain"
	"github.com/m04kA/massage-scheduler/internal/infra/storage/memory"
	applyOverride "github.com/m04kA/massage-scheduler/internal/usecase/apply_override"
	"github.com/m04kA/massage-scheduler/pkg/logger"
)

var tehran = time.FixedZone("IRST", 3*3600+1800)

type conflictResponse struct {
	Error     string `json:"error"`
	Conflicts []struct {
		AppointmentID int64  `json:"appointmentId"`
		StartTime     string `json:"startTime"`
		Reason        string `json:"reason"`
	} `json:"conflicts"`
}

func newRouter(t *testing.T) (*mux.Router, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	require.NoError(t, store.Schedules().CreateWeekly(context.Background(), 4, []domain.TherapistSchedule{
		{Weekday: domain.Monday, StartTime: "09:00", EndTime: "17:00", IsActive: true},
	}))

	uc := applyOverride.NewUseCase(store.Appointments(), store.Schedules(), store, store, nil,
		domain.DefaultOverrideBreakMinutes, tehran, logger.NewNop())
	h := NewHandler(uc, tehran, logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/therapists/{therapistId}/overrides", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/therapists/{therapistId}/overrides/preview", h.HandlePreview).Methods(http.MethodPost)
	r.HandleFunc("/therapists/{therapistId}/overrides/{date}", h.HandleDelete).Methods(http.MethodDelete)
	return r, store
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ConflictListsAppointments(t *testing.T) {
	r, store := newRouter(t)

	a := domain.NewAppointment(4, domain.TherapistService{
		ServiceID:       1,
		DurationMinutes: 60,
		Price:           decimal.NewFromInt(900_000),
	}, time.Date(2024, 3, 25, 15, 0, 0, 0, tehran), domain.ClientInfo{})
	created, err := store.Appointments().Create(context.Background(), &a)
	require.NoError(t, err)

	body := `{"date":"1403-01-06","type":"custom_hours","startTime":"09:00","endTime":"12:00"}`

	rec := do(r, http.MethodPost, "/therapists/4/overrides", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp conflictResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, created.ID, resp.Conflicts[0].AppointmentID)
	assert.Equal(t, "15:00", resp.Conflicts[0].StartTime)
	assert.Equal(t, string(domain.ConflictOutsideHours), resp.Conflicts[0].Reason)

	preview := do(r, http.MethodPost, "/therapists/4/overrides/preview", body)
	require.Equal(t, http.StatusOK, preview.Code)
	assert.Contains(t, preview.Body.String(), `"hasConflicts":true`)
}

func TestHandle_CreateAndDelete(t *testing.T) {
	r, _ := newRouter(t)

	rec := do(r, http.MethodPost, "/therapists/4/overrides", `{"date":"1403-01-06","type":"unavailable","reason":"holiday"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"gregorianDate":"2024-03-25"`)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/therapists/4/overrides/1403-01-06", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/therapists/4/overrides/1403-01-06", "").Code)
}

func TestHandle_BadRequests(t *testing.T) {
	r, _ := newRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"bad therapist", http.MethodPost, "/therapists/abc/overrides", `{"date":"1403-01-06","type":"unavailable"}`},
		{"bad body", http.MethodPost, "/therapists/4/overrides", `{"date":`},
		{"bad type", http.MethodPost, "/therapists/4/overrides", `{"date":"1403-01-06","type":"vacation"}`},
		{"bad date", http.MethodPost, "/therapists/4/overrides", `{"date":"1403-14-01","type":"unavailable"}`},
		{"reversed hours", http.MethodPost, "/therapists/4/overrides/preview", `{"date":"1403-01-06","type":"custom_hours","startTime":"12:00","endTime":"09:00"}`},
		{"delete bad date", http.MethodDelete, "/therapists/4/overrides/someday", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(r, tc.method, tc.path, tc.body).Code)
		})
	}
}
