package cancel_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/massage-scheduler/internal/api/middleware"
	cancelAppointment "github.com/m04kA/massage-scheduler/internal/usecase/cancel_appointment"
	"github.com/m04kA/massage-scheduler/pkg/logger"
)

type stubUseCase struct {
	bulk    *cancelAppointment.BulkResponse
	bulkErr error
	got     *cancelAppointment.BulkRequest
}

func (s *stubUseCase) Policy(context.Context, int64) (*cancelAppointment.PolicyResponse, error) {
	return nil, errors.New("not used")
}

func (s *stubUseCase) Execute(context.Context, *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	return nil, errors.New("not used")
}

func (s *stubUseCase) BulkCancel(_ context.Context, req *cancelAppointment.BulkRequest) (*cancelAppointment.BulkResponse, error) {
	s.got = req
	return s.bulk, s.bulkErr
}

func postBulk(h *Handler, userID int64, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments/bulk-cancel", strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.HandleBulk(rec, req)
	return rec
}

func TestHandleBulk(t *testing.T) {
	partial := &cancelAppointment.BulkResponse{
		Requested: 3,
		Cancelled: 1,
		Failed: []cancelAppointment.BulkFailure{
			{AppointmentID: 2, Error: context.Canceled.Error()},
			{AppointmentID: 3, Error: context.Canceled.Error()},
		},
	}

	cases := []struct {
		name      string
		userID    int64
		body      string
		bulk      *cancelAppointment.BulkResponse
		bulkErr   error
		status    int
		cancelled int
	}{
		{name: "done", userID: 7, body: `{"appointmentIds":[1]}`, bulk: &cancelAppointment.BulkResponse{Requested: 1, Cancelled: 1, Failed: []cancelAppointment.BulkFailure{}}, status: http.StatusOK, cancelled: 1},
		{name: "interrupted keeps partial result", userID: 7, body: `{"appointmentIds":[1,2,3]}`, bulk: partial, bulkErr: context.Canceled, status: http.StatusOK, cancelled: 1},
		{name: "invalid input", userID: 7, body: `{"appointmentIds":[]}`, bulkErr: cancelAppointment.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "internal", userID: 7, body: `{"appointmentIds":[1]}`, bulkErr: cancelAppointment.ErrInternal, status: http.StatusInternalServerError},
		{name: "no user", body: `{"appointmentIds":[1]}`, status: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &stubUseCase{bulk: tc.bulk, bulkErr: tc.bulkErr}
			rec := postBulk(NewHandler(uc, logger.NewNop()), tc.userID, tc.body)
			require.Equal(t, tc.status, rec.Code)

			if tc.status != http.StatusOK {
				return
			}
			assert.Equal(t, tc.userID, uc.got.ActorID)

			var resp cancelAppointment.BulkResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.cancelled, resp.Cancelled)
			assert.Equal(t, tc.bulk.Requested, resp.Requested)
		})
	}
}
