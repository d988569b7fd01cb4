package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PadelBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-PadelBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-PadelBookingService/pkg/logger"
)

type useCaseStub struct {
	gotReq *createReservation.Request
	err    error
}

func (s *useCaseStub) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &createReservation.Response{
		ReservationID: 101,
		SlotID:        req.SlotID,
		UserID:        req.UserID,
		Price:         24.5,
		Date:          time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
		StartTime:     "18:00",
		EndTime:       "19:30",
		CreatedAt:     time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC),
	}, nil
}

func post(h *Handler, body string, headerUserID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(body))
	if headerUserID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), headerUserID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Created(t *testing.T) {
	stub := &useCaseStub{}
	h := NewHandler(stub, logger.Nop())

	rec := post(h, `{"slotId": 42, "userId": 7}`, 0)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(101), body.ReservationID)
	assert.Equal(t, "2025-06-18", body.Date)
	assert.Equal(t, "18:00", body.StartTime)
	assert.Equal(t, "2025-06-12T10:00:00Z", body.CreatedAt)
}

func TestHandler_UserFromHeader(t *testing.T) {
	stub := &useCaseStub{}
	h := NewHandler(stub, logger.Nop())

	rec := post(h, `{"slotId": 42}`, 9)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, stub.gotReq)
	assert.Equal(t, int64(9), stub.gotReq.UserID)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "malformed json", body: `{"slotId":`, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{name: "unknown field", body: `{"slotId": 1, "userId": 2, "court": 3}`, wantStatus: http.StatusBadRequest, wantMsg: msgInvalidRequestBody},
		{name: "missing slot", body: `{"userId": 2}`, wantStatus: http.StatusBadRequest, wantMsg: msgSlotIDRequired},
		{name: "missing user", body: `{"slotId": 1}`, wantStatus: http.StatusBadRequest, wantMsg: msgUserIDRequired},
		{name: "slot taken", body: `{"slotId": 1, "userId": 2}`, err: createReservation.ErrSlotAlreadyReserved, wantStatus: http.StatusConflict, wantMsg: msgSlotReserved},
		{name: "slot missing", body: `{"slotId": 1, "userId": 2}`, err: createReservation.ErrSlotNotFound, wantStatus: http.StatusNotFound, wantMsg: msgSlotNotFound},
		{name: "user missing", body: `{"slotId": 1, "userId": 2}`, err: createReservation.ErrUserNotFound, wantStatus: http.StatusNotFound, wantMsg: msgUserNotFound},
		{name: "internal", body: `{"slotId": 1, "userId": 2}`, err: errors.New("db"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&useCaseStub{err: tt.err}, logger.Nop())

			rec := post(h, tt.body, 0)
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantMsg != "" {
				var body handlers.ErrorResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantMsg, body.Error)
			}
		})
	}
}
