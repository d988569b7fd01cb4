package get_user_reservations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-PadelBookingService/pkg/logger"
)

type serviceStub struct {
	err error
}

func (s serviceStub) ListByUser(_ context.Context, userID int64) (*models.UserReservationsResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.UserReservationsResponse{
		UserID:   userID,
		Upcoming: []models.ReservationResponse{{ID: 2}},
		Past:     []models.ReservationResponse{},
	}, nil
}

func get(h *Handler, userID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/"+userID+"/reservations", nil)
	req = mux.SetURLVars(req, map[string]string{"userId": userID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	rec := get(NewHandler(serviceStub{}, logger.Nop()), "7")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body, "upcoming")
	assert.JSONEq(t, `[]`, string(body["past"]))
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(NewHandler(serviceStub{}, logger.Nop()), "zero").Code)
	assert.Equal(t, http.StatusInternalServerError, get(NewHandler(serviceStub{err: errors.New("db")}, logger.Nop()), "7").Code)
}
