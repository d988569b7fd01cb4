package get_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations/models"
	"github.com/m04kA/SMC-PadelBookingService/pkg/logger"
)

type serviceStub struct{}

func (serviceStub) GetByID(_ context.Context, id int64) (*models.ReservationResponse, error) {
	if id != 101 {
		return nil, reservations.ErrReservationNotFound
	}
	return &models.ReservationResponse{ID: 101, CourtName: "Central", StartTime: "18:00"}, nil
}

func get(id string) *httptest.ResponseRecorder {
	h := NewHandler(serviceStub{}, logger.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+id, nil)
	req = mux.SetURLVars(req, map[string]string{"reservationId": id})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	rec := get("101")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Central", body.CourtName)

	assert.Equal(t, http.StatusNotFound, get("5").Code)
	assert.Equal(t, http.StatusBadRequest, get("abc").Code)
}
