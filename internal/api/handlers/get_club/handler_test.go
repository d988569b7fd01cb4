package get_club

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/clubs"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/clubs/models"
	"github.com/m04kA/SMC-PadelBookingService/pkg/logger"
)

type serviceStub struct{}

func (serviceStub) GetByID(_ context.Context, id int64) (*models.ClubResponse, error) {
	if id != 1 {
		return nil, clubs.ErrClubNotFound
	}
	return &models.ClubResponse{
		ID:          1,
		Name:        "Padel Norte",
		OpeningTime: "08:00",
		ClosingTime: "22:00",
		Courts:      []models.CourtResponse{{ID: 3, Name: "Central", DurationMinutes: 90}},
	}, nil
}

func get(clubID string) *httptest.ResponseRecorder {
	h := NewHandler(serviceStub{}, logger.Nop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/clubs/"+clubID, nil)
	req = mux.SetURLVars(req, map[string]string{"clubId": clubID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	rec := get("1")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.ClubResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Padel Norte", body.Name)
	require.Len(t, body.Courts, 1)

	assert.Equal(t, http.StatusNotFound, get("2").Code)
	assert.Equal(t, http.StatusBadRequest, get("").Code)
}
