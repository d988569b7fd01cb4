package get_club_reservations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations"
)

const (
	msgInvalidClubID = "некорректный ID клуба"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgClubNotFound  = "клуб не найден"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clubs/{clubId}/reservations?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clubID, err := strconv.ParseInt(vars["clubId"], 10, 64)
	if err != nil || clubID <= 0 {
		h.logger.Warn("GET /clubs/{id}/reservations - Invalid club ID: %q", vars["clubId"])
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	date, err := domain.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/reservations - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListByClubAndDate(r.Context(), clubID, date)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrClubNotFound):
			h.logger.Warn("GET /clubs/{id}/reservations - Club not found: club_id=%d", clubID)
			handlers.RespondNotFound(w, msgClubNotFound)

		default:
			h.logger.Error("GET /clubs/{id}/reservations - Failed to list reservations: club_id=%d, error=%v",
				clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clubs/{id}/reservations - Reservations retrieved: club_id=%d, date=%s, count=%d",
		clubID, result.Date, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
