package get_club_stats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations"
)

const (
	msgInvalidClubID = "некорректный ID клуба"
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

// Handle GET /api/v1/clubs/{clubId}/stats
// Дашборд клуба: популярные корты и часы, постоянные клиенты, выручка по месяцам
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clubID, err := strconv.ParseInt(vars["clubId"], 10, 64)
	if err != nil || clubID <= 0 {
		h.logger.Warn("GET /clubs/{id}/stats - Invalid club ID: %q", vars["clubId"])
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	result, err := h.service.GetClubStats(r.Context(), clubID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrClubNotFound):
			h.logger.Warn("GET /clubs/{id}/stats - Club not found: club_id=%d", clubID)
			handlers.RespondNotFound(w, msgClubNotFound)

		default:
			h.logger.Error("GET /clubs/{id}/stats - Failed to get stats: club_id=%d, error=%v", clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
