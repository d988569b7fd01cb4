package get_club

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/clubs"
)

const (
	msgInvalidClubID = "некорректный ID клуба"
	msgClubNotFound  = "клуб не найден"
)

type Handler struct {
	service ClubService
	logger  Logger
}

func NewHandler(service ClubService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clubs/{clubId}
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clubID, err := strconv.ParseInt(vars["clubId"], 10, 64)
	if err != nil || clubID <= 0 {
		h.logger.Warn("GET /clubs/{id} - Invalid club ID: %q", vars["clubId"])
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	result, err := h.service.GetByID(r.Context(), clubID)
	if err != nil {
		switch {
		case errors.Is(err, clubs.ErrClubNotFound):
			h.logger.Warn("GET /clubs/{id} - Club not found: club_id=%d", clubID)
			handlers.RespondNotFound(w, msgClubNotFound)

		default:
			h.logger.Error("GET /clubs/{id} - Failed to get club: club_id=%d, error=%v", clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
