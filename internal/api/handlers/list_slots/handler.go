package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/slots"
)

const (
	msgInvalidClubID = "некорректный ID клуба"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgClubNotFound  = "клуб не найден"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/clubs/{clubId}/slots?date=YYYY-MM-DD
// Публичный endpoint - без авторизации
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	clubID, err := strconv.ParseInt(vars["clubId"], 10, 64)
	if err != nil || clubID <= 0 {
		h.logger.Warn("GET /clubs/{id}/slots - Invalid club ID: %q", vars["clubId"])
		handlers.RespondBadRequest(w, msgInvalidClubID)
		return
	}

	date, err := domain.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /clubs/{id}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.ListSlots(r.Context(), clubID, date)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrClubNotFound):
			h.logger.Warn("GET /clubs/{id}/slots - Club not found: club_id=%d", clubID)
			handlers.RespondNotFound(w, msgClubNotFound)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("GET /clubs/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /clubs/{id}/slots - Failed to list slots: club_id=%d, error=%v", clubID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clubs/{id}/slots - Slots retrieved: club_id=%d, date=%s, courts=%d",
		clubID, result.Date, len(result.Courts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
