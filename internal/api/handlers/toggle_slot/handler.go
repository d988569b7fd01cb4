package toggle_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/slots"
)

const (
	msgInvalidSlotID  = "некорректный ID слота"
	msgSlotNotFound   = "слот не найден"
	msgHasReservation = "на слот есть бронирование, сначала отмените его"
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

// Handle PATCH /api/v1/slots/{slotId}/toggle
// Ручная блокировка/разблокировка слота администратором клуба
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slotID, err := strconv.ParseInt(vars["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("PATCH /slots/{id}/toggle - Invalid slot ID: %q", vars["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.service.ToggleAvailability(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/{id}/toggle - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrSlotHasReservation):
			h.logger.Warn("PATCH /slots/{id}/toggle - Slot has reservation: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgHasReservation)

		case errors.Is(err, slots.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/{id}/toggle - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		default:
			h.logger.Error("PATCH /slots/{id}/toggle - Failed to toggle slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/{id}/toggle - Slot toggled: slot_id=%d, availability=%s", slotID, result.Availability)
	handlers.RespondJSON(w, http.StatusOK, result)
}
