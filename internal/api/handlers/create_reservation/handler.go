package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-PadelBookingService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-PadelBookingService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotIDRequired     = "не указан slotId"
	msgUserIDRequired     = "не указан userId"
	msgSlotNotFound       = "слот не найден"
	msgUserNotFound       = "пользователь не найден"
	msgSlotReserved       = "слот уже забронирован, выберите другой слот"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
// Если userId не передан в теле, используется пользователь из заголовка X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.UserID == 0 {
		if userID, ok := middleware.GetUserID(r.Context()); ok {
			req.UserID = userID
		}
	}

	if err := req.Validate(); err != nil {
		h.logger.Warn("POST /reservations - Validation failed: %v", err)
		if errors.Is(err, errSlotIDRequired) {
			handlers.RespondBadRequest(w, msgSlotIDRequired)
		} else {
			handlers.RespondBadRequest(w, msgUserIDRequired)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSlotAlreadyReserved):
			h.logger.Warn("POST /reservations - Slot already reserved: slot_id=%d, user_id=%d", req.SlotID, req.UserID)
			handlers.RespondConflict(w, msgSlotReserved)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /reservations - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrUserNotFound):
			h.logger.Warn("POST /reservations - User not found: user_id=%d", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: slot_id=%d, user_id=%d, error=%v",
				req.SlotID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, slot_id=%d, user_id=%d",
		result.ReservationID, req.SlotID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
