package create_reservation

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-PadelBookingService/internal/usecase/create_reservation"
)

var (
	errSlotIDRequired = errors.New("slotId is required")
	errUserIDRequired = errors.New("userId is required")
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	SlotID int64 `json:"slotId"`
	UserID int64 `json:"userId"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ReservationID int64   `json:"reservationId"`
	SlotID        int64   `json:"slotId"`
	UserID        int64   `json:"userId"`
	Price         float64 `json:"price"`
	Date          string  `json:"date"`      // "2025-06-18"
	StartTime     string  `json:"startTime"` // "18:00"
	EndTime       string  `json:"endTime"`   // "19:30"
	CreatedAt     string  `json:"createdAt"`
}

// Validate проверяет обязательные поля
func (r *CreateReservationRequest) Validate() error {
	if r.SlotID <= 0 {
		return errSlotIDRequired
	}
	if r.UserID <= 0 {
		return errUserIDRequired
	}
	return nil
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() *createReservation.Request {
	return &createReservation.Request{
		SlotID: r.SlotID,
		UserID: r.UserID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ReservationID: resp.ReservationID,
		SlotID:        resp.SlotID,
		UserID:        resp.UserID,
		Price:         resp.Price,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
	}
}
