package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

// Request запрос на бронирование слота
type Request struct {
	SlotID int64
	UserID int64
}

// Response созданное бронирование
type Response struct {
	ReservationID int64
	SlotID        int64
	UserID        int64
	Price         float64
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	CreatedAt     time.Time
}

// Исходы для метрик
const (
	operationReserve = "reserve"

	outcomeSuccess  = "success"
	outcomeConflict = "conflict"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)
