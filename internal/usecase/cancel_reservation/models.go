package cancel_reservation

// Request запрос на отмену бронирования
type Request struct {
	ReservationID int64
}

// Response результат отмены
type Response struct {
	ReservationID int64
	SlotID        int64
}

// Исходы для метрик
const (
	operationCancel = "cancel"

	outcomeSuccess  = "success"
	outcomeNotFound = "not_found"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)
