package cancel_reservation

import cancelReservation "github.com/m04kA/SMC-PadelBookingService/internal/usecase/cancel_reservation"

// CancelReservationResponse HTTP response model
type CancelReservationResponse struct {
	ReservationID int64  `json:"reservationId"`
	SlotID        int64  `json:"slotId"`
	Availability  string `json:"availability"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// После отмены слот всегда свободен
func FromUseCaseResponse(resp *cancelReservation.Response) *CancelReservationResponse {
	return &CancelReservationResponse{
		ReservationID: resp.ReservationID,
		SlotID:        resp.SlotID,
		Availability:  "available",
	}
}
