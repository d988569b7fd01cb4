package get_club_reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	ListByClubAndDate(ctx context.Context, clubID int64, date time.Time) (*models.ClubReservationsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
