package get_club_stats

import (
	"context"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetClubStats(ctx context.Context, clubID int64) (*models.ClubStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
