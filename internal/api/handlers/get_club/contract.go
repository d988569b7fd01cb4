package get_club

import (
	"context"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/clubs/models"
)

type ClubService interface {
	GetByID(ctx context.Context, id int64) (*models.ClubResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
