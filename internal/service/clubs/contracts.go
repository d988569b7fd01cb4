package clubs

import (
	"context"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
)

// ClubRepository интерфейс репозитория клубов
type ClubRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Club, error)
	GetCourtsByClubID(ctx context.Context, clubID int64) ([]domain.Court, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
