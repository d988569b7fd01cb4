package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetDetailsByID(ctx context.Context, id int64) (*domain.ReservationDetails, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.ReservationDetails, error)
	GetByClubAndDate(ctx context.Context, clubID int64, date time.Time) ([]domain.ReservationDetails, error)
	GetTopCourts(ctx context.Context, clubID int64, limit uint64) ([]domain.CourtBookingCount, error)
	GetTopHours(ctx context.Context, clubID int64, limit uint64) ([]domain.HourBookingCount, error)
	GetTopCustomers(ctx context.Context, clubID int64, limit uint64) ([]domain.CustomerBookingCount, error)
	GetMonthlyRevenue(ctx context.Context, clubID int64) ([]domain.MonthlyRevenue, error)
}

// ClubRepository интерфейс репозитория клубов
type ClubRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
