package generate_daily_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/pkg/runlock"
)

// ClubRepository интерфейс репозитория клубов и кортов
type ClubRepository interface {
	GetAll(ctx context.Context) ([]domain.Club, error)
	GetCourtsByClubID(ctx context.Context, clubID int64) ([]domain.Court, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []domain.Slot) (int64, error)
	ExistsForCourtAndDate(ctx context.Context, courtID int64, date time.Time) (bool, error)
	DeleteAvailableByDate(ctx context.Context, date time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker блокировка, не допускающая параллельных запусков генерации
type Locker interface {
	TryAcquire(ctx context.Context, key string, ttl time.Duration) (*runlock.Lease, error)
}

// Metrics метрики генерации
type Metrics interface {
	ObserveHorizonRun(result string, seconds float64)
	ObserveHorizonCourt(result string, slotsInserted int)
	AddSlotsPurged(n int64)
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
