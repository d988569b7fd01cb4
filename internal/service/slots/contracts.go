package slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	SetAvailability(ctx context.Context, id int64, availability domain.Availability) error
	ListByClubAndDate(ctx context.Context, clubID int64, date time.Time) ([]domain.SlotWithCourt, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ExistsForSlot(ctx context.Context, slotID int64) (bool, error)
}

// ClubRepository интерфейс репозитория клубов
type ClubRepository interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
