package generate_daily_slots

import (
	"fmt"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
)

// validateConfig проверяет настройки генерации
func validateConfig(cfg Config) error {
	if cfg.HorizonDays < 0 {
		return fmt.Errorf("%w: horizon days must not be negative", ErrInvalidConfig)
	}

	if cfg.Location == nil {
		return fmt.Errorf("%w: location is required", ErrInvalidConfig)
	}

	if cfg.LockTTL <= 0 {
		return fmt.Errorf("%w: lock ttl must be positive", ErrInvalidConfig)
	}

	return nil
}

// validateCourt проверяет, что для корта и клуба можно построить расписание
func validateCourt(club domain.Club, court domain.Court) error {
	if !domain.IsAllowedSlotDuration(court.SlotDurationMinutes) {
		return fmt.Errorf("%w: court %d has %d minutes", domain.ErrInvalidSlotDuration, court.ID, court.SlotDurationMinutes)
	}

	if err := club.OpeningTime.Validate(); err != nil {
		return fmt.Errorf("club %d opening time: %w", club.ID, err)
	}

	if err := club.ClosingTime.Validate(); err != nil {
		return fmt.Errorf("club %d closing time: %w", club.ID, err)
	}

	return nil
}
