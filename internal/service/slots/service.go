package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/slots/models"
)

// Service сервис просмотра и администрирования слотов
type Service struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	clubRepo        ClubRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	clubRepo ClubRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		clubRepo:        clubRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// ListSlots возвращает слоты клуба на дату, сгруппированные по кортам
// Порядок: название корта, затем время начала
func (s *Service) ListSlots(ctx context.Context, clubID int64, date time.Time) (*models.ListSlotsResponse, error) {
	s.logger.Info("ListSlots: club=%d, date=%s", clubID, date.Format(domain.DateFormat))

	if clubID <= 0 {
		return nil, fmt.Errorf("%w: clubID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	exists, err := s.clubRepo.Exists(ctx, clubID)
	if err != nil {
		s.logger.Error("ListSlots: failed to check club=%d: %v", clubID, err)
		return nil, fmt.Errorf("%w: ListSlots - check club: %v", ErrInternal, err)
	}
	if !exists {
		s.logger.Warn("ListSlots: club=%d not found", clubID)
		return nil, ErrClubNotFound
	}

	rows, err := s.slotRepo.ListByClubAndDate(ctx, clubID, date)
	if err != nil {
		s.logger.Error("ListSlots: repository error for club=%d: %v", clubID, err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}

	courts := groupByCourt(rows)

	s.logger.Info("ListSlots: club=%d has %d slots on %d courts", clubID, len(rows), len(courts))
	return models.FromDomainCourtSlots(clubID, domain.DateOnly(date), courts), nil
}

// ToggleAvailability переключает available <-> reserved для слота без бронирования
// Слот с активным бронированием можно освободить только отменой бронирования
func (s *Service) ToggleAvailability(ctx context.Context, slotID int64) (*models.ToggleResponse, error) {
	s.logger.Info("ToggleAvailability: slot=%d", slotID)

	if slotID <= 0 {
		return nil, fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	var next domain.Availability

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем слот с блокировкой строки
		slot, err := s.slotRepo.GetByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: ToggleAvailability - get slot: %v", ErrInternal, err)
		}

		// 2. Слот с бронированием не переключаем
		hasReservation, err := s.reservationRepo.ExistsForSlot(txCtx, slotID)
		if err != nil {
			return fmt.Errorf("%w: ToggleAvailability - check reservation: %v", ErrInternal, err)
		}
		if hasReservation {
			return ErrSlotHasReservation
		}

		// 3. Устанавливаем противоположное состояние
		next = slot.Availability.Toggled()
		if err := s.slotRepo.SetAvailability(txCtx, slotID, next); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: ToggleAvailability - set availability: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotFound):
			s.logger.Warn("ToggleAvailability: slot=%d not found", slotID)
		case errors.Is(err, ErrSlotHasReservation):
			s.logger.Warn("ToggleAvailability: slot=%d has an active reservation", slotID)
		default:
			s.logger.Error("ToggleAvailability: failed for slot=%d: %v", slotID, err)
		}
		return nil, err
	}

	s.logger.Info("ToggleAvailability: slot=%d is now %s", slotID, next)
	return &models.ToggleResponse{SlotID: slotID, Availability: string(next)}, nil
}

// groupByCourt группирует упорядоченные слоты по кортам, сохраняя порядок
func groupByCourt(rows []domain.SlotWithCourt) []domain.CourtSlots {
	courts := make([]domain.CourtSlots, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		i, ok := index[row.CourtID]
		if !ok {
			courts = append(courts, domain.CourtSlots{
				CourtID:         row.CourtID,
				CourtName:       row.CourtName,
				CourtType:       row.CourtType,
				DurationMinutes: row.DurationMinutes,
				Slots:           make([]domain.Slot, 0),
			})
			i = len(courts) - 1
			index[row.CourtID] = i
		}
		courts[i].Slots = append(courts[i].Slots, row.Slot)
	}

	return courts
}
