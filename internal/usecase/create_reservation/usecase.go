package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/slot"
)

// UseCase use case бронирования слота: available -> reserved
type UseCase struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute бронирует слот
// Слот блокируется (FOR UPDATE), затем условно переводится в reserved и создается бронирование.
// Всё выполняется в одной транзакции: при любой ошибке слот остаётся свободным
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.metrics.ObserveReservation(operationReserve, outcomeInvalid)
		return nil, err
	}

	uc.logger.Info("CreateReservation: slot=%d, user=%d", req.SlotID, req.UserID)

	var result *domain.Reservation

	// 2. Выполняем переход состояния в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем слот с блокировкой строки
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: get slot: %v", ErrInternal, err)
		}

		// 2.2. Проверяем, что слот свободен
		if !slot.IsAvailable() {
			return ErrSlotAlreadyReserved
		}

		// 2.3. Условный перевод в reserved (WHERE availability = available)
		if err := uc.slotRepo.MarkReserved(txCtx, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotAvailable) {
				return ErrSlotAlreadyReserved
			}
			return fmt.Errorf("%w: mark slot reserved: %v", ErrInternal, err)
		}

		// 2.4. Создаем бронирование, дата, время и цена копируются из слота
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			SlotID:    slot.ID,
			UserID:    req.UserID,
			Price:     slot.Price,
			Date:      slot.Date,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
		if err != nil {
			switch {
			case errors.Is(err, reservationRepo.ErrSlotAlreadyReserved):
				return ErrSlotAlreadyReserved
			case errors.Is(err, reservationRepo.ErrUserNotFound):
				return ErrUserNotFound
			case errors.Is(err, reservationRepo.ErrSlotNotFound):
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		uc.logFailure(req, err)
		return nil, err
	}

	uc.metrics.ObserveReservation(operationReserve, outcomeSuccess)
	uc.logger.Info("CreateReservation: reservation id=%d created for slot=%d, user=%d",
		result.ID, req.SlotID, req.UserID)

	return &Response{
		ReservationID: result.ID,
		SlotID:        result.SlotID,
		UserID:        result.UserID,
		Price:         result.Price,
		Date:          result.Date,
		StartTime:     result.StartTime,
		EndTime:       result.EndTime,
		CreatedAt:     result.CreatedAt,
	}, nil
}

func (uc *UseCase) logFailure(req *Request, err error) {
	switch {
	case errors.Is(err, ErrSlotAlreadyReserved):
		uc.logger.Warn("CreateReservation: slot=%d is already reserved", req.SlotID)
		uc.metrics.ObserveReservation(operationReserve, outcomeConflict)
	case errors.Is(err, ErrSlotNotFound):
		uc.logger.Warn("CreateReservation: slot=%d not found", req.SlotID)
		uc.metrics.ObserveReservation(operationReserve, outcomeNotFound)
	case errors.Is(err, ErrUserNotFound):
		uc.logger.Warn("CreateReservation: user=%d not found", req.UserID)
		uc.metrics.ObserveReservation(operationReserve, outcomeNotFound)
	default:
		uc.logger.Error("CreateReservation: failed for slot=%d, user=%d: %v", req.SlotID, req.UserID, err)
		uc.metrics.ObserveReservation(operationReserve, outcomeError)
	}
}
