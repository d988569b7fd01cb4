package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	reservationRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/slot"
)

// UseCase use case отмены бронирования: reserved -> available
type UseCase struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute отменяет бронирование и освобождает слот в одной транзакции
// Бронирования в прошлом тоже можно отменить
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelReservation: validation failed: %v", err)
		uc.metrics.ObserveReservation(operationCancel, outcomeInvalid)
		return nil, err
	}

	uc.logger.Info("CancelReservation: reservation=%d", req.ReservationID)

	var slotID int64

	// 2. Удаляем бронирование и освобождаем слот
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой строки
		reservation, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: get reservation: %v", ErrInternal, err)
		}
		slotID = reservation.SlotID

		// 2.2. Удаляем бронирование
		if err := uc.reservationRepo.Delete(txCtx, reservation.ID); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: delete reservation: %v", ErrInternal, err)
		}

		// 2.3. Возвращаем слот в available
		if err := uc.slotRepo.MarkAvailable(txCtx, reservation.SlotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotReserved) {
				uc.logger.Warn("CancelReservation: slot=%d of reservation=%d was not reserved",
					reservation.SlotID, reservation.ID)
				return nil
			}
			return fmt.Errorf("%w: mark slot available: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation=%d not found", req.ReservationID)
			uc.metrics.ObserveReservation(operationCancel, outcomeNotFound)
			return nil, err
		}
		uc.logger.Error("CancelReservation: failed for reservation=%d: %v", req.ReservationID, err)
		uc.metrics.ObserveReservation(operationCancel, outcomeError)
		return nil, err
	}

	uc.metrics.ObserveReservation(operationCancel, outcomeSuccess)
	uc.logger.Info("CancelReservation: reservation=%d cancelled, slot=%d is available", req.ReservationID, slotID)

	return &Response{ReservationID: req.ReservationID, SlotID: slotID}, nil
}
