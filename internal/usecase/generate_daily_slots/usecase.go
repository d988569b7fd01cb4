package generate_daily_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/pkg/runlock"
)

// lockKeyPrefix префикс ключа блокировки, к нему добавляется целевая дата
const lockKeyPrefix = "generate-daily-slots:"

// UseCase ежедневное поддержание горизонта слотов:
// удаление свободных слотов за вчера и генерация слотов на сегодня + HorizonDays
type UseCase struct {
	clubRepo     ClubRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	locker       Locker
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	cfg          Config
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clubRepo ClubRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	locker Locker,
	metrics Metrics,
	cfg Config,
	logger Logger,
) (*UseCase, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return &UseCase{
		clubRepo:     clubRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		locker:       locker,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		cfg:          cfg,
	}, nil
}

// Execute выполняет один запуск генерации
// Повторный запуск на ту же дату не создаёт дубликатов: корты, у которых уже есть слоты, пропускаются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Report, error) {
	if req == nil {
		req = &Request{}
	}

	startedAt := uc.timeProvider.Now()

	// 1. Определяем даты в часовом поясе клубов
	today := domain.DateOnly(startedAt.In(uc.cfg.Location))
	expiredDate := today.AddDate(0, 0, -1)
	targetDate := today.AddDate(0, 0, uc.cfg.HorizonDays)

	report := &Report{
		RunID:       uuid.NewString(),
		ExpiredDate: expiredDate.Format(domain.DateFormat),
		TargetDate:  targetDate.Format(domain.DateFormat),
		Courts:      make([]CourtResult, 0),
		StartedAt:   startedAt,
	}

	uc.logger.Info("GenerateDailySlots: run=%s, expired=%s, target=%s, backfill=%t",
		report.RunID, report.ExpiredDate, report.TargetDate, req.Backfill)

	// 2. Захватываем блокировку запуска
	lease, err := uc.locker.TryAcquire(ctx, lockKeyPrefix+report.TargetDate, uc.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, runlock.ErrNotAcquired) {
			uc.logger.Warn("GenerateDailySlots: run=%s skipped, target=%s is already being generated",
				report.RunID, report.TargetDate)
			uc.metrics.ObserveHorizonRun(RunResultBusy, 0)
			return nil, ErrAlreadyRunning
		}
		uc.logger.Error("GenerateDailySlots: run=%s failed to acquire lock: %v", report.RunID, err)
		uc.metrics.ObserveHorizonRun(RunResultFailed, 0)
		return nil, fmt.Errorf("%w: acquire lock: %v", ErrInternal, err)
	}
	defer func() {
		if err := lease.Release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("GenerateDailySlots: run=%s failed to release lock: %v", report.RunID, err)
		}
	}()

	// 3. Удаляем свободные слоты за вчера, занятые остаются
	deleted, err := uc.slotRepo.DeleteAvailableByDate(ctx, expiredDate)
	if err != nil {
		uc.logger.Error("GenerateDailySlots: run=%s failed to delete expired slots for %s: %v",
			report.RunID, report.ExpiredDate, err)
		report.PurgeFailed = true
	} else {
		report.DeletedSlots = deleted
		uc.metrics.AddSlotsPurged(deleted)
		uc.logger.Info("GenerateDailySlots: run=%s deleted %d available slots for %s",
			report.RunID, deleted, report.ExpiredDate)
	}

	// 4. Получаем клубы
	clubs, err := uc.clubRepo.GetAll(ctx)
	if err != nil {
		uc.logger.Error("GenerateDailySlots: run=%s failed to get clubs: %v", report.RunID, err)
		uc.metrics.ObserveHorizonRun(RunResultFailed, time.Since(startedAt).Seconds())
		return nil, fmt.Errorf("%w: get clubs: %v", ErrInternal, err)
	}

	// 5. Генерируем слоты для каждого корта каждого клуба
	for _, date := range datesToGenerate(today, targetDate, req.Backfill) {
		for _, club := range clubs {
			report.Courts = append(report.Courts, uc.generateForClub(ctx, club, date)...)
		}
	}

	report.FinishedAt = uc.timeProvider.Now()
	uc.metrics.ObserveHorizonRun(report.Result(), report.FinishedAt.Sub(startedAt).Seconds())

	uc.logger.Info("GenerateDailySlots: run=%s finished, generated=%d, skipped=%d, failed=%d",
		report.RunID,
		report.Count(CourtStatusGenerated),
		report.Count(CourtStatusSkipped),
		report.Count(CourtStatusFailed),
	)

	return report, nil
}

// generateForClub обрабатывает все корты клуба на дату
// Ошибка одного корта не прерывает обработку остальных
func (uc *UseCase) generateForClub(ctx context.Context, club domain.Club, date time.Time) []CourtResult {
	courts, err := uc.clubRepo.GetCourtsByClubID(ctx, club.ID)
	if err != nil {
		uc.logger.Error("GenerateDailySlots: failed to get courts of club=%d: %v", club.ID, err)
		uc.metrics.ObserveHorizonCourt(string(CourtStatusFailed), 0)
		return []CourtResult{{
			ClubID: club.ID,
			Date:   date.Format(domain.DateFormat),
			Status: CourtStatusFailed,
			Reason: "failed to get courts",
		}}
	}

	results := make([]CourtResult, 0, len(courts))
	for _, court := range courts {
		result := uc.generateForCourt(ctx, club, court, date)
		uc.metrics.ObserveHorizonCourt(string(result.Status), result.SlotsCreated)
		results = append(results, result)
	}

	return results
}

// generateForCourt создает слоты одного корта на дату в отдельной транзакции
func (uc *UseCase) generateForCourt(ctx context.Context, club domain.Club, court domain.Court, date time.Time) CourtResult {
	result := CourtResult{
		ClubID:    club.ID,
		CourtID:   court.ID,
		CourtName: court.Name,
		Date:      date.Format(domain.DateFormat),
	}

	if err := validateCourt(club, court); err != nil {
		uc.logger.Error("GenerateDailySlots: court=%d of club=%d is misconfigured: %v", court.ID, club.ID, err)
		result.Status = CourtStatusFailed
		result.Reason = err.Error()
		return result
	}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Пропускаем корт, если слоты на дату уже есть
		exists, err := uc.slotRepo.ExistsForCourtAndDate(txCtx, court.ID, date)
		if err != nil {
			return fmt.Errorf("check existing slots: %w", err)
		}
		if exists {
			result.Status = CourtStatusSkipped
			result.Reason = "slots already exist"
			return nil
		}

		// 2. Разбиваем часы работы клуба на слоты длительности корта
		intervals, err := domain.ExpandWindow(club.OpeningTime, club.ClosingTime, court.SlotDurationMinutes)
		if err != nil {
			return fmt.Errorf("expand window: %w", err)
		}
		if len(intervals) == 0 {
			result.Status = CourtStatusSkipped
			result.Reason = "opening hours are shorter than one slot"
			return nil
		}

		// 3. Цена копируется из корта на момент генерации
		slots := make([]domain.Slot, 0, len(intervals))
		for _, interval := range intervals {
			slots = append(slots, domain.Slot{
				CourtID:      court.ID,
				Date:         date,
				StartTime:    interval.Start,
				EndTime:      interval.End,
				Price:        court.Price,
				Availability: domain.AvailabilityAvailable,
			})
		}

		inserted, err := uc.slotRepo.CreateBatch(txCtx, slots)
		if err != nil {
			return fmt.Errorf("insert slots: %w", err)
		}

		result.Status = CourtStatusGenerated
		result.SlotsCreated = int(inserted)
		return nil
	})
	if err != nil {
		uc.logger.Error("GenerateDailySlots: failed to generate slots for court=%d of club=%d on %s: %v",
			court.ID, club.ID, result.Date, err)
		result.Status = CourtStatusFailed
		result.SlotsCreated = 0
		result.Reason = err.Error()
		return result
	}

	if result.Status == CourtStatusGenerated {
		uc.logger.Info("GenerateDailySlots: created %d slots for court=%d of club=%d on %s",
			result.SlotsCreated, court.ID, club.ID, result.Date)
	}

	return result
}

// datesToGenerate возвращает целевую дату, либо все даты от сегодня до целевой при backfill
func datesToGenerate(today, target time.Time, backfill bool) []time.Time {
	if !backfill {
		return []time.Time{target}
	}

	dates := make([]time.Time, 0)
	for d := today; !d.After(target); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
