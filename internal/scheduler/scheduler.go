package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	generateSlots "github.com/m04kA/SMC-PadelBookingService/internal/usecase/generate_daily_slots"
)

// HorizonUseCase запуск генерации слотов
type HorizonUseCase interface {
	Execute(ctx context.Context, req *generateSlots.Request) (*generateSlots.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config настройки планировщика
type Config struct {
	// Schedule cron выражение из 5 полей
	Schedule string
	// Location часовой пояс, в котором интерпретируется расписание
	Location *time.Location
	// RunOnStartup выполнить генерацию сразу при старте
	RunOnStartup bool
	// Backfill при стартовом запуске заполнить все даты до горизонта
	Backfill bool
	// RunTimeout ограничение длительности одного запуска
	RunTimeout time.Duration
}

// Scheduler запускает генерацию слотов по расписанию
type Scheduler struct {
	cron    *cron.Cron
	useCase HorizonUseCase
	logger  Logger
	cfg     Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New создает планировщик, расписание проверяется сразу
func New(useCase HorizonUseCase, cfg Config, logger Logger) (*Scheduler, error) {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	c := cron.New(cron.WithLocation(cfg.Location))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron:    c,
		useCase: useCase,
		logger:  logger,
		cfg:     cfg,
		ctx:     ctx,
		cancel:  cancel,
	}

	if _, err := c.AddFunc(cfg.Schedule, func() { s.RunOnce(s.ctx, false) }); err != nil {
		cancel()
		return nil, fmt.Errorf("scheduler: invalid schedule %q: %w", cfg.Schedule, err)
	}

	return s, nil
}

// Start запускает cron и, если настроено, стартовый прогон
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler: slot generation scheduled at %q (%s)", s.cfg.Schedule, s.cfg.Location)

	if s.cfg.RunOnStartup {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.RunOnce(s.ctx, s.cfg.Backfill)
		}()
	}
}

// Stop останавливает расписание и ждёт завершения текущих прогонов
func (s *Scheduler) Stop(ctx context.Context) error {
	s.cancel()
	cronCtx := s.cron.Stop()

	done := make(chan struct{})
	go func() {
		<-cronCtx.Done()
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler: stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler: stop: %w", ctx.Err())
	}
}

// Next время следующего запуска по расписанию
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// RunOnce выполняет один прогон генерации
// Конкурентный прогон на ту же дату не считается ошибкой
func (s *Scheduler) RunOnce(ctx context.Context, backfill bool) {
	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	report, err := s.useCase.Execute(ctx, &generateSlots.Request{Backfill: backfill})
	if err != nil {
		if errors.Is(err, generateSlots.ErrAlreadyRunning) {
			s.logger.Warn("Scheduler: slot generation skipped, another run is in progress")
			return
		}
		s.logger.Error("Scheduler: slot generation failed: %v", err)
		return
	}

	s.logger.Info("Scheduler: run=%s target=%s result=%s deleted=%d",
		report.RunID, report.TargetDate, report.Result(), report.DeletedSlots)
}
