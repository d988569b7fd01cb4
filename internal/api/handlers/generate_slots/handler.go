package generate_slots

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/api/handlers"
	generateDailySlots "github.com/m04kA/SMC-PadelBookingService/internal/usecase/generate_daily_slots"
)

const (
	msgInvalidBackfill = "некорректный параметр backfill, ожидается true или false"
	msgAlreadyRunning  = "генерация слотов уже выполняется, повторите позже"
)

type Handler struct {
	useCase    GenerateDailySlotsUseCase
	runTimeout time.Duration
	logger     Logger
}

// NewHandler runTimeout ограничивает ручной запуск так же, как запуск по расписанию
func NewHandler(useCase GenerateDailySlotsUseCase, runTimeout time.Duration, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// Handle POST /api/v1/admin/slots/generate
// Query params: backfill (опционально) - сгенерировать все даты от сегодня до целевой
// Ручной запуск той же процедуры, что выполняется по расписанию в полночь
// Запуск не привязан к отмене запроса: при обрыве соединения генерация дойдёт до конца
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	backfill := false
	if raw := r.URL.Query().Get("backfill"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("POST /admin/slots/generate - Invalid backfill: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBackfill)
			return
		}
		backfill = parsed
	}

	ctx := context.WithoutCancel(r.Context())
	if h.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.runTimeout)
		defer cancel()

		// ответ должен успеть записаться после окончания прогона
		deadline := time.Now().Add(h.runTimeout + time.Minute)
		if err := http.NewResponseController(w).SetWriteDeadline(deadline); err != nil {
			h.logger.Warn("POST /admin/slots/generate - Failed to extend write deadline: %v", err)
		}
	}

	report, err := h.useCase.Execute(ctx, &generateDailySlots.Request{Backfill: backfill})
	if err != nil {
		switch {
		case errors.Is(err, generateDailySlots.ErrAlreadyRunning):
			h.logger.Warn("POST /admin/slots/generate - Already running")
			handlers.RespondConflict(w, msgAlreadyRunning)

		default:
			h.logger.Error("POST /admin/slots/generate - Failed to generate slots: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/slots/generate - Done: run_id=%s, target=%s, result=%s, generated=%d, failed=%d",
		report.RunID, report.TargetDate, report.Result(),
		report.Count(generateDailySlots.CourtStatusGenerated), report.Count(generateDailySlots.CourtStatusFailed))
	handlers.RespondJSON(w, http.StatusOK, report)
}
