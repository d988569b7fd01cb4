package generate_daily_slots

import (
	"time"
)

// Config настройки генерации
type Config struct {
	// HorizonDays на сколько дней вперёд от сегодня генерируются слоты
	HorizonDays int
	// Location часовой пояс, в котором определяется "сегодня"
	Location *time.Location
	// LockTTL время жизни блокировки запуска
	LockTTL time.Duration
}

// Request параметры запуска
type Request struct {
	// Backfill генерирует все даты от сегодня до целевой, а не только целевую
	Backfill bool
}

// CourtStatus результат обработки корта на дату
type CourtStatus string

const (
	CourtStatusGenerated CourtStatus = "generated"
	CourtStatusSkipped   CourtStatus = "skipped"
	CourtStatusFailed    CourtStatus = "failed"
)

// Результат запуска для метрик
const (
	RunResultSuccess = "success"
	RunResultPartial = "partial"
	RunResultFailed  = "failed"
	RunResultBusy    = "already_running"
)

// CourtResult результат генерации одного корта на одну дату
type CourtResult struct {
	ClubID       int64       `json:"clubId"`
	CourtID      int64       `json:"courtId"`
	CourtName    string      `json:"courtName"`
	Date         string      `json:"date"`
	Status       CourtStatus `json:"status"`
	SlotsCreated int         `json:"slotsCreated"`
	Reason       string      `json:"reason,omitempty"`
}

// Report отчёт о запуске генерации
type Report struct {
	RunID        string        `json:"runId"`
	ExpiredDate  string        `json:"expiredDate"`
	TargetDate   string        `json:"targetDate"`
	DeletedSlots int64         `json:"deletedSlots"`
	PurgeFailed  bool          `json:"purgeFailed,omitempty"`
	Courts       []CourtResult `json:"courts"`
	StartedAt    time.Time     `json:"startedAt"`
	FinishedAt   time.Time     `json:"finishedAt"`
}

// Count количество кортов с указанным статусом
func (r *Report) Count(status CourtStatus) int {
	n := 0
	for _, c := range r.Courts {
		if c.Status == status {
			n++
		}
	}
	return n
}

// Result итог запуска: failed только если ни один корт не обработан успешно
func (r *Report) Result() string {
	failed := r.Count(CourtStatusFailed)
	switch {
	case failed == 0 && !r.PurgeFailed:
		return RunResultSuccess
	case failed == len(r.Courts) && len(r.Courts) > 0:
		return RunResultFailed
	default:
		return RunResultPartial
	}
}
