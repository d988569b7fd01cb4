package generate_slots

import (
	"context"

	generateDailySlots "github.com/m04kA/SMC-PadelBookingService/internal/usecase/generate_daily_slots"
)

type GenerateDailySlotsUseCase interface {
	Execute(ctx context.Context, req *generateDailySlots.Request) (*generateDailySlots.Report, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
