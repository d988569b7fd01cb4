package list_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/slots/models"
)

type SlotService interface {
	ListSlots(ctx context.Context, clubID int64, date time.Time) (*models.ListSlotsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
