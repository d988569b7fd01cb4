package toggle_slot

import (
	"context"

	"github.com/m04kA/SMC-PadelBookingService/internal/service/slots/models"
)

type SlotService interface {
	ToggleAvailability(ctx context.Context, slotID int64) (*models.ToggleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
