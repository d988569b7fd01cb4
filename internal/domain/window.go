package domain

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

// ErrInvalidSlotDuration возвращается при неположительной длительности слота
var ErrInvalidSlotDuration = errors.New("domain: slot duration must be positive")

// Interval полуоткрытый интервал [Start, End) внутри одного дня
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// ExpandWindow разбивает [opening, closing] на подряд идущие интервалы по durationMinutes
// Остаток короче durationMinutes отбрасывается
// Пустое или перевёрнутое окно даёт пустой список
func ExpandWindow(opening, closing types.TimeString, durationMinutes int) ([]Interval, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlotDuration, durationMinutes)
	}

	open, err := opening.Minutes()
	if err != nil {
		return nil, fmt.Errorf("opening time: %w", err)
	}
	closeAt, err := closing.Minutes()
	if err != nil {
		return nil, fmt.Errorf("closing time: %w", err)
	}

	intervals := make([]Interval, 0, max(0, (closeAt-open)/durationMinutes))

	for cursor := open; cursor+durationMinutes <= closeAt; cursor += durationMinutes {
		start, err := types.NewTimeStringFromMinutes(cursor)
		if err != nil {
			return nil, err
		}
		end, err := types.NewTimeStringFromMinutes(cursor + durationMinutes)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}

	return intervals, nil
}
