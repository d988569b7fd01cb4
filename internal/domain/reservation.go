package domain

import (
	"time"

	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

// Reservation represents a user's booking of exactly one slot
// Date, times and price are copied from the slot at booking time
type Reservation struct {
	ID        int64
	SlotID    int64
	UserID    int64
	Price     float64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
}

// StartsAt момент начала бронирования в часовом поясе loc
func (r *Reservation) StartsAt(loc *time.Location) (time.Time, error) {
	y, m, d := r.Date.Date()
	return r.StartTime.OnDate(time.Date(y, m, d, 0, 0, 0, 0, loc))
}

// IsPast true, если бронирование началось раньше now
// Сравниваются дата вместе со временем начала, а не только дата
func (r *Reservation) IsPast(now time.Time) bool {
	start, err := r.StartsAt(now.Location())
	if err != nil {
		return DateOnly(r.Date).Before(DateOnly(now))
	}
	return start.Before(now)
}

// ReservationDetails бронирование вместе с кортом, клубом и пользователем
type ReservationDetails struct {
	Reservation
	CourtID   int64
	CourtName string
	CourtType CourtType
	ClubID    int64
	ClubName  string
	UserName  string
	UserEmail string
}

// UserReservations бронирования пользователя, разделённые относительно текущего момента
type UserReservations struct {
	Upcoming []ReservationDetails
	Past     []ReservationDetails
}
