package domain

import (
	"time"

	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

// Availability represents the state of a slot
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityReserved  Availability = "reserved"
)

// IsValid returns true for a known availability state
func (a Availability) IsValid() bool {
	return a == AvailabilityAvailable || a == AvailabilityReserved
}

// Toggled returns the opposite availability state
func (a Availability) Toggled() Availability {
	if a == AvailabilityReserved {
		return AvailabilityAvailable
	}
	return AvailabilityReserved
}

// Slot represents a priced, reservable interval of a court on a calendar date
type Slot struct {
	ID           int64
	CourtID      int64
	Date         time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Price        float64 // цена корта на момент генерации
	Availability Availability
	CreatedAt    time.Time
}

// IsAvailable returns true if the slot can be reserved
func (s *Slot) IsAvailable() bool {
	return s.Availability == AvailabilityAvailable
}

// SlotWithCourt слот вместе с данными его корта
type SlotWithCourt struct {
	Slot
	CourtName       string
	CourtType       CourtType
	DurationMinutes int
}

// CourtSlots слоты одного корта на одну дату
type CourtSlots struct {
	CourtID         int64
	CourtName       string
	CourtType       CourtType
	DurationMinutes int
	Slots           []Slot
}
