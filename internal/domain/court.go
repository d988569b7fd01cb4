package domain

// CourtType represents the kind of padel court
type CourtType string

const (
	CourtTypeCovered CourtType = "covered"
	CourtTypeOutdoor CourtType = "outdoor"
	CourtTypeMixed   CourtType = "mixed"
)

// IsValid returns true for a known court type
func (t CourtType) IsValid() bool {
	switch t {
	case CourtTypeCovered, CourtTypeOutdoor, CourtTypeMixed:
		return true
	default:
		return false
	}
}

// Court represents a court owned by a club
// Price and SlotDurationMinutes are copied onto each generated slot
type Court struct {
	ID                  int64
	ClubID              int64
	Name                string
	Type                CourtType
	Price               float64
	SlotDurationMinutes int
}
