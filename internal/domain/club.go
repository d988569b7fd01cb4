package domain

import "github.com/m04kA/SMC-PadelBookingService/pkg/types"

// Club represents a padel club; its opening and closing times bound slot generation
type Club struct {
	ID          int64
	Name        string
	Province    string
	Address     string
	Phone       string
	OpeningTime types.TimeString
	ClosingTime types.TimeString
	Description *string

	// Branding
	Color        *string
	Logo         []byte
	LogoMimeType *string
	MapURL       *string
}

// HasOpenWindow true, если время закрытия клуба позже времени открытия
func (c *Club) HasOpenWindow() bool {
	return c.OpeningTime.Validate() == nil &&
		c.ClosingTime.Validate() == nil &&
		c.OpeningTime.IsBefore(c.ClosingTime)
}
