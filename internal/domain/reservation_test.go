package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

func TestReservation_IsPast(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		madrid = time.FixedZone("CET", 3600)
	}
	now := time.Date(2025, 6, 10, 18, 15, 0, 0, madrid)
	today := DateOnly(now)

	tests := []struct {
		name  string
		date  time.Time
		start string
		want  bool
	}{
		{name: "today, started earlier", date: today, start: "17:00", want: true},
		{name: "today, starts later", date: today, start: "19:30", want: false},
		{name: "yesterday, late slot", date: today.AddDate(0, 0, -1), start: "23:00", want: true},
		{name: "tomorrow, early slot", date: today.AddDate(0, 0, 1), start: "08:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reservation{Date: tt.date, StartTime: types.TimeString(tt.start)}
			assert.Equal(t, tt.want, r.IsPast(now))
		})
	}
}

func TestAvailability_Toggled(t *testing.T) {
	assert.Equal(t, AvailabilityReserved, AvailabilityAvailable.Toggled())
	assert.Equal(t, AvailabilityAvailable, AvailabilityReserved.Toggled())
}

func TestIsAllowedSlotDuration(t *testing.T) {
	assert.True(t, IsAllowedSlotDuration(60))
	assert.True(t, IsAllowedSlotDuration(90))
	assert.False(t, IsAllowedSlotDuration(45))
}
