package models

import (
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
)

// Response модели

// SlotResponse слот корта
type SlotResponse struct {
	SlotID       int64   `json:"slotId"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Price        float64 `json:"price"`
	Availability string  `json:"availability"`
}

// CourtSlotsResponse слоты одного корта
type CourtSlotsResponse struct {
	CourtID         int64          `json:"courtId"`
	CourtName       string         `json:"courtName"`
	CourtType       string         `json:"courtType"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// ListSlotsResponse слоты клуба на дату, сгруппированные по кортам
type ListSlotsResponse struct {
	ClubID int64                `json:"clubId"`
	Date   string               `json:"date"`
	Courts []CourtSlotsResponse `json:"courts"`
}

// ToggleResponse новое состояние слота
type ToggleResponse struct {
	SlotID       int64  `json:"slotId"`
	Availability string `json:"availability"`
}

// FromDomainCourtSlots конвертирует сгруппированные слоты в ответ
func FromDomainCourtSlots(clubID int64, date time.Time, courts []domain.CourtSlots) *ListSlotsResponse {
	resp := &ListSlotsResponse{
		ClubID: clubID,
		Date:   date.Format(domain.DateFormat),
		Courts: make([]CourtSlotsResponse, 0, len(courts)),
	}

	for _, c := range courts {
		court := CourtSlotsResponse{
			CourtID:         c.CourtID,
			CourtName:       c.CourtName,
			CourtType:       string(c.CourtType),
			DurationMinutes: c.DurationMinutes,
			Slots:           make([]SlotResponse, 0, len(c.Slots)),
		}
		for _, s := range c.Slots {
			court.Slots = append(court.Slots, SlotResponse{
				SlotID:       s.ID,
				StartTime:    s.StartTime.String(),
				EndTime:      s.EndTime.String(),
				Price:        s.Price,
				Availability: string(s.Availability),
			})
		}
		resp.Courts = append(resp.Courts, court)
	}

	return resp
}
