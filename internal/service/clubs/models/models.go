package models

import "github.com/m04kA/SMC-PadelBookingService/internal/domain"

// Response модели

// CourtResponse корт клуба
type CourtResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// ClubResponse карточка клуба
// Logo кодируется в base64 (стандартное поведение encoding/json для []byte)
type ClubResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Province     string          `json:"province"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	OpeningTime  string          `json:"openingTime"` // "08:00"
	ClosingTime  string          `json:"closingTime"` // "22:00"
	Description  *string         `json:"description,omitempty"`
	Color        *string         `json:"color,omitempty"`
	Logo         []byte          `json:"logo,omitempty"`
	LogoMimeType *string         `json:"logoMimeType,omitempty"`
	MapURL       *string         `json:"mapUrl,omitempty"`
	Courts       []CourtResponse `json:"courts"`
}

// FromDomainClub конвертирует клуб и его корты в ClubResponse
func FromDomainClub(club *domain.Club, courts []domain.Court) *ClubResponse {
	resp := &ClubResponse{
		ID:           club.ID,
		Name:         club.Name,
		Province:     club.Province,
		Address:      club.Address,
		Phone:        club.Phone,
		OpeningTime:  club.OpeningTime.String(),
		ClosingTime:  club.ClosingTime.String(),
		Description:  club.Description,
		Color:        club.Color,
		Logo:         club.Logo,
		LogoMimeType: club.LogoMimeType,
		MapURL:       club.MapURL,
		Courts:       make([]CourtResponse, 0, len(courts)),
	}

	for _, c := range courts {
		resp.Courts = append(resp.Courts, CourtResponse{
			ID:              c.ID,
			Name:            c.Name,
			Type:            string(c.Type),
			Price:           c.Price,
			DurationMinutes: c.SlotDurationMinutes,
		})
	}

	return resp
}
