package models

import (
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
)

// Response модели

// ReservationResponse бронирование с кортом, клубом и пользователем
type ReservationResponse struct {
	ID        int64     `json:"id"`
	SlotID    int64     `json:"slotId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	UserEmail string    `json:"userEmail"`
	ClubID    int64     `json:"clubId"`
	ClubName  string    `json:"clubName"`
	CourtID   int64     `json:"courtId"`
	CourtName string    `json:"courtName"`
	CourtType string    `json:"courtType"`
	Date      string    `json:"date"`      // "2025-06-18"
	StartTime string    `json:"startTime"` // "18:00"
	EndTime   string    `json:"endTime"`   // "19:30"
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserReservationsResponse бронирования пользователя: предстоящие и прошедшие
type UserReservationsResponse struct {
	UserID   int64                 `json:"userId"`
	Upcoming []ReservationResponse `json:"upcoming"`
	Past     []ReservationResponse `json:"past"`
}

// ClubReservationsResponse бронирования клуба на дату
type ClubReservationsResponse struct {
	ClubID       int64                 `json:"clubId"`
	Date         string                `json:"date"`
	Reservations []ReservationResponse `json:"reservations"`
}

// CourtCountResponse число бронирований корта
type CourtCountResponse struct {
	CourtID      int64  `json:"courtId"`
	CourtName    string `json:"courtName"`
	Reservations int    `json:"reservations"`
}

// HourCountResponse число бронирований на время начала
type HourCountResponse struct {
	StartTime    string `json:"startTime"`
	Reservations int    `json:"reservations"`
}

// CustomerCountResponse число бронирований пользователя
type CustomerCountResponse struct {
	UserID       int64  `json:"userId"`
	UserName     string `json:"userName"`
	UserEmail    string `json:"userEmail"`
	Reservations int    `json:"reservations"`
}

// MonthlyRevenueResponse выручка за месяц
type MonthlyRevenueResponse struct {
	Month        string  `json:"month"` // "2025-06"
	Revenue      float64 `json:"revenue"`
	Reservations int     `json:"reservations"`
}

// ClubStatsResponse статистика клуба для дашборда
type ClubStatsResponse struct {
	ClubID         int64                    `json:"clubId"`
	TopCourts      []CourtCountResponse     `json:"topCourts"`
	TopHours       []HourCountResponse      `json:"topHours"`
	TopCustomers   []CustomerCountResponse  `json:"topCustomers"`
	MonthlyRevenue []MonthlyRevenueResponse `json:"monthlyRevenue"`
}

// FromDomainReservation конвертирует domain.ReservationDetails в ReservationResponse
func FromDomainReservation(d *domain.ReservationDetails) ReservationResponse {
	return ReservationResponse{
		ID:        d.ID,
		SlotID:    d.SlotID,
		UserID:    d.UserID,
		UserName:  d.UserName,
		UserEmail: d.UserEmail,
		ClubID:    d.ClubID,
		ClubName:  d.ClubName,
		CourtID:   d.CourtID,
		CourtName: d.CourtName,
		CourtType: string(d.CourtType),
		Date:      d.Date.Format(domain.DateFormat),
		StartTime: d.StartTime.String(),
		EndTime:   d.EndTime.String(),
		Price:     d.Price,
		CreatedAt: d.CreatedAt,
	}
}

// FromDomainReservationList конвертирует список бронирований
func FromDomainReservationList(list []domain.ReservationDetails) []ReservationResponse {
	result := make([]ReservationResponse, 0, len(list))
	for i := range list {
		result = append(result, FromDomainReservation(&list[i]))
	}
	return result
}

// FromDomainUserReservations конвертирует разбиение бронирований пользователя
func FromDomainUserReservations(userID int64, r domain.UserReservations) *UserReservationsResponse {
	return &UserReservationsResponse{
		UserID:   userID,
		Upcoming: FromDomainReservationList(r.Upcoming),
		Past:     FromDomainReservationList(r.Past),
	}
}

// FromDomainClubStats конвертирует domain.ClubStats в ClubStatsResponse
func FromDomainClubStats(s *domain.ClubStats) *ClubStatsResponse {
	resp := &ClubStatsResponse{
		ClubID:         s.ClubID,
		TopCourts:      make([]CourtCountResponse, 0, len(s.TopCourts)),
		TopHours:       make([]HourCountResponse, 0, len(s.TopHours)),
		TopCustomers:   make([]CustomerCountResponse, 0, len(s.TopCustomers)),
		MonthlyRevenue: make([]MonthlyRevenueResponse, 0, len(s.MonthlyRevenue)),
	}

	for _, c := range s.TopCourts {
		resp.TopCourts = append(resp.TopCourts, CourtCountResponse{
			CourtID:      c.CourtID,
			CourtName:    c.CourtName,
			Reservations: c.Reservations,
		})
	}
	for _, h := range s.TopHours {
		resp.TopHours = append(resp.TopHours, HourCountResponse{
			StartTime:    h.StartTime.String(),
			Reservations: h.Reservations,
		})
	}
	for _, c := range s.TopCustomers {
		resp.TopCustomers = append(resp.TopCustomers, CustomerCountResponse{
			UserID:       c.UserID,
			UserName:     c.UserName,
			UserEmail:    c.UserEmail,
			Reservations: c.Reservations,
		})
	}
	for _, m := range s.MonthlyRevenue {
		resp.MonthlyRevenue = append(resp.MonthlyRevenue, MonthlyRevenueResponse{
			Month:        m.Month,
			Revenue:      m.Revenue,
			Reservations: m.Reservations,
		})
	}

	return resp
}
