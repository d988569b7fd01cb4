package domain

import "github.com/m04kA/SMC-PadelBookingService/pkg/types"

// CourtBookingCount количество бронирований корта
type CourtBookingCount struct {
	CourtID      int64
	CourtName    string
	Reservations int
}

// HourBookingCount количество бронирований по времени начала слота
type HourBookingCount struct {
	StartTime    types.TimeString
	Reservations int
}

// CustomerBookingCount количество бронирований пользователя
type CustomerBookingCount struct {
	UserID       int64
	UserName     string
	UserEmail    string
	Reservations int
}

// MonthlyRevenue выручка по бронированиям за месяц (YYYY-MM)
type MonthlyRevenue struct {
	Month        string
	Revenue      float64
	Reservations int
}

// ClubStats агрегаты для дашборда клуба
type ClubStats struct {
	ClubID         int64
	TopCourts      []CourtBookingCount
	TopHours       []HourBookingCount
	TopCustomers   []CustomerBookingCount
	MonthlyRevenue []MonthlyRevenue
}
