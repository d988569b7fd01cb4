package domain

import "time"

// Default configuration values
const (
	DefaultHorizonDays = 8 // целевая дата генерации: сегодня + DefaultHorizonDays
	DefaultStatsTopN   = 5
)

// AllowedSlotDurations допустимые длительности слота корта в минутах
var AllowedSlotDurations = []int{60, 90}

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// IsAllowedSlotDuration проверяет, что длительность входит в AllowedSlotDurations
func IsAllowedSlotDuration(minutes int) bool {
	for _, d := range AllowedSlotDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// DateOnly календарная дата t как полночь UTC
// В таком виде даты хранятся и сравниваются независимо от часового пояса
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает YYYY-MM-DD в форму DateOnly
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}
