package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/reservation"
)

// ReservationRepository бронирования в памяти
// Ограничения БД (уникальность slot_id, внешние ключи) проверяются при Create
type ReservationRepository struct {
	s *Store
}

// Create создает бронирование
func (r *ReservationRepository) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.s.reservationCreateErr; err != nil {
		r.s.reservationCreateErr = nil
		return nil, err
	}
	if _, ok := r.s.data.slots[res.SlotID]; !ok {
		return nil, reservationRepo.ErrSlotNotFound
	}
	if _, ok := r.s.data.users[res.UserID]; !ok {
		return nil, reservationRepo.ErrUserNotFound
	}
	for _, existing := range r.s.data.reservations {
		if existing.SlotID == res.SlotID {
			return nil, reservationRepo.ErrSlotAlreadyReserved
		}
	}

	r.s.data.nextReservationID++
	res.ID = r.s.data.nextReservationID
	res.Date = domain.DateOnly(res.Date)
	res.CreatedAt = r.s.now()
	r.s.data.reservations[res.ID] = *res

	created := *res
	return &created, nil
}

// GetByID возвращает бронирование
func (r *ReservationRepository) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.data.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &res, nil
}

// GetDetailsByID возвращает бронирование с деталями
func (r *ReservationRepository) GetDetailsByID(_ context.Context, id int64) (*domain.ReservationDetails, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res, ok := r.s.data.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	d := r.detailsLocked(res)
	return &d, nil
}

// Delete удаляет бронирование
func (r *ReservationRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.data.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(r.s.data.reservations, id)
	return nil
}

// ExistsForSlot проверяет наличие бронирования слота
func (r *ReservationRepository) ExistsForSlot(_ context.Context, slotID int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, res := range r.s.data.reservations {
		if res.SlotID == slotID {
			return true, nil
		}
	}
	return false, nil
}

// GetByUserID бронирования пользователя по возрастанию даты и времени
func (r *ReservationRepository) GetByUserID(_ context.Context, userID int64) ([]domain.ReservationDetails, error) {
	return r.filter(func(d domain.ReservationDetails) bool {
		return d.UserID == userID
	}, byDateAndStart), nil
}

// GetByClubAndDate бронирования клуба на дату по времени начала
func (r *ReservationRepository) GetByClubAndDate(_ context.Context, clubID int64, date time.Time) ([]domain.ReservationDetails, error) {
	date = domain.DateOnly(date)
	return r.filter(func(d domain.ReservationDetails) bool {
		return d.ClubID == clubID && d.Date.Equal(date)
	}, func(a, b domain.ReservationDetails) bool {
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.CourtName < b.CourtName
	}), nil
}

// GetTopCourts самые бронируемые корты клуба
func (r *ReservationRepository) GetTopCourts(_ context.Context, clubID int64, limit uint64) ([]domain.CourtBookingCount, error) {
	counts := make(map[int64]*domain.CourtBookingCount)
	for _, d := range r.clubDetails(clubID) {
		c, ok := counts[d.CourtID]
		if !ok {
			c = &domain.CourtBookingCount{CourtID: d.CourtID, CourtName: d.CourtName}
			counts[d.CourtID] = c
		}
		c.Reservations++
	}

	result := make([]domain.CourtBookingCount, 0, len(counts))
	for _, c := range counts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Reservations != result[j].Reservations {
			return result[i].Reservations > result[j].Reservations
		}
		return result[i].CourtName < result[j].CourtName
	})
	return truncate(result, limit), nil
}

// GetTopHours самые бронируемые времена начала
func (r *ReservationRepository) GetTopHours(_ context.Context, clubID int64, limit uint64) ([]domain.HourBookingCount, error) {
	counts := make(map[int]*domain.HourBookingCount)
	for _, d := range r.clubDetails(clubID) {
		minutes, _ := d.StartTime.Minutes()
		h, ok := counts[minutes]
		if !ok {
			h = &domain.HourBookingCount{StartTime: d.StartTime}
			counts[minutes] = h
		}
		h.Reservations++
	}

	result := make([]domain.HourBookingCount, 0, len(counts))
	for _, h := range counts {
		result = append(result, *h)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Reservations != result[j].Reservations {
			return result[i].Reservations > result[j].Reservations
		}
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return truncate(result, limit), nil
}

// GetTopCustomers пользователи с наибольшим числом бронирований
func (r *ReservationRepository) GetTopCustomers(_ context.Context, clubID int64, limit uint64) ([]domain.CustomerBookingCount, error) {
	counts := make(map[int64]*domain.CustomerBookingCount)
	for _, d := range r.clubDetails(clubID) {
		c, ok := counts[d.UserID]
		if !ok {
			c = &domain.CustomerBookingCount{UserID: d.UserID, UserName: d.UserName, UserEmail: d.UserEmail}
			counts[d.UserID] = c
		}
		c.Reservations++
	}

	result := make([]domain.CustomerBookingCount, 0, len(counts))
	for _, c := range counts {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Reservations != result[j].Reservations {
			return result[i].Reservations > result[j].Reservations
		}
		return result[i].UserName < result[j].UserName
	})
	return truncate(result, limit), nil
}

// GetMonthlyRevenue выручка по месяцам
func (r *ReservationRepository) GetMonthlyRevenue(_ context.Context, clubID int64) ([]domain.MonthlyRevenue, error) {
	months := make(map[string]*domain.MonthlyRevenue)
	for _, d := range r.clubDetails(clubID) {
		key := d.Date.Format(domain.MonthFormat)
		m, ok := months[key]
		if !ok {
			m = &domain.MonthlyRevenue{Month: key}
			months[key] = m
		}
		m.Revenue += d.Price
		m.Reservations++
	}

	result := make([]domain.MonthlyRevenue, 0, len(months))
	for _, m := range months {
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result, nil
}

func (r *ReservationRepository) clubDetails(clubID int64) []domain.ReservationDetails {
	return r.filter(func(d domain.ReservationDetails) bool {
		return d.ClubID == clubID
	}, byDateAndStart)
}

func (r *ReservationRepository) filter(
	keep func(d domain.ReservationDetails) bool,
	less func(a, b domain.ReservationDetails) bool,
) []domain.ReservationDetails {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]domain.ReservationDetails, 0)
	for _, res := range r.s.data.reservations {
		d := r.detailsLocked(res)
		if keep(d) {
			result = append(result, d)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if less(result[i], result[j]) {
			return true
		}
		if less(result[j], result[i]) {
			return false
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *ReservationRepository) detailsLocked(res domain.Reservation) domain.ReservationDetails {
	d := domain.ReservationDetails{Reservation: res}

	if sl, ok := r.s.data.slots[res.SlotID]; ok {
		if court, ok := r.s.data.courts[sl.CourtID]; ok {
			d.CourtID = court.ID
			d.CourtName = court.Name
			d.CourtType = court.Type
			if club, ok := r.s.data.clubs[court.ClubID]; ok {
				d.ClubID = club.ID
				d.ClubName = club.Name
			}
		}
	}
	if u, ok := r.s.data.users[res.UserID]; ok {
		d.UserName = u.Name
		d.UserEmail = u.Email
	}
	return d
}

func byDateAndStart(a, b domain.ReservationDetails) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.Before(b.Date)
	}
	return a.StartTime.IsBefore(b.StartTime)
}

func truncate[T any](items []T, limit uint64) []T {
	if limit > 0 && uint64(len(items)) > limit {
		return items[:limit]
	}
	return items
}
