package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

// SlotRepository слоты в памяти с ошибками из пакета slot
type SlotRepository struct {
	s *Store
}

// CreateBatch вставляет слоты, пропуская дубликаты (court, date, start)
func (r *SlotRepository) CreateBatch(_ context.Context, slots []domain.Slot) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var inserted int64
	for _, sl := range slots {
		if err, ok := r.s.createBatchErrs[sl.CourtID]; ok {
			return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", slotRepo.ErrExecQuery, err)
		}
		if r.existsLocked(sl.CourtID, sl.Date, sl.StartTime) {
			continue
		}
		r.s.insertSlotLocked(sl)
		inserted++
	}
	return inserted, nil
}

func (r *SlotRepository) existsLocked(courtID int64, date time.Time, start types.TimeString) bool {
	date = domain.DateOnly(date)
	for _, sl := range r.s.data.slots {
		if sl.CourtID == courtID && sl.Date.Equal(date) && sl.StartTime.Equal(start) {
			return true
		}
	}
	return false
}

// ExistsForCourtAndDate проверяет наличие слотов корта на дату
func (r *SlotRepository) ExistsForCourtAndDate(_ context.Context, courtID int64, date time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	date = domain.DateOnly(date)
	for _, sl := range r.s.data.slots {
		if sl.CourtID == courtID && sl.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// DeleteAvailableByDate удаляет свободные слоты на дату
func (r *SlotRepository) DeleteAvailableByDate(_ context.Context, date time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	date = domain.DateOnly(date)
	var deleted int64
	for id, sl := range r.s.data.slots {
		if sl.Date.Equal(date) && sl.Availability == domain.AvailabilityAvailable {
			delete(r.s.data.slots, id)
			deleted++
		}
	}
	return deleted, nil
}

// GetByID возвращает слот по ID
func (r *SlotRepository) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.data.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return &sl, nil
}

// MarkReserved переводит свободный слот в reserved
func (r *SlotRepository) MarkReserved(_ context.Context, id int64) error {
	return r.transition(id, domain.AvailabilityAvailable, domain.AvailabilityReserved, slotRepo.ErrSlotNotAvailable)
}

// MarkAvailable переводит занятый слот в available
func (r *SlotRepository) MarkAvailable(_ context.Context, id int64) error {
	return r.transition(id, domain.AvailabilityReserved, domain.AvailabilityAvailable, slotRepo.ErrSlotNotReserved)
}

func (r *SlotRepository) transition(id int64, from, to domain.Availability, errNoRows error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.data.slots[id]
	if !ok || sl.Availability != from {
		return errNoRows
	}
	sl.Availability = to
	r.s.data.slots[id] = sl
	return nil
}

// SetAvailability безусловно устанавливает состояние слота
func (r *SlotRepository) SetAvailability(_ context.Context, id int64, availability domain.Availability) error {
	if !availability.IsValid() {
		return fmt.Errorf("%w: %q", slotRepo.ErrInvalidAvailability, availability)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sl, ok := r.s.data.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	sl.Availability = availability
	r.s.data.slots[id] = sl
	return nil
}

// ListByClubAndDate слоты клуба на дату: название корта, затем время начала
func (r *SlotRepository) ListByClubAndDate(_ context.Context, clubID int64, date time.Time) ([]domain.SlotWithCourt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	date = domain.DateOnly(date)
	result := make([]domain.SlotWithCourt, 0)
	for _, sl := range r.s.data.slots {
		court, ok := r.s.data.courts[sl.CourtID]
		if !ok || court.ClubID != clubID || !sl.Date.Equal(date) {
			continue
		}
		result = append(result, domain.SlotWithCourt{
			Slot:            sl,
			CourtName:       court.Name,
			CourtType:       court.Type,
			DurationMinutes: court.SlotDurationMinutes,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.CourtName != b.CourtName {
			return a.CourtName < b.CourtName
		}
		if a.CourtID != b.CourtID {
			return a.CourtID < b.CourtID
		}
		return a.StartTime.IsBefore(b.StartTime)
	})
	return result, nil
}

func sortSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
}
