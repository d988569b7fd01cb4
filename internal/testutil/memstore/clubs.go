package memstore

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	clubRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/club"
)

// ClubRepository клубы и корты в памяти
type ClubRepository struct {
	s *Store
}

// GetAll возвращает клубы по ID
func (r *ClubRepository) GetAll(_ context.Context) ([]domain.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]domain.Club, 0, len(r.s.data.clubs))
	for _, c := range r.s.data.clubs {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GetByID возвращает клуб
func (r *ClubRepository) GetByID(_ context.Context, id int64) (*domain.Club, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.data.clubs[id]
	if !ok {
		return nil, clubRepo.ErrClubNotFound
	}
	return &c, nil
}

// Exists проверяет наличие клуба
func (r *ClubRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.data.clubs[id]
	return ok, nil
}

// GetCourtsByClubID корты клуба по названию
func (r *ClubRepository) GetCourtsByClubID(_ context.Context, clubID int64) ([]domain.Court, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]domain.Court, 0)
	for _, c := range r.s.data.courts {
		if c.ClubID == clubID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name != result[j].Name {
			return result[i].Name < result[j].Name
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}
