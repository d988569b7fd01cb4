package clubs

import (
	"context"
	"errors"
	"fmt"

	clubRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/club"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/clubs/models"
)

// Service сервис чтения клубов
type Service struct {
	clubRepo ClubRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса клубов
func NewService(clubRepo ClubRepository, logger Logger) *Service {
	return &Service{
		clubRepo: clubRepo,
		logger:   logger,
	}
}

// GetByID возвращает карточку клуба вместе с кортами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClubResponse, error) {
	s.logger.Info("GetByID: fetching club id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: clubID must be positive", ErrInvalidInput)
	}

	club, err := s.clubRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clubRepo.ErrClubNotFound) {
			s.logger.Warn("GetByID: club id=%d not found", id)
			return nil, ErrClubNotFound
		}
		s.logger.Error("GetByID: repository error for club id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	courts, err := s.clubRepo.GetCourtsByClubID(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get courts for club id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - get courts: %v", ErrInternal, err)
	}

	return models.FromDomainClub(club, courts), nil
}
