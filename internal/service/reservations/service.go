package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-PadelBookingService/internal/service/reservations/models"
)

// Config настройки сервиса запросов по бронированиям
type Config struct {
	StatsTopN int            // лимит топов статистики, по умолчанию domain.DefaultStatsTopN
	Location  *time.Location // часовой пояс клубов, в нём сравниваются дата и время начала
}

// Service сервис чтения бронирований
type Service struct {
	reservationRepo ReservationRepository
	clubRepo        ClubRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	cfg             Config
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	clubRepo ClubRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	cfg Config,
	logger Logger,
) *Service {
	if cfg.StatsTopN <= 0 {
		cfg.StatsTopN = domain.DefaultStatsTopN
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	return &Service{
		reservationRepo: reservationRepo,
		clubRepo:        clubRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		cfg:             cfg,
		logger:          logger,
	}
}

// GetByID получает бронирование с деталями по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	if id <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	details, err := s.reservationRepo.GetDetailsByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainReservation(details)
	return &resp, nil
}

// ListByUser возвращает бронирования пользователя, разделённые на предстоящие и прошедшие
// Прошедшим считается бронирование, время начала которого уже наступило, даже если дата сегодняшняя.
// Предстоящие упорядочены по возрастанию, прошедшие по убыванию
func (s *Service) ListByUser(ctx context.Context, userID int64) (*models.UserReservationsResponse, error) {
	s.logger.Info("ListByUser: fetching reservations for user=%d", userID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	list, err := s.reservationRepo.GetByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().In(s.cfg.Location)
	partition := partitionByNow(list, now)

	s.logger.Info("ListByUser: user=%d has %d upcoming and %d past reservations",
		userID, len(partition.Upcoming), len(partition.Past))
	return models.FromDomainUserReservations(userID, partition), nil
}

// ListByClubAndDate возвращает бронирования клуба на дату по времени начала
func (s *Service) ListByClubAndDate(ctx context.Context, clubID int64, date time.Time) (*models.ClubReservationsResponse, error) {
	s.logger.Info("ListByClubAndDate: club=%d, date=%s", clubID, date.Format(domain.DateFormat))

	if clubID <= 0 {
		return nil, fmt.Errorf("%w: clubID must be positive", ErrInvalidInput)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := s.ensureClub(ctx, "ListByClubAndDate", clubID); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.GetByClubAndDate(ctx, clubID, date)
	if err != nil {
		s.logger.Error("ListByClubAndDate: repository error for club=%d: %v", clubID, err)
		return nil, fmt.Errorf("%w: ListByClubAndDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByClubAndDate: club=%d has %d reservations", clubID, len(list))
	return &models.ClubReservationsResponse{
		ClubID:       clubID,
		Date:         domain.DateOnly(date).Format(domain.DateFormat),
		Reservations: models.FromDomainReservationList(list),
	}, nil
}

// GetClubStats собирает статистику клуба одним снимком (read-only транзакция)
func (s *Service) GetClubStats(ctx context.Context, clubID int64) (*models.ClubStatsResponse, error) {
	s.logger.Info("GetClubStats: club=%d, top=%d", clubID, s.cfg.StatsTopN)

	if clubID <= 0 {
		return nil, fmt.Errorf("%w: clubID must be positive", ErrInvalidInput)
	}

	if err := s.ensureClub(ctx, "GetClubStats", clubID); err != nil {
		return nil, err
	}

	limit := uint64(s.cfg.StatsTopN)
	stats := &domain.ClubStats{ClubID: clubID}

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error

		if stats.TopCourts, err = s.reservationRepo.GetTopCourts(txCtx, clubID, limit); err != nil {
			return fmt.Errorf("top courts: %w", err)
		}
		if stats.TopHours, err = s.reservationRepo.GetTopHours(txCtx, clubID, limit); err != nil {
			return fmt.Errorf("top hours: %w", err)
		}
		if stats.TopCustomers, err = s.reservationRepo.GetTopCustomers(txCtx, clubID, limit); err != nil {
			return fmt.Errorf("top customers: %w", err)
		}
		if stats.MonthlyRevenue, err = s.reservationRepo.GetMonthlyRevenue(txCtx, clubID); err != nil {
			return fmt.Errorf("monthly revenue: %w", err)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("GetClubStats: failed for club=%d: %v", clubID, err)
		return nil, fmt.Errorf("%w: GetClubStats - %v", ErrInternal, err)
	}

	return models.FromDomainClubStats(stats), nil
}

func (s *Service) ensureClub(ctx context.Context, op string, clubID int64) error {
	exists, err := s.clubRepo.Exists(ctx, clubID)
	if err != nil {
		s.logger.Error("%s: failed to check club=%d: %v", op, clubID, err)
		return fmt.Errorf("%w: %s - check club: %v", ErrInternal, op, err)
	}
	if !exists {
		s.logger.Warn("%s: club=%d not found", op, clubID)
		return ErrClubNotFound
	}
	return nil
}

// partitionByNow делит упорядоченный по возрастанию список на предстоящие и прошедшие
func partitionByNow(list []domain.ReservationDetails, now time.Time) domain.UserReservations {
	result := domain.UserReservations{
		Upcoming: make([]domain.ReservationDetails, 0),
		Past:     make([]domain.ReservationDetails, 0),
	}

	for _, r := range list {
		if r.IsPast(now) {
			result.Past = append(result.Past, r)
		} else {
			result.Upcoming = append(result.Upcoming, r)
		}
	}

	// Прошедшие: самые свежие первыми
	for i, j := 0, len(result.Past)-1; i < j; i, j = i+1, j-1 {
		result.Past[i], result.Past[j] = result.Past[j], result.Past[i]
	}

	return result
}
