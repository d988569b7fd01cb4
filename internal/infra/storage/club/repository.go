package club

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/psqlbuilder"
)

// Колонки клуба без логотипа: байты логотипа нужны только карточке клуба
var clubColumns = []string{
	"id",
	"name",
	"province",
	"address",
	"phone",
	"opening_time",
	"closing_time",
	"description",
	"color",
	"logo_mimetype",
	"map_url",
}

var courtColumns = []string{
	"id",
	"club_id",
	"name",
	"court_type",
	"price",
	"slot_duration_minutes",
}

// Repository репозиторий клубов и кортов (только чтение)
// Клубы и корты создаются и редактируются административной частью системы
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клубов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetAll возвращает все клубы, отсортированные по ID
func (r *Repository) GetAll(ctx context.Context) ([]domain.Club, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(clubColumns...).
		From("clubs").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	clubs := make([]domain.Club, 0)
	for rows.Next() {
		var c domain.Club
		if err := rows.Scan(clubScanDest(&c)...); err != nil {
			return nil, fmt.Errorf("%w: GetAll - scan row: %v", ErrScanRow, err)
		}
		clubs = append(clubs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAll - rows error: %v", ErrScanRow, err)
	}

	return clubs, nil
}

// GetByID получает клуб по ID вместе с логотипом
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Club, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(append(clubColumns, "logo")...).
		From("clubs").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Club
	dest := append(clubScanDest(&c), &c.Logo)

	err = executor.QueryRowContext(ctx, query, args...).Scan(dest...)
	if err == sql.ErrNoRows {
		return nil, ErrClubNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan club: %v", ErrScanRow, err)
	}

	return &c, nil
}

// Exists проверяет существование клуба
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("clubs").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: Exists - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: Exists - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetCourtsByClubID возвращает корты клуба, отсортированные по названию
func (r *Repository) GetCourtsByClubID(ctx context.Context, clubID int64) ([]domain.Court, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(courtColumns...).
		From("courts").
		Where(squirrel.Eq{"club_id": clubID}).
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtsByClubID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCourtsByClubID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	courts := make([]domain.Court, 0)
	for rows.Next() {
		var c domain.Court
		if err := rows.Scan(
			&c.ID,
			&c.ClubID,
			&c.Name,
			&c.Type,
			&c.Price,
			&c.SlotDurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: GetCourtsByClubID - scan row: %v", ErrScanRow, err)
		}
		courts = append(courts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCourtsByClubID - rows error: %v", ErrScanRow, err)
	}

	return courts, nil
}

func clubScanDest(c *domain.Club) []interface{} {
	return []interface{}{
		&c.ID,
		&c.Name,
		&c.Province,
		&c.Address,
		&c.Phone,
		&c.OpeningTime,
		&c.ClosingTime,
		&c.Description,
		&c.Color,
		&c.LogoMimeType,
		&c.MapURL,
	}
}
