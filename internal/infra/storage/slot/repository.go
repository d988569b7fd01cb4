package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/psqlbuilder"
)

const tableSlots = "slots"

var slotColumns = []string{
	"id",
	"court_id",
	"slot_date",
	"start_time",
	"end_time",
	"price",
	"availability",
	"created_at",
}

// Repository репозиторий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет слоты одним запросом
// Уже существующие (court_id, slot_date, start_time) пропускаются, возвращается число вставленных строк
func (r *Repository) CreateBatch(ctx context.Context, slots []domain.Slot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(tableSlots).
		Columns("court_id", "slot_date", "start_time", "end_time", "price", "availability")

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.CourtID,
			domain.DateOnly(s.Date),
			s.StartTime,
			s.EndTime,
			s.Price,
			s.Availability,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (court_id, slot_date, start_time) DO NOTHING").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CreateBatch - get rows affected: %v", ErrExecQuery, err)
	}

	return inserted, nil
}

// ExistsForCourtAndDate проверяет, сгенерированы ли уже слоты корта на дату
func (r *Repository) ExistsForCourtAndDate(ctx context.Context, courtID int64, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableSlots).
		Where(squirrel.Eq{"court_id": courtID, "slot_date": domain.DateOnly(date)}).
		Limit(1).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForCourtAndDate - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForCourtAndDate - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// DeleteAvailableByDate удаляет свободные слоты на дату
// Забронированные слоты остаются: на них ссылаются бронирования
func (r *Repository) DeleteAvailableByDate(ctx context.Context, date time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSlots).
		Where(squirrel.Eq{
			"slot_date":    domain.DateOnly(date),
			"availability": domain.AvailabilityAvailable,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableByDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableByDate - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteAvailableByDate - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From(tableSlots).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.CourtID,
		&s.Date,
		&s.StartTime,
		&s.EndTime,
		&s.Price,
		&s.Availability,
		&s.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return &s, nil
}

// MarkReserved переводит слот в reserved только если он сейчас available
// Если ни одна строка не обновлена - возвращает ErrSlotNotAvailable
func (r *Repository) MarkReserved(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("availability", domain.AvailabilityReserved).
		Where(squirrel.Eq{"id": id, "availability": domain.AvailabilityAvailable}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkReserved - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkReserved - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkReserved - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotAvailable
	}

	return nil
}

// MarkAvailable возвращает слот в available только если он сейчас reserved
// Если ни одна строка не обновлена - возвращает ErrSlotNotReserved
func (r *Repository) MarkAvailable(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("availability", domain.AvailabilityAvailable).
		Where(squirrel.Eq{"id": id, "availability": domain.AvailabilityReserved}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkAvailable - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkAvailable - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkAvailable - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotReserved
	}

	return nil
}

// SetAvailability безусловно устанавливает состояние слота
func (r *Repository) SetAvailability(ctx context.Context, id int64, availability domain.Availability) error {
	if !availability.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidAvailability, availability)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableSlots).
		Set("availability", availability).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetAvailability - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// ListByClubAndDate возвращает слоты всех кортов клуба на дату
// Сортировка: название корта, затем время начала
func (r *Repository) ListByClubAndDate(ctx context.Context, clubID int64, date time.Time) ([]domain.SlotWithCourt, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.court_id",
		"s.slot_date",
		"s.start_time",
		"s.end_time",
		"s.price",
		"s.availability",
		"s.created_at",
		"c.name",
		"c.court_type",
		"c.slot_duration_minutes",
	).
		From("slots s").
		Join("courts c ON c.id = s.court_id").
		Where(squirrel.Eq{"c.club_id": clubID, "s.slot_date": domain.DateOnly(date)}).
		OrderBy("c.name ASC", "c.id ASC", "s.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClubAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClubAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.SlotWithCourt, 0)
	for rows.Next() {
		var s domain.SlotWithCourt
		if err := rows.Scan(
			&s.ID,
			&s.CourtID,
			&s.Date,
			&s.StartTime,
			&s.EndTime,
			&s.Price,
			&s.Availability,
			&s.CreatedAt,
			&s.CourtName,
			&s.CourtType,
			&s.DurationMinutes,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByClubAndDate - scan row: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClubAndDate - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
