package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/psqlbuilder"
)

const tableReservations = "reservations"

var reservationColumns = []string{
	"id",
	"slot_id",
	"user_id",
	"price",
	"reservation_date",
	"start_time",
	"end_time",
	"created_at",
}

var detailsColumns = []string{
	"r.id",
	"r.slot_id",
	"r.user_id",
	"r.price",
	"r.reservation_date",
	"r.start_time",
	"r.end_time",
	"r.created_at",
	"c.id",
	"c.name",
	"c.court_type",
	"cl.id",
	"cl.name",
	"u.name",
	"u.email",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование
// Должен вызываться в одной транзакции с переводом слота в reserved.
// Нарушение уникальности slot_id возвращается как ErrSlotAlreadyReserved
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"slot_id",
			"user_id",
			"price",
			"reservation_date",
			"start_time",
			"end_time",
		).
		Values(
			reservation.SlotID,
			reservation.UserID,
			reservation.Price,
			domain.DateOnly(reservation.Date),
			reservation.StartTime,
			reservation.EndTime,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&reservation.CreatedAt,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return reservation, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From(tableReservations).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var res domain.Reservation
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&res.SlotID,
		&res.UserID,
		&res.Price,
		&res.Date,
		&res.StartTime,
		&res.EndTime,
		&res.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return &res, nil
}

// GetDetailsByID получает бронирование вместе с кортом, клубом и пользователем
func (r *Repository) GetDetailsByID(ctx context.Context, id int64) (*domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - build select query: %v", ErrBuildQuery, err)
	}

	var d domain.ReservationDetails
	err = executor.QueryRowContext(ctx, query, args...).Scan(detailsScanDest(&d)...)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByID - scan reservation: %v", ErrScanRow, err)
	}

	return &d, nil
}

// Delete удаляет бронирование
// Отменённые бронирования не хранятся: их отсутствие и есть признак свободного слота
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableReservations).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// ExistsForSlot проверяет, есть ли бронирование на слот
func (r *Repository) ExistsForSlot(ctx context.Context, slotID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(tableReservations).
		Where(squirrel.Eq{"slot_id": slotID}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsForSlot - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: ExistsForSlot - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// GetByUserID возвращает бронирования пользователя по возрастанию даты и времени
func (r *Repository) GetByUserID(ctx context.Context, userID int64) ([]domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"r.user_id": userID}).
		OrderBy("r.reservation_date ASC", "r.start_time ASC", "r.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

// GetByClubAndDate возвращает бронирования клуба на дату по времени начала
func (r *Repository) GetByClubAndDate(ctx context.Context, clubID int64, date time.Time) ([]domain.ReservationDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := detailsSelect().
		Where(squirrel.Eq{"cl.id": clubID, "r.reservation_date": domain.DateOnly(date)}).
		OrderBy("r.start_time ASC", "c.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClubAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClubAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanDetails(rows)
}

// scanDetails сканирует результаты запроса в слайс бронирований с деталями
func (r *Repository) scanDetails(rows *sql.Rows) ([]domain.ReservationDetails, error) {
	result := make([]domain.ReservationDetails, 0)

	for rows.Next() {
		var d domain.ReservationDetails
		if err := rows.Scan(detailsScanDest(&d)...); err != nil {
			return nil, fmt.Errorf("%w: scanDetails - scan row: %v", ErrScanRow, err)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanDetails - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func detailsSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailsColumns...).
		From("reservations r").
		Join("slots s ON s.id = r.slot_id").
		Join("courts c ON c.id = s.court_id").
		Join("clubs cl ON cl.id = c.club_id").
		Join("users u ON u.id = r.user_id")
}

func detailsScanDest(d *domain.ReservationDetails) []interface{} {
	return []interface{}{
		&d.ID,
		&d.SlotID,
		&d.UserID,
		&d.Price,
		&d.Date,
		&d.StartTime,
		&d.EndTime,
		&d.CreatedAt,
		&d.CourtID,
		&d.CourtName,
		&d.CourtType,
		&d.ClubID,
		&d.ClubName,
		&d.UserName,
		&d.UserEmail,
	}
}

// mapConstraintError переводит нарушения ограничений PostgreSQL в ошибки репозитория
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case pqUniqueViolation:
		if pqErr.Constraint == constraintUniqueSlot {
			return ErrSlotAlreadyReserved
		}
	case pqForeignKeyViolation:
		switch pqErr.Constraint {
		case constraintUserFK:
			return ErrUserNotFound
		case constraintSlotFK:
			return ErrSlotNotFound
		}
	}

	return nil
}
