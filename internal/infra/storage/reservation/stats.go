package reservation

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/psqlbuilder"
)

// clubReservations базовый запрос по бронированиям клуба
func clubReservations(clubID int64, columns ...string) squirrel.SelectBuilder {
	return psqlbuilder.Select(columns...).
		From("reservations r").
		Join("slots s ON s.id = r.slot_id").
		Join("courts c ON c.id = s.court_id").
		Where(squirrel.Eq{"c.club_id": clubID})
}

// GetTopCourts самые бронируемые корты клуба
func (r *Repository) GetTopCourts(ctx context.Context, clubID int64, limit uint64) ([]domain.CourtBookingCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := clubReservations(clubID, "c.id", "c.name", "COUNT(r.id) AS total").
		GroupBy("c.id", "c.name").
		OrderBy("total DESC", "c.name ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopCourts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopCourts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.CourtBookingCount, 0)
	for rows.Next() {
		var c domain.CourtBookingCount
		if err := rows.Scan(&c.CourtID, &c.CourtName, &c.Reservations); err != nil {
			return nil, fmt.Errorf("%w: GetTopCourts - scan row: %v", ErrScanRow, err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTopCourts - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetTopHours самые бронируемые времена начала
func (r *Repository) GetTopHours(ctx context.Context, clubID int64, limit uint64) ([]domain.HourBookingCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := clubReservations(clubID, "r.start_time", "COUNT(r.id) AS total").
		GroupBy("r.start_time").
		OrderBy("total DESC", "r.start_time ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.HourBookingCount, 0)
	for rows.Next() {
		var h domain.HourBookingCount
		if err := rows.Scan(&h.StartTime, &h.Reservations); err != nil {
			return nil, fmt.Errorf("%w: GetTopHours - scan row: %v", ErrScanRow, err)
		}
		result = append(result, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTopHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetTopCustomers пользователи с наибольшим числом бронирований
func (r *Repository) GetTopCustomers(ctx context.Context, clubID int64, limit uint64) ([]domain.CustomerBookingCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := clubReservations(clubID, "u.id", "u.name", "u.email", "COUNT(r.id) AS total").
		Join("users u ON u.id = r.user_id").
		GroupBy("u.id", "u.name", "u.email").
		OrderBy("total DESC", "u.name ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopCustomers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTopCustomers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.CustomerBookingCount, 0)
	for rows.Next() {
		var c domain.CustomerBookingCount
		if err := rows.Scan(&c.UserID, &c.UserName, &c.UserEmail, &c.Reservations); err != nil {
			return nil, fmt.Errorf("%w: GetTopCustomers - scan row: %v", ErrScanRow, err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTopCustomers - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// GetMonthlyRevenue выручка клуба по месяцам
func (r *Repository) GetMonthlyRevenue(ctx context.Context, clubID int64) ([]domain.MonthlyRevenue, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := clubReservations(clubID,
		"to_char(r.reservation_date, 'YYYY-MM') AS month",
		"COALESCE(SUM(r.price), 0) AS revenue",
		"COUNT(r.id) AS total",
	).
		GroupBy("month").
		OrderBy("month ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMonthlyRevenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMonthlyRevenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.MonthlyRevenue, 0)
	for rows.Next() {
		var m domain.MonthlyRevenue
		if err := rows.Scan(&m.Month, &m.Revenue, &m.Reservations); err != nil {
			return nil, fmt.Errorf("%w: GetMonthlyRevenue - scan row: %v", ErrScanRow, err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetMonthlyRevenue - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
