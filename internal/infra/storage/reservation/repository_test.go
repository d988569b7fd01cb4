package reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

var (
	testDate    = time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	testCreated = time.Date(2025, 6, 12, 10, 15, 0, 0, time.UTC)
)

var detailsRowColumns = []string{
	"id", "slot_id", "user_id", "price", "reservation_date", "start_time", "end_time", "created_at",
	"court_id", "court_name", "court_type", "club_id", "club_name", "user_name", "user_email",
}

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	wrapped := dbmetrics.Wrap(db, nil, "test")
	return NewRepository(wrapped), wrapped, mock
}

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`INSERT INTO reservations \(slot_id,user_id,price,reservation_date,start_time,end_time\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6\) RETURNING id, created_at`).
		WithArgs(int64(42), int64(7), 24.5, testDate, "18:00", "19:30").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(101, testCreated))

	res, err := repo.Create(context.Background(), &domain.Reservation{
		SlotID:    42,
		UserID:    7,
		Price:     24.5,
		Date:      testDate,
		StartTime: "18:00",
		EndTime:   "19:30",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(101), res.ID)
	assert.Equal(t, testCreated, res.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{
			name:    "second reservation of the same slot",
			dbErr:   &pq.Error{Code: pqUniqueViolation, Constraint: constraintUniqueSlot},
			wantErr: ErrSlotAlreadyReserved,
		},
		{
			name:    "unknown user",
			dbErr:   &pq.Error{Code: pqForeignKeyViolation, Constraint: constraintUserFK},
			wantErr: ErrUserNotFound,
		},
		{
			name:    "unknown slot",
			dbErr:   &pq.Error{Code: pqForeignKeyViolation, Constraint: constraintSlotFK},
			wantErr: ErrSlotNotFound,
		},
		{
			name:    "unrelated unique violation",
			dbErr:   &pq.Error{Code: pqUniqueViolation, Constraint: "some_other"},
			wantErr: ErrExecQuery,
		},
		{
			name:    "driver error",
			dbErr:   errors.New("connection reset"),
			wantErr: ErrExecQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepo(t)

			mock.ExpectQuery(`INSERT INTO reservations`).WillReturnError(tt.dbErr)

			_, err := repo.Create(context.Background(), &domain.Reservation{
				SlotID: 1, UserID: 2, Date: testDate, StartTime: "09:00", EndTime: "10:00",
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRepository_GetByID_LocksInsideTransaction(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, slot_id, user_id, price, reservation_date, start_time, end_time, created_at FROM reservations WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(101)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow(101, 42, 7, 24.5, testDate, "18:00:00", "19:30:00", testCreated))
	mock.ExpectRollback()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	res, err := repo.GetByID(dbmetrics.WithTx(ctx, tx), 101)
	require.NoError(t, err)
	assert.Equal(t, int64(42), res.SlotID)
	assert.Equal(t, types.TimeString("18:00"), res.StartTime)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`FROM reservations WHERE id = \$1$`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	_, err := repo.GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestRepository_GetDetailsByID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`FROM reservations r JOIN slots s ON s.id = r.slot_id JOIN courts c ON c.id = s.court_id JOIN clubs cl ON cl.id = c.club_id JOIN users u ON u.id = r.user_id WHERE r.id = \$1`).
		WithArgs(int64(101)).
		WillReturnRows(sqlmock.NewRows(detailsRowColumns).
			AddRow(101, 42, 7, 24.5, testDate, "18:00", "19:30", testCreated, 3, "Central", "covered", 1, "Padel Norte", "Ana", "ana@example.com"))

	d, err := repo.GetDetailsByID(context.Background(), 101)
	require.NoError(t, err)
	assert.Equal(t, "Central", d.CourtName)
	assert.Equal(t, domain.CourtTypeCovered, d.CourtType)
	assert.Equal(t, "Padel Norte", d.ClubName)
	assert.Equal(t, "ana@example.com", d.UserEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "existing reservation", affected: 1},
		{name: "missing reservation", affected: 0, wantErr: ErrReservationNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newRepo(t)

			mock.ExpectExec(`DELETE FROM reservations WHERE id = \$1`).
				WithArgs(int64(101)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Delete(context.Background(), 101)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ExistsForSlot(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`SELECT EXISTS \( SELECT 1 FROM reservations WHERE slot_id = \$1 \)`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForSlot(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_GetByUserID(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`WHERE r.user_id = \$1 ORDER BY r.reservation_date ASC, r.start_time ASC, r.id ASC`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(detailsRowColumns).
			AddRow(1, 10, 7, 20.0, testDate, "09:00", "10:00", testCreated, 3, "Central", "covered", 1, "Padel Norte", "Ana", "ana@example.com").
			AddRow(2, 11, 7, 20.0, testDate, "10:00", "11:00", testCreated, 3, "Central", "covered", 1, "Padel Norte", "Ana", "ana@example.com"))

	got, err := repo.GetByUserID(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.TimeString("10:00"), got[1].StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByClubAndDate_Empty(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(`WHERE cl.id = \$1 AND r.reservation_date = \$2 ORDER BY r.start_time ASC, c.name ASC`).
		WithArgs(int64(1), testDate).
		WillReturnRows(sqlmock.NewRows(detailsRowColumns))

	got, err := repo.GetByClubAndDate(context.Background(), 1, testDate)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_Stats(t *testing.T) {
	repo, _, mock := newRepo(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT c.id, c.name, COUNT\(r.id\) AS total FROM reservations r .* WHERE c.club_id = \$1 GROUP BY c.id, c.name ORDER BY total DESC, c.name ASC LIMIT 5`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total"}).
			AddRow(3, "Central", 12).
			AddRow(4, "Pista 2", 4))

	mock.ExpectQuery(`SELECT r.start_time, COUNT\(r.id\) AS total .* GROUP BY r.start_time ORDER BY total DESC, r.start_time ASC LIMIT 5`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"start_time", "total"}).AddRow("19:00:00", 9))

	mock.ExpectQuery(`SELECT u.id, u.name, u.email, COUNT\(r.id\) AS total .* JOIN users u ON u.id = r.user_id WHERE c.club_id = \$1 GROUP BY u.id, u.name, u.email`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "total"}).AddRow(7, "Ana", "ana@example.com", 6))

	mock.ExpectQuery(`SELECT to_char\(r.reservation_date, 'YYYY-MM'\) AS month, COALESCE\(SUM\(r.price\), 0\) AS revenue, COUNT\(r.id\) AS total .* GROUP BY month ORDER BY month ASC`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"month", "revenue", "total"}).
			AddRow("2025-05", 240.0, 10).
			AddRow("2025-06", 120.5, 5))

	courts, err := repo.GetTopCourts(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, []domain.CourtBookingCount{
		{CourtID: 3, CourtName: "Central", Reservations: 12},
		{CourtID: 4, CourtName: "Pista 2", Reservations: 4},
	}, courts)

	hours, err := repo.GetTopHours(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, hours, 1)
	assert.Equal(t, types.TimeString("19:00"), hours[0].StartTime)

	customers, err := repo.GetTopCustomers(ctx, 1, 5)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Ana", customers[0].UserName)

	revenue, err := repo.GetMonthlyRevenue(ctx, 1)
	require.NoError(t, err)
	require.Len(t, revenue, 2)
	assert.Equal(t, "2025-06", revenue[1].Month)
	assert.Equal(t, 120.5, revenue[1].Revenue)

	assert.NoError(t, mock.ExpectationsWereMet())
}
