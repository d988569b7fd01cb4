package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-PadelBookingService/pkg/logger"
	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var (
	madrid = mustLoad("Europe/Madrid")
	// 2025-06-10 18:15 по времени клуба
	testNow = time.Date(2025, 6, 10, 18, 15, 0, 0, madrid)
	today   = domain.DateOnly(testNow)
)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("CEST", 2*3600)
	}
	return loc
}

func newService(t *testing.T, cfg Config) (*memstore.Store, *Service) {
	t.Helper()

	store := memstore.New()
	store.AddClub(domain.Club{ID: 1, Name: "Padel Norte", OpeningTime: "08:00", ClosingTime: "22:00"})
	store.AddClub(domain.Club{ID: 2, Name: "Padel Sur", OpeningTime: "08:00", ClosingTime: "22:00"})
	store.AddCourt(domain.Court{ID: 10, ClubID: 1, Name: "Central", Type: domain.CourtTypeCovered, Price: 30, SlotDurationMinutes: 90})
	store.AddCourt(domain.Court{ID: 11, ClubID: 1, Name: "Pista 2", Type: domain.CourtTypeOutdoor, Price: 20, SlotDurationMinutes: 60})
	store.AddCourt(domain.Court{ID: 20, ClubID: 2, Name: "Sur 1", Type: domain.CourtTypeMixed, Price: 15, SlotDurationMinutes: 60})
	store.AddUser(memstore.User{ID: 7, Name: "Ana", Email: "ana@example.com"})
	store.AddUser(memstore.User{ID: 8, Name: "Luis", Email: "luis@example.com"})

	if cfg.Location == nil {
		cfg.Location = madrid
	}
	svc := NewService(store.Reservations(), store.Clubs(), store.TxManager(), fixedClock{now: testNow}, cfg, logger.Nop())
	return store, svc
}

// book создает зарезервированный слот и бронирование на него
func book(store *memstore.Store, courtID, userID int64, date time.Time, start, end string, price float64) domain.Reservation {
	slot := store.AddSlot(domain.Slot{
		CourtID:      courtID,
		Date:         date,
		StartTime:    types.TimeString(start),
		EndTime:      types.TimeString(end),
		Price:        price,
		Availability: domain.AvailabilityReserved,
	})
	return store.AddReservation(domain.Reservation{
		SlotID:    slot.ID,
		UserID:    userID,
		Price:     price,
		Date:      date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	})
}

func TestListByUser_PartitionsAroundNow(t *testing.T) {
	store, svc := newService(t, Config{})

	lastWeek := book(store, 10, 7, today.AddDate(0, 0, -7), "10:00", "11:30", 30)
	earlierToday := book(store, 11, 7, today, "17:00", "18:00", 20)
	laterToday := book(store, 11, 7, today, "19:00", "20:00", 20)
	tomorrow := book(store, 10, 7, today.AddDate(0, 0, 1), "08:00", "09:30", 30)
	book(store, 10, 8, today.AddDate(0, 0, 1), "09:30", "11:00", 30)

	resp, err := svc.ListByUser(context.Background(), 7)
	require.NoError(t, err)

	require.Len(t, resp.Upcoming, 2)
	assert.Equal(t, laterToday.ID, resp.Upcoming[0].ID)
	assert.Equal(t, tomorrow.ID, resp.Upcoming[1].ID)

	require.Len(t, resp.Past, 2)
	assert.Equal(t, earlierToday.ID, resp.Past[0].ID, "most recent past reservation first")
	assert.Equal(t, lastWeek.ID, resp.Past[1].ID)

	assert.Equal(t, "Central", resp.Upcoming[1].CourtName)
	assert.Equal(t, "Padel Norte", resp.Upcoming[1].ClubName)
	assert.Equal(t, "19:00", resp.Upcoming[0].StartTime)
}

func TestListByUser_NoReservations(t *testing.T) {
	_, svc := newService(t, Config{})

	resp, err := svc.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	assert.NotNil(t, resp.Upcoming)
	assert.NotNil(t, resp.Past)
	assert.Empty(t, resp.Upcoming)
	assert.Empty(t, resp.Past)
}

func TestListByUser_InvalidUser(t *testing.T) {
	_, svc := newService(t, Config{})

	_, err := svc.ListByUser(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListByClubAndDate(t *testing.T) {
	store, svc := newService(t, Config{})
	ctx := context.Background()

	second := book(store, 10, 7, today, "19:30", "21:00", 30)
	first := book(store, 11, 8, today, "09:00", "10:00", 20)
	book(store, 11, 8, today.AddDate(0, 0, 1), "09:00", "10:00", 20)
	book(store, 20, 7, today, "09:00", "10:00", 15)

	resp, err := svc.ListByClubAndDate(ctx, 1, today)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-10", resp.Date)
	require.Len(t, resp.Reservations, 2)
	assert.Equal(t, first.ID, resp.Reservations[0].ID)
	assert.Equal(t, "Luis", resp.Reservations[0].UserName)
	assert.Equal(t, second.ID, resp.Reservations[1].ID)

	_, err = svc.ListByClubAndDate(ctx, 99, today)
	assert.ErrorIs(t, err, ErrClubNotFound)

	_, err = svc.ListByClubAndDate(ctx, 1, time.Time{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByID(t *testing.T) {
	store, svc := newService(t, Config{})
	ctx := context.Background()

	res := book(store, 10, 7, today, "19:30", "21:00", 30)

	got, err := svc.GetByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.SlotID, got.SlotID)
	assert.Equal(t, "ana@example.com", got.UserEmail)
	assert.Equal(t, "covered", got.CourtType)
	assert.Equal(t, 30.0, got.Price)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetClubStats(t *testing.T) {
	store, svc := newService(t, Config{StatsTopN: 1})

	may := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)
	book(store, 10, 7, may, "19:30", "21:00", 30)
	book(store, 10, 7, today, "19:30", "21:00", 30)
	book(store, 10, 8, today.AddDate(0, 0, 1), "19:30", "21:00", 30)
	book(store, 11, 8, today, "09:00", "10:00", 20)
	book(store, 20, 8, today, "09:00", "10:00", 15)

	stats, err := svc.GetClubStats(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, stats.TopCourts, 1)
	assert.Equal(t, "Central", stats.TopCourts[0].CourtName)
	assert.Equal(t, 3, stats.TopCourts[0].Reservations)

	require.Len(t, stats.TopHours, 1)
	assert.Equal(t, "19:30", stats.TopHours[0].StartTime)

	require.Len(t, stats.TopCustomers, 1)
	assert.Equal(t, int64(7), stats.TopCustomers[0].UserID)

	require.Len(t, stats.MonthlyRevenue, 2)
	assert.Equal(t, "2025-05", stats.MonthlyRevenue[0].Month)
	assert.Equal(t, 30.0, stats.MonthlyRevenue[0].Revenue)
	assert.Equal(t, "2025-06", stats.MonthlyRevenue[1].Month)
	assert.Equal(t, 80.0, stats.MonthlyRevenue[1].Revenue)
	assert.Equal(t, 3, stats.MonthlyRevenue[1].Reservations)
}

func TestGetClubStats_UnknownClub(t *testing.T) {
	_, svc := newService(t, Config{})

	_, err := svc.GetClubStats(context.Background(), 42)
	assert.ErrorIs(t, err, ErrClubNotFound)
}

type failingTx struct{}

func (failingTx) DoReadOnly(context.Context, func(ctx context.Context) error) error {
	return errors.New("could not begin")
}

func TestGetClubStats_TransactionError(t *testing.T) {
	store, _ := newService(t, Config{})
	svc := NewService(store.Reservations(), store.Clubs(), failingTx{}, fixedClock{now: testNow}, Config{}, logger.Nop())

	_, err := svc.GetClubStats(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestNewService_Defaults(t *testing.T) {
	svc := NewService(nil, nil, nil, &RealTimeProvider{}, Config{}, logger.Nop())
	assert.Equal(t, domain.DefaultStatsTopN, svc.cfg.StatsTopN)
	assert.Equal(t, time.Local, svc.cfg.Location)
}
