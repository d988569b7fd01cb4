package generate_daily_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	"github.com/m04kA/SMC-PadelBookingService/internal/testutil/memstore"
	"github.com/m04kA/SMC-PadelBookingService/pkg/logger"
	"github.com/m04kA/SMC-PadelBookingService/pkg/metrics"
	"github.com/m04kA/SMC-PadelBookingService/pkg/runlock"
	"github.com/m04kA/SMC-PadelBookingService/pkg/types"
)

type fixedTime struct {
	t time.Time
}

func (f fixedTime) Now() time.Time { return f.t }

var madrid = mustLocation("Europe/Madrid")

func mustLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	store   *memstore.Store
	locker  *runlock.LocalLocker
	metrics *metrics.Metrics
	uc      *UseCase
}

func newFixture(t *testing.T, days int, now time.Time) *fixture {
	t.Helper()

	store := memstore.New()
	store.AddClub(domain.Club{ID: 1, Name: "Padel Norte", OpeningTime: "08:00", ClosingTime: "22:00"})
	store.AddCourt(domain.Court{ID: 10, ClubID: 1, Name: "Central", Type: domain.CourtTypeCovered, Price: 30, SlotDurationMinutes: 90})
	store.AddCourt(domain.Court{ID: 11, ClubID: 1, Name: "Pista 2", Type: domain.CourtTypeOutdoor, Price: 18.5, SlotDurationMinutes: 60})

	locker := runlock.NewLocalLocker()
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())

	uc, err := NewUseCase(
		store.Clubs(),
		store.Slots(),
		store.TxManager(),
		locker,
		m,
		Config{HorizonDays: days, Location: madrid, LockTTL: time.Minute},
		logger.Nop(),
	)
	require.NoError(t, err)
	uc.timeProvider = fixedTime{t: now}

	return &fixture{store: store, locker: locker, metrics: m, uc: uc}
}

// 10:00 в Мадриде 10 июня 2025
var defaultNow = time.Date(2025, 6, 10, 10, 0, 0, 0, madrid)

func TestExecute_GeneratesTargetDate(t *testing.T) {
	f := newFixture(t, 8, defaultNow)

	report, err := f.uc.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	assert.Equal(t, "2025-06-09", report.ExpiredDate)
	assert.Equal(t, "2025-06-18", report.TargetDate)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Courts, 2)
	assert.Equal(t, 2, report.Count(CourtStatusGenerated))
	assert.Equal(t, RunResultSuccess, report.Result())

	central := f.store.SlotsByCourtAndDate(10, date(2025, 6, 18))
	require.Len(t, central, 9)
	assert.Equal(t, types.TimeString("08:00"), central[0].StartTime)
	assert.Equal(t, types.TimeString("09:30"), central[0].EndTime)
	assert.Equal(t, types.TimeString("20:00"), central[8].StartTime)
	assert.Equal(t, types.TimeString("21:30"), central[8].EndTime)

	for i, s := range central {
		assert.Equal(t, 30.0, s.Price)
		assert.Equal(t, domain.AvailabilityAvailable, s.Availability)
		if i > 0 {
			assert.Equal(t, central[i-1].EndTime, s.StartTime, "slots must be contiguous")
		}
	}

	pista := f.store.SlotsByCourtAndDate(11, date(2025, 6, 18))
	require.Len(t, pista, 14)
	assert.Equal(t, types.TimeString("21:00"), pista[13].StartTime)
	assert.Equal(t, types.TimeString("22:00"), pista[13].EndTime)
	assert.Equal(t, 18.5, pista[0].Price)

	assert.Equal(t, float64(23), testutil.ToFloat64(f.metrics.SlotsGenerated.WithLabelValues("test")))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.HorizonRuns.WithLabelValues("test", RunResultSuccess)))
}

func TestExecute_IsIdempotent(t *testing.T) {
	f := newFixture(t, 8, defaultNow)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, nil)
	require.NoError(t, err)
	count := f.store.SlotCount()

	report, err := f.uc.Execute(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, count, f.store.SlotCount())
	assert.Equal(t, 2, report.Count(CourtStatusSkipped))
	assert.Zero(t, report.Count(CourtStatusGenerated))
}

func TestExecute_DeletesOnlyAvailableSlotsOfYesterday(t *testing.T) {
	f := newFixture(t, 8, defaultNow)

	yesterdayFree := f.store.AddSlot(domain.Slot{CourtID: 10, Date: date(2025, 6, 9), StartTime: "08:00", EndTime: "09:30", Availability: domain.AvailabilityAvailable})
	yesterdayTaken := f.store.AddSlot(domain.Slot{CourtID: 10, Date: date(2025, 6, 9), StartTime: "09:30", EndTime: "11:00", Availability: domain.AvailabilityReserved})
	todayFree := f.store.AddSlot(domain.Slot{CourtID: 10, Date: date(2025, 6, 10), StartTime: "08:00", EndTime: "09:30", Availability: domain.AvailabilityAvailable})
	olderFree := f.store.AddSlot(domain.Slot{CourtID: 10, Date: date(2025, 6, 8), StartTime: "08:00", EndTime: "09:30", Availability: domain.AvailabilityAvailable})

	report, err := f.uc.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), report.DeletedSlots)

	_, ok := f.store.Slot(yesterdayFree.ID)
	assert.False(t, ok, "available slot of yesterday must be deleted")

	_, ok = f.store.Slot(yesterdayTaken.ID)
	assert.True(t, ok, "reserved slot must stay")

	_, ok = f.store.Slot(todayFree.ID)
	assert.True(t, ok)

	_, ok = f.store.Slot(olderFree.ID)
	assert.True(t, ok, "only the day before today is purged")
}

func TestExecute_CourtFailureDoesNotAbortRun(t *testing.T) {
	f := newFixture(t, 8, defaultNow)
	f.store.FailCreateBatch(10, errors.New("disk full"))

	report, err := f.uc.Execute(context.Background(), nil)
	require.NoError(t, err)

	require.Len(t, report.Courts, 2)
	byCourt := map[int64]CourtResult{}
	for _, c := range report.Courts {
		byCourt[c.CourtID] = c
	}
	assert.Equal(t, CourtStatusFailed, byCourt[10].Status)
	assert.NotEmpty(t, byCourt[10].Reason)
	assert.Equal(t, CourtStatusGenerated, byCourt[11].Status)
	assert.Equal(t, RunResultPartial, report.Result())

	assert.Empty(t, f.store.SlotsByCourtAndDate(10, date(2025, 6, 18)))
	assert.Len(t, f.store.SlotsByCourtAndDate(11, date(2025, 6, 18)), 14)
}

func TestExecute_MisconfiguredCourtIsReportedAsFailed(t *testing.T) {
	f := newFixture(t, 8, defaultNow)
	f.store.AddCourt(domain.Court{ID: 12, ClubID: 1, Name: "Pista 3", Price: 10, SlotDurationMinutes: 45})

	report, err := f.uc.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Count(CourtStatusFailed))
	assert.Equal(t, 2, report.Count(CourtStatusGenerated))
	assert.Empty(t, f.store.SlotsByCourtAndDate(12, date(2025, 6, 18)))
}

func TestExecute_ClubWithoutOpenWindowIsSkipped(t *testing.T) {
	f := newFixture(t, 8, defaultNow)
	f.store.AddClub(domain.Club{ID: 2, Name: "Cerrado", OpeningTime: "22:00", ClosingTime: "08:00"})
	f.store.AddCourt(domain.Court{ID: 20, ClubID: 2, Name: "Unica", Price: 10, SlotDurationMinutes: 60})

	report, err := f.uc.Execute(context.Background(), nil)
	require.NoError(t, err)

	for _, c := range report.Courts {
		if c.CourtID == 20 {
			assert.Equal(t, CourtStatusSkipped, c.Status)
		}
	}
	assert.Empty(t, f.store.SlotsByCourtAndDate(20, date(2025, 6, 18)))
}

func TestExecute_AlreadyRunning(t *testing.T) {
	f := newFixture(t, 8, defaultNow)
	ctx := context.Background()

	lease, err := f.locker.TryAcquire(ctx, lockKeyPrefix+"2025-06-18", time.Minute)
	require.NoError(t, err)

	_, err = f.uc.Execute(ctx, nil)
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Zero(t, f.store.SlotCount())

	require.NoError(t, lease.Release(ctx))

	_, err = f.uc.Execute(ctx, nil)
	assert.NoError(t, err)
}

func TestExecute_Backfill(t *testing.T) {
	f := newFixture(t, 2, defaultNow)

	report, err := f.uc.Execute(context.Background(), &Request{Backfill: true})
	require.NoError(t, err)

	// 3 даты (сегодня, +1, +2) по 2 корта
	assert.Len(t, report.Courts, 6)
	for _, d := range []time.Time{date(2025, 6, 10), date(2025, 6, 11), date(2025, 6, 12)} {
		assert.Len(t, f.store.SlotsByCourtAndDate(10, d), 9, d.Format(domain.DateFormat))
	}
}

func TestExecute_CourtPriceChangeKeepsGeneratedSlotPrice(t *testing.T) {
	f := newFixture(t, 2, defaultNow)
	ctx := context.Background()
	target := date(2025, 6, 12)

	_, err := f.uc.Execute(ctx, nil)
	require.NoError(t, err)
	require.Len(t, f.store.SlotsByCourtAndDate(10, target), 9)

	f.store.AddCourt(domain.Court{ID: 10, ClubID: 1, Name: "Central", Type: domain.CourtTypeCovered, Price: 99, SlotDurationMinutes: 90})

	report, err := f.uc.Execute(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count(CourtStatusSkipped))

	for _, s := range f.store.SlotsByCourtAndDate(10, target) {
		assert.Equal(t, 30.0, s.Price)
	}

	_, err = f.uc.Execute(ctx, &Request{Backfill: true})
	require.NoError(t, err)

	for _, s := range f.store.SlotsByCourtAndDate(10, target) {
		assert.Equal(t, 30.0, s.Price, "existing date keeps the old price")
	}
	for _, d := range []time.Time{date(2025, 6, 10), date(2025, 6, 11)} {
		generated := f.store.SlotsByCourtAndDate(10, d)
		require.Len(t, generated, 9, d.Format(domain.DateFormat))
		for _, s := range generated {
			assert.Equal(t, 99.0, s.Price, d.Format(domain.DateFormat))
		}
	}
}

func TestExecute_TodayIsComputedInClubTimezone(t *testing.T) {
	// 23:30 UTC 9 июня - уже 10 июня в Мадриде
	f := newFixture(t, 8, time.Date(2025, 6, 9, 23, 30, 0, 0, time.UTC))

	report, err := f.uc.Execute(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-09", report.ExpiredDate)
	assert.Equal(t, "2025-06-18", report.TargetDate)
}

func TestNewUseCase_InvalidConfig(t *testing.T) {
	store := memstore.New()

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "negative horizon", cfg: Config{HorizonDays: -1, Location: time.UTC, LockTTL: time.Minute}},
		{name: "missing location", cfg: Config{HorizonDays: 8, LockTTL: time.Minute}},
		{name: "zero lock ttl", cfg: Config{HorizonDays: 8, Location: time.UTC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewUseCase(store.Clubs(), store.Slots(), store.TxManager(), runlock.NewLocalLocker(), nil, tt.cfg, logger.Nop())
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
