package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PadelBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-PadelBookingService/internal/infra/storage/slot"
)

var day = time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

func newStoreWithSlot(t *testing.T) (*Store, domain.Slot) {
	t.Helper()
	store := New()
	store.AddClub(domain.Club{ID: 1, Name: "Padel Norte", OpeningTime: "08:00", ClosingTime: "22:00"})
	store.AddCourt(domain.Court{ID: 10, ClubID: 1, Name: "Central", Price: 30, SlotDurationMinutes: 60})
	sl := store.AddSlot(domain.Slot{CourtID: 10, Date: day, StartTime: "09:00", EndTime: "10:00", Price: 30})
	return store, sl
}

func TestTxManager_CommitsOnSuccess(t *testing.T) {
	store, sl := newStoreWithSlot(t)
	ctx := context.Background()

	err := store.TxManager().Do(ctx, func(txCtx context.Context) error {
		return store.Slots().MarkReserved(txCtx, sl.ID)
	})
	require.NoError(t, err)

	got, ok := store.Slot(sl.ID)
	require.True(t, ok)
	assert.Equal(t, domain.AvailabilityReserved, got.Availability)
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	store, sl := newStoreWithSlot(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.TxManager().Do(ctx, func(txCtx context.Context) error {
		require.NoError(t, store.Slots().MarkReserved(txCtx, sl.ID))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, ok := store.Slot(sl.ID)
	require.True(t, ok)
	assert.Equal(t, domain.AvailabilityAvailable, got.Availability)
}

func TestTxManager_NestedCallJoinsOuter(t *testing.T) {
	store, sl := newStoreWithSlot(t)
	ctx := context.Background()
	tx := store.TxManager()

	err := tx.Do(ctx, func(txCtx context.Context) error {
		if err := tx.DoReadOnly(txCtx, func(inner context.Context) error {
			return store.Slots().MarkReserved(inner, sl.ID)
		}); err != nil {
			return err
		}
		return errors.New("outer fails")
	})
	require.Error(t, err)

	got, _ := store.Slot(sl.ID)
	assert.Equal(t, domain.AvailabilityAvailable, got.Availability)
}

func TestTxManager_RestoresOnPanic(t *testing.T) {
	store, sl := newStoreWithSlot(t)

	assert.Panics(t, func() {
		_ = store.TxManager().Do(context.Background(), func(txCtx context.Context) error {
			_ = store.Slots().MarkReserved(txCtx, sl.ID)
			panic("unexpected")
		})
	})

	got, _ := store.Slot(sl.ID)
	assert.Equal(t, domain.AvailabilityAvailable, got.Availability)
}

func TestSlotRepository_MarkReservedTwice(t *testing.T) {
	store, sl := newStoreWithSlot(t)
	ctx := context.Background()

	require.NoError(t, store.Slots().MarkReserved(ctx, sl.ID))
	assert.ErrorIs(t, store.Slots().MarkReserved(ctx, sl.ID), slotRepo.ErrSlotNotAvailable)
}
