package runlock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_ExclusiveUntilRelease(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	lease, err := l.TryAcquire(ctx, "horizon:2025-06-09", time.Minute)
	require.NoError(t, err)

	_, err = l.TryAcquire(ctx, "horizon:2025-06-09", time.Minute)
	assert.ErrorIs(t, err, ErrNotAcquired)

	other, err := l.TryAcquire(ctx, "horizon:2025-06-10", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, lease.Release(ctx))

	again, err := l.TryAcquire(ctx, "horizon:2025-06-09", time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, lease.Token, again.Token)
}

func TestLocalLocker_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLocker()
	l.nowFn = func() time.Time { return now }

	stale, err := l.TryAcquire(ctx, "k", time.Minute)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	fresh, err := l.TryAcquire(ctx, "k", time.Minute)
	require.NoError(t, err)

	// освобождение устаревшего владельца не снимает чужую блокировку
	require.NoError(t, stale.Release(ctx))
	_, err = l.TryAcquire(ctx, "k", time.Minute)
	assert.ErrorIs(t, err, ErrNotAcquired)

	require.NoError(t, fresh.Release(ctx))
}

func TestRedisLocker(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, "padel:lock:")

	lease, err := l.TryAcquire(ctx, "horizon:2025-06-09", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists("padel:lock:horizon:2025-06-09"))

	_, err = l.TryAcquire(ctx, "horizon:2025-06-09", 30*time.Second)
	assert.ErrorIs(t, err, ErrNotAcquired)

	require.NoError(t, lease.Release(ctx))
	assert.False(t, mr.Exists("padel:lock:horizon:2025-06-09"))

	_, err = l.TryAcquire(ctx, "horizon:2025-06-09", 30*time.Second)
	require.NoError(t, err)

	mr.FastForward(31 * time.Second)
	_, err = l.TryAcquire(ctx, "horizon:2025-06-09", 30*time.Second)
	assert.NoError(t, err)
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLocker(client, "")

	lease, err := l.TryAcquire(ctx, "k", time.Minute)
	require.NoError(t, err)

	require.NoError(t, mr.Set("k", "someone-else"))
	require.NoError(t, lease.Release(ctx))

	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
