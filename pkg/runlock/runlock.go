package runlock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrNotAcquired возвращается, если блокировка уже занята
	ErrNotAcquired = errors.New("runlock: lock is held by another run")

	// ErrBackend возвращается при ошибке хранилища блокировок
	ErrBackend = errors.New("runlock: backend error")
)

// Lease захваченная блокировка
type Lease struct {
	Key     string
	Token   string
	release func(ctx context.Context) error
}

// Release освобождает блокировку, если она всё ещё принадлежит владельцу
func (l *Lease) Release(ctx context.Context) error {
	if l == nil || l.release == nil {
		return nil
	}
	return l.release(ctx)
}

// releaseScript удаляет ключ только если в нём наш токен
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker распределённая блокировка на SET NX PX
type RedisLocker struct {
	client *redis.Client
	prefix string
}

// NewRedisLocker создает блокировку поверх redis клиента
func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix}
}

// TryAcquire пытается захватить блокировку на ttl
func (l *RedisLocker) TryAcquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: SETNX %s: %v", ErrBackend, fullKey, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	return &Lease{
		Key:   fullKey,
		Token: token,
		release: func(ctx context.Context) error {
			if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil && err != redis.Nil {
				return fmt.Errorf("%w: release %s: %v", ErrBackend, fullKey, err)
			}
			return nil
		},
	}, nil
}

// LocalLocker блокировка внутри процесса, используется без redis
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]localEntry
	nowFn func() time.Time
}

type localEntry struct {
	token     string
	expiresAt time.Time
}

// NewLocalLocker создает блокировку внутри процесса
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]localEntry),
		nowFn: time.Now,
	}
}

// TryAcquire пытается захватить блокировку на ttl
func (l *LocalLocker) TryAcquire(_ context.Context, key string, ttl time.Duration) (*Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()
	if entry, ok := l.held[key]; ok && now.Before(entry.expiresAt) {
		return nil, ErrNotAcquired
	}

	token := uuid.NewString()
	l.held[key] = localEntry{token: token, expiresAt: now.Add(ttl)}

	return &Lease{
		Key:   key,
		Token: token,
		release: func(context.Context) error {
			l.mu.Lock()
			defer l.mu.Unlock()
			if entry, ok := l.held[key]; ok && entry.token == token {
				delete(l.held, key)
			}
			return nil
		},
	}, nil
}
