package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/nurpe/billboards/internal/config"
)

var ErrNotObtained = errors.New("lock not obtained")

// Connect opens a redis client and checks it with a ping. An empty address
// returns a nil client: locking is then process-local.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type RedisLocker struct {
	client *redislock.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(client)}
}

// TryLock obtains key without retrying. The returned func releases it.
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return lk.Release, nil
}

// LocalLocker serializes holders within one process.
type LocalLocker struct {
	held chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(chan struct{}, 1)}
}

func (l *LocalLocker) TryLock(_ context.Context, _ string, _ time.Duration) (func(context.Context) error, error) {
	select {
	case l.held <- struct{}{}:
		return func(context.Context) error {
			<-l.held
			return nil
		}, nil
	default:
		return nil, ErrNotObtained
	}
}
