// Package lock implementa ports.Locker sobre Redis con bsm/redislock.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/pkg/config"
)

// NewClient abre el cliente Redis y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: 20,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rdb, nil
}

// RedisLocker adquiere bloqueos con reintento lineal corto antes de rendirse.
type RedisLocker struct {
	client  *redislock.Client
	retries int
	backoff time.Duration
}

// NewRedisLocker crea el locker sobre un cliente ya conectado.
func NewRedisLocker(rdb redislock.RedisClient) *RedisLocker {
	return &RedisLocker{
		client:  redislock.New(rdb),
		retries: 3,
		backoff: 100 * time.Millisecond,
	}
}

// Obtain devuelve ports.ErrLockNotObtained si otro proceso tiene la clave.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (ports.Lock, error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	}
	lk, err := l.client.Obtain(ctx, key, ttl, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ports.ErrLockNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("redis lock %s: %w", key, err)
	}
	return &redisLock{lock: lk}, nil
}

type redisLock struct {
	lock *redislock.Lock
}

// Release ignora ErrLockNotHeld: el TTL ya expiró y otro puede tenerlo.
func (r *redisLock) Release(ctx context.Context) error {
	err := r.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		log.Debug().Str("key", r.lock.Key()).Msg("lock expirado antes de liberar")
		return nil
	}
	return err
}
