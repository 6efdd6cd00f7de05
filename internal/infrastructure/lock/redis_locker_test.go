package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/pkg/config"
)

// Requiere un Redis real: REDIS_TEST_ADDR=localhost:6379 go test ./internal/infrastructure/lock/...
func newTestLocker(t *testing.T) *RedisLocker {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR no definido")
	}
	rdb, err := NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedisLocker(rdb)
	l.retries = 1
	l.backoff = 10 * time.Millisecond
	return l
}

func TestRedisLocker_Exclusivo(t *testing.T) {
	l := newTestLocker(t)
	ctx := context.Background()
	key := "test:lock:" + uuid.NewString()

	first, err := l.Obtain(ctx, key, 2*time.Second)
	require.NoError(t, err)

	_, err = l.Obtain(ctx, key, 2*time.Second)
	assert.ErrorIs(t, err, ports.ErrLockNotObtained)

	require.NoError(t, first.Release(ctx))

	again, err := l.Obtain(ctx, key, 2*time.Second)
	require.NoError(t, err)
	require.NoError(t, again.Release(ctx))
}

func TestRedisLocker_ReleaseTrasExpirar(t *testing.T) {
	l := newTestLocker(t)
	ctx := context.Background()

	lk, err := l.Obtain(ctx, "test:lock:"+uuid.NewString(), 20*time.Millisecond)
	require.NoError(t, err)
	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, lk.Release(ctx))
}
