package ports

import (
	"context"
	"errors"
	"time"
)

// ErrLockNotObtained indica que otro proceso tiene el bloqueo.
var ErrLockNotObtained = errors.New("lock no obtenido")

// Lock es un bloqueo distribuido ya adquirido.
type Lock interface {
	Release(ctx context.Context) error
}

// Locker adquiere bloqueos distribuidos por clave (ej. Redis). Es best-effort: la garantía
// de exactamente-una-vez la da la base de datos.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}
