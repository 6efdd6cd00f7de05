package memory

import (
	"time"

	"github.com/jhoicas/Comercial-api/internal/infrastructure/seed"
)

// NewSeededStore store con operaciones, medios de pago y plan de cuentas por defecto.
func NewSeededStore() *Store {
	now := time.Now()
	s := NewStore()
	s.Seed(seed.Operations(now), seed.PaymentMethods(), seed.Accounts(now))
	return s
}
