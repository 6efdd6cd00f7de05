package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// AccountRepository puerto para el plan de cuentas.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByCode(ctx context.Context, code string) (*entity.Account, error)
	// GetByCodeForUpdate bloquea la fila de la cuenta (SELECT FOR UPDATE).
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Account, error)
	// AddToBalance suma delta (positivo o negativo) al saldo en una sola sentencia.
	AddToBalance(ctx context.Context, id string, delta decimal.Decimal) error
	ListActive(ctx context.Context) ([]*entity.Account, error)
}

// AccountEntryRepository puerto de asientos. Solo inserta y lee: los asientos son inmutables.
type AccountEntryRepository interface {
	Create(ctx context.Context, e *entity.AccountEntry) error
	// ListByAccount del más reciente al más antiguo.
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.AccountEntry, error)
	ListByPayment(ctx context.Context, paymentID string) ([]*entity.AccountEntry, error)
}
