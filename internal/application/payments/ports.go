package payments

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// AccountLedger mutadores de saldo que corren en la transacción del pago.
// Lo implementa accounting.LedgerUseCase.
type AccountLedger interface {
	FindByCode(ctx context.Context, repos repository.Repositories, code string) (*entity.Account, error)
	Debit(ctx context.Context, repos repository.Repositories, accountID string, amount decimal.Decimal) error
	Credit(ctx context.Context, repos repository.Repositories, accountID string, amount decimal.Decimal) error
}
