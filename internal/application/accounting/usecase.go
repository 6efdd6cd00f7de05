// Package accounting expone el libro de cuentas: saldos, asientos y los mutadores de saldo
// que el motor de pagos invoca dentro de su transacción.
package accounting

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

const (
	// DefaultHistoryLimit asientos devueltos en el detalle de una cuenta.
	DefaultHistoryLimit = 50
	maxHistoryLimit     = 200
)

// LedgerUseCase casos de uso del plan de cuentas.
type LedgerUseCase struct {
	repos repository.Repositories
	now   func() time.Time
}

// NewLedgerUseCase construye el caso de uso con repositorios fuera de transacción.
func NewLedgerUseCase(repos repository.Repositories) *LedgerUseCase {
	return &LedgerUseCase{repos: repos, now: time.Now}
}

// FindByCode bloquea y devuelve la cuenta activa con ese código, o nil si no existe.
// repos debe estar atado a la transacción del llamador.
func (uc *LedgerUseCase) FindByCode(ctx context.Context, repos repository.Repositories, code string) (*entity.Account, error) {
	a, err := repos.Accounts.GetByCodeForUpdate(ctx, code)
	if err != nil {
		return nil, err
	}
	if a == nil || !a.IsActive {
		return nil, nil
	}
	return a, nil
}

// Debit incrementa el saldo de la cuenta.
func (uc *LedgerUseCase) Debit(ctx context.Context, repos repository.Repositories, accountID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: débito no positivo", domain.ErrValidation)
	}
	return repos.Accounts.AddToBalance(ctx, accountID, amount)
}

// Credit decrementa el saldo de la cuenta.
func (uc *LedgerUseCase) Credit(ctx context.Context, repos repository.Repositories, accountID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: crédito no positivo", domain.ErrValidation)
	}
	return repos.Accounts.AddToBalance(ctx, accountID, amount.Neg())
}

// GetHistory asientos de la cuenta del más reciente al más antiguo.
// limit <= 0 usa DefaultHistoryLimit; el máximo es 200.
func (uc *LedgerUseCase) GetHistory(ctx context.Context, accountID string, limit int) ([]dto.AccountEntryResponse, error) {
	if _, err := uc.getAccount(ctx, accountID); err != nil {
		return nil, err
	}
	entries, err := uc.repos.Entries.ListByAccount(ctx, accountID, clampLimit(limit))
	if err != nil {
		return nil, err
	}
	return dto.ToAccountEntryResponses(entries), nil
}

// GetAccount cuenta con saldo y sus últimos asientos.
func (uc *LedgerUseCase) GetAccount(ctx context.Context, id string) (*dto.AccountDetailResponse, error) {
	a, err := uc.getAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := uc.repos.Entries.ListByAccount(ctx, id, DefaultHistoryLimit)
	if err != nil {
		return nil, err
	}
	return &dto.AccountDetailResponse{
		AccountResponse: dto.ToAccountResponse(a),
		Entries:         dto.ToAccountEntryResponses(entries),
	}, nil
}

// List cuentas activas ordenadas por código.
func (uc *LedgerUseCase) List(ctx context.Context) ([]dto.AccountResponse, error) {
	accounts, err := uc.repos.Accounts.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.ToAccountResponse(a))
	}
	return out, nil
}

// Create da de alta una cuenta con saldo cero.
func (uc *LedgerUseCase) Create(ctx context.Context, in dto.CreateAccountRequest) (*dto.AccountResponse, error) {
	t := entity.AccountType(in.AccountType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de cuenta %q", domain.ErrValidation, in.AccountType)
	}
	existing, err := uc.repos.Accounts.GetByCode(ctx, in.AccountCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrDuplicate, in.AccountCode)
	}
	now := uc.now()
	a := &entity.Account{
		ID:          uuid.New().String(),
		AccountCode: in.AccountCode,
		Name:        in.Name,
		AccountType: t,
		Balance:     decimal.Zero,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repos.Accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	out := dto.ToAccountResponse(a)
	return &out, nil
}

func (uc *LedgerUseCase) getAccount(ctx context.Context, id string) (*entity.Account, error) {
	a, err := uc.repos.Accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
	}
	return a, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}
