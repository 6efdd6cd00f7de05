package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var (
	_ repository.AccountRepository      = (*AccountRepo)(nil)
	_ repository.AccountEntryRepository = (*AccountEntryRepo)(nil)
)

// AccountRepo plan de cuentas sobre PostgreSQL.
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador.
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, account_code, name, account_type, balance, is_active, created_at, updated_at`

// Create persiste una cuenta.
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.AccountCode, a.Name, string(a.AccountType), a.Balance, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cuenta %s", domain.ErrDuplicate, a.AccountCode)
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// GetByCode obtiene una cuenta por código.
func (r *AccountRepo) GetByCode(ctx context.Context, code string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_code = $1`, code)
}

// GetByCodeForUpdate obtiene la cuenta bloqueando la fila.
func (r *AccountRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Account, error) {
	return r.getOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_code = $1 FOR UPDATE`, code)
}

// AddToBalance incremento atómico del saldo: balance = balance + delta.
func (r *AccountRepo) AddToBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `UPDATE accounts SET balance = balance + $2, updated_at = now() WHERE id = $1`, id, delta)
	if err != nil {
		return fmt.Errorf("update account balance: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
	}
	return nil
}

// ListActive cuentas activas por código.
func (r *AccountRepo) ListActive(ctx context.Context) ([]*entity.Account, error) {
	rows, err := r.q.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE is_active ORDER BY account_code`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

func (r *AccountRepo) getOne(ctx context.Context, query, arg string) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var (
		a entity.Account
		t string
	)
	if err := row.Scan(&a.ID, &a.AccountCode, &a.Name, &t, &a.Balance, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.AccountType = entity.AccountType(t)
	return &a, nil
}

// AccountEntryRepo asientos contables; solo INSERT y SELECT.
type AccountEntryRepo struct {
	q Querier
}

// NewAccountEntryRepository construye el adaptador.
func NewAccountEntryRepository(q Querier) *AccountEntryRepo {
	return &AccountEntryRepo{q: q}
}

const entryColumns = `id, account_id, payment_id, amount, entry_type, description, created_at`

// Create inserta un asiento.
func (r *AccountEntryRepo) Create(ctx context.Context, e *entity.AccountEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO account_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.AccountID, e.PaymentID, e.Amount, string(e.EntryType), e.Description, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account entry: %w", err)
	}
	return nil
}

// ListByAccount asientos de la cuenta, del más reciente al más antiguo.
func (r *AccountEntryRepo) ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.AccountEntry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM account_entries WHERE account_id = $1
		ORDER BY created_at DESC, seq DESC LIMIT $2`, accountID, limit)
}

// ListByPayment asientos generados por un pago.
func (r *AccountEntryRepo) ListByPayment(ctx context.Context, paymentID string) ([]*entity.AccountEntry, error) {
	return r.list(ctx, `SELECT `+entryColumns+` FROM account_entries WHERE payment_id = $1 ORDER BY seq`, paymentID)
}

func (r *AccountEntryRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AccountEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list account entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.AccountEntry
	for rows.Next() {
		var (
			e entity.AccountEntry
			t string
		)
		if err := rows.Scan(&e.ID, &e.AccountID, &e.PaymentID, &e.Amount, &t, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account entry: %w", err)
		}
		e.EntryType = entity.EntryType(t)
		list = append(list, &e)
	}
	return list, rows.Err()
}
