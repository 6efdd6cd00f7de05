package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

type accountRepo struct{ v view }

func (r accountRepo) Create(ctx context.Context, a *entity.Account) error {
	return r.v.write(ctx, func(st *state) error {
		for _, existing := range st.accounts {
			if existing.AccountCode == a.AccountCode {
				return fmt.Errorf("%w: cuenta %s", domain.ErrDuplicate, a.AccountCode)
			}
		}
		st.accounts[a.ID] = cloneAccount(a)
		return nil
	})
}

func (r accountRepo) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var out *entity.Account
	err := r.v.read(ctx, func(st *state) error {
		out = cloneAccount(st.accounts[id])
		return nil
	})
	return out, err
}

func (r accountRepo) GetByCode(ctx context.Context, code string) (*entity.Account, error) {
	var out *entity.Account
	err := r.v.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.AccountCode == code {
				out = cloneAccount(a)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r accountRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Account, error) {
	return r.GetByCode(ctx, code)
}

func (r accountRepo) AddToBalance(ctx context.Context, id string, delta decimal.Decimal) error {
	return r.v.write(ctx, func(st *state) error {
		a, ok := st.accounts[id]
		if !ok {
			return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, id)
		}
		a.Balance = a.Balance.Add(delta)
		return nil
	})
}

func (r accountRepo) ListActive(ctx context.Context) ([]*entity.Account, error) {
	var out []*entity.Account
	err := r.v.read(ctx, func(st *state) error {
		for _, a := range st.accounts {
			if a.IsActive {
				out = append(out, cloneAccount(a))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].AccountCode < out[j].AccountCode })
		return nil
	})
	return out, err
}

type entryRepo struct{ v view }

func (r entryRepo) Create(ctx context.Context, e *entity.AccountEntry) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.accounts[e.AccountID]; !ok {
			return fmt.Errorf("%w: cuenta %s", domain.ErrNotFound, e.AccountID)
		}
		st.entries = append(st.entries, cloneEntry(e))
		return nil
	})
}

func (r entryRepo) ListByAccount(ctx context.Context, accountID string, limit int) ([]*entity.AccountEntry, error) {
	var out []*entity.AccountEntry
	err := r.v.read(ctx, func(st *state) error {
		for i := len(st.entries) - 1; i >= 0; i-- {
			if st.entries[i].AccountID != accountID {
				continue
			}
			out = append(out, cloneEntry(st.entries[i]))
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r entryRepo) ListByPayment(ctx context.Context, paymentID string) ([]*entity.AccountEntry, error) {
	var out []*entity.AccountEntry
	err := r.v.read(ctx, func(st *state) error {
		for _, e := range st.entries {
			if e.PaymentID == paymentID {
				out = append(out, cloneEntry(e))
			}
		}
		return nil
	})
	return out, err
}
