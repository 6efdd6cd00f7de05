package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

type paymentRepo struct{ v view }

func (r paymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	return r.v.write(ctx, func(st *state) error {
		for _, existing := range st.payments {
			if existing.ID == p.ID || existing.PaymentCode == p.PaymentCode {
				return fmt.Errorf("%w: pago %s", domain.ErrDuplicate, p.PaymentCode)
			}
		}
		st.payments[p.ID] = clonePayment(p)
		return nil
	})
}

func (r paymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.v.read(ctx, func(st *state) error {
		out = clonePayment(st.payments[id])
		return nil
	})
	return out, err
}

func (r paymentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r paymentRepo) CompareAndSetStatus(ctx context.Context, id string, from, to entity.PaymentStatus) (bool, error) {
	var swapped bool
	err := r.v.write(ctx, func(st *state) error {
		p, ok := st.payments[id]
		if !ok || p.Status != from {
			return nil
		}
		p.Status = to
		swapped = true
		return nil
	})
	return swapped, err
}

func (r paymentRepo) ListByMovement(ctx context.Context, movementID string, limit, offset int) ([]*entity.Payment, int, error) {
	var (
		out   []*entity.Payment
		total int
	)
	err := r.v.read(ctx, func(st *state) error {
		var all []*entity.Payment
		for _, p := range st.payments {
			if movementID != "" && p.MovementID != movementID {
				continue
			}
			all = append(all, clonePayment(p))
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].PaymentCode > all[j].PaymentCode
			}
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
		total = len(all)
		out = page(all, limit, offset)
		return nil
	})
	return out, total, err
}

func (r paymentRepo) CountByMovement(ctx context.Context, movementID string) (int, error) {
	n := 0
	err := r.v.read(ctx, func(st *state) error {
		for _, p := range st.payments {
			if p.MovementID == movementID {
				n++
			}
		}
		return nil
	})
	return n, err
}
