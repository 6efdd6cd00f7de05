package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

type productRepo struct{ v view }

func (r productRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return fmt.Errorf("%w: producto %s", domain.ErrDuplicate, p.ID)
		}
		st.products[p.ID] = cloneProduct(p)
		return nil
	})
}

func (r productRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(ctx, func(st *state) error {
		out = cloneProduct(st.products[id])
		return nil
	})
	return out, err
}

func (r productRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(ctx, func(st *state) error {
		all := make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			all = append(all, cloneProduct(p))
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

type operationRepo struct{ v view }

func (r operationRepo) Create(ctx context.Context, o *entity.Operation) error {
	return r.v.write(ctx, func(st *state) error {
		for _, existing := range st.operations {
			if existing.OperationCode == o.OperationCode {
				return fmt.Errorf("%w: operación %s", domain.ErrDuplicate, o.OperationCode)
			}
		}
		st.operations[o.ID] = cloneOperation(o)
		return nil
	})
}

func (r operationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	var out *entity.Operation
	err := r.v.read(ctx, func(st *state) error {
		out = cloneOperation(st.operations[id])
		return nil
	})
	return out, err
}

func (r operationRepo) GetByCode(ctx context.Context, code string) (*entity.Operation, error) {
	var out *entity.Operation
	err := r.v.read(ctx, func(st *state) error {
		for _, o := range st.operations {
			if o.OperationCode == code {
				out = cloneOperation(o)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r operationRepo) FirstByType(ctx context.Context, t entity.MovementType) (*entity.Operation, error) {
	var out *entity.Operation
	err := r.v.read(ctx, func(st *state) error {
		for _, o := range st.operations {
			if o.OperationType != t {
				continue
			}
			if out == nil || o.OperationCode < out.OperationCode {
				out = cloneOperation(o)
			}
		}
		return nil
	})
	return out, err
}

func (r operationRepo) List(ctx context.Context) ([]*entity.Operation, error) {
	var out []*entity.Operation
	err := r.v.read(ctx, func(st *state) error {
		for _, o := range st.operations {
			out = append(out, cloneOperation(o))
		}
		sort.Slice(out, func(i, j int) bool { return out[i].OperationCode < out[j].OperationCode })
		return nil
	})
	return out, err
}

type contactRepo struct{ v view }

func (r contactRepo) Create(ctx context.Context, c *entity.Contact) error {
	return r.v.write(ctx, func(st *state) error {
		for _, existing := range st.contacts {
			if existing.Email == c.Email {
				return fmt.Errorf("%w: contacto con email %s", domain.ErrDuplicate, c.Email)
			}
		}
		st.contacts[c.ID] = cloneContact(c)
		return nil
	})
}

func (r contactRepo) GetByID(ctx context.Context, id string) (*entity.Contact, error) {
	var out *entity.Contact
	err := r.v.read(ctx, func(st *state) error {
		out = cloneContact(st.contacts[id])
		return nil
	})
	return out, err
}

func (r contactRepo) GetByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	var out *entity.Contact
	err := r.v.read(ctx, func(st *state) error {
		for _, c := range st.contacts {
			if c.Email == email {
				out = cloneContact(c)
				break
			}
		}
		return nil
	})
	return out, err
}

func (r contactRepo) List(ctx context.Context, limit, offset int) ([]*entity.Contact, error) {
	var out []*entity.Contact
	err := r.v.read(ctx, func(st *state) error {
		all := make([]*entity.Contact, 0, len(st.contacts))
		for _, c := range st.contacts {
			all = append(all, cloneContact(c))
		}
		sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
		out = page(all, limit, offset)
		return nil
	})
	return out, err
}

type paymentMethodRepo struct{ v view }

func (r paymentMethodRepo) GetByID(ctx context.Context, id string) (*entity.PaymentMethod, error) {
	var out *entity.PaymentMethod
	err := r.v.read(ctx, func(st *state) error {
		if m, ok := st.methods[id]; ok {
			c := *m
			out = &c
		}
		return nil
	})
	return out, err
}

func (r paymentMethodRepo) List(ctx context.Context) ([]*entity.PaymentMethod, error) {
	var out []*entity.PaymentMethod
	err := r.v.read(ctx, func(st *state) error {
		for _, m := range st.methods {
			c := *m
			out = append(out, &c)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// page aplica limit/offset; limit <= 0 devuelve todo desde offset.
func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	if offset < 0 {
		offset = 0
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
