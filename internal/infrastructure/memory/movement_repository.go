package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

type movementRepo struct{ v view }

func (r movementRepo) Create(ctx context.Context, m *entity.Movement) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.movements[m.ID]; ok {
			return fmt.Errorf("%w: movimiento %s", domain.ErrDuplicate, m.ID)
		}
		for _, existing := range st.movements {
			if existing.StockMovementCode == m.StockMovementCode {
				return fmt.Errorf("%w: código %s", domain.ErrDuplicate, m.StockMovementCode)
			}
		}
		st.movements[m.ID] = cloneMovement(m)
		return nil
	})
}

func (r movementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var out *entity.Movement
	err := r.v.read(ctx, func(st *state) error {
		out = cloneMovement(st.movements[id])
		return nil
	})
	return out, err
}

// GetForUpdate: Run ya serializa las transacciones, no hace falta bloqueo por fila.
func (r movementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r movementRepo) Update(ctx context.Context, m *entity.Movement) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.movements[m.ID]; !ok {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, m.ID)
		}
		st.movements[m.ID] = cloneMovement(m)
		return nil
	})
}

func (r movementRepo) Delete(ctx context.Context, id string) error {
	return r.v.write(ctx, func(st *state) error {
		delete(st.movements, id)
		delete(st.lines, id)
		return nil
	})
}

func (r movementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, int, error) {
	var (
		out   []*entity.Movement
		total int
	)
	err := r.v.read(ctx, func(st *state) error {
		var all []*entity.Movement
		for _, m := range st.movements {
			if f.Type != "" && m.MovementType != f.Type {
				continue
			}
			if f.Status != "" && m.Status != f.Status {
				continue
			}
			all = append(all, cloneMovement(m))
		}
		sort.Slice(all, func(i, j int) bool {
			if all[i].CreatedAt.Equal(all[j].CreatedAt) {
				return all[i].StockMovementCode > all[j].StockMovementCode
			}
			return all[i].CreatedAt.After(all[j].CreatedAt)
		})
		total = len(all)
		out = page(all, f.Limit, f.Offset)
		return nil
	})
	return out, total, err
}

func (r movementRepo) CreateLines(ctx context.Context, movementID string, lines []*entity.MovementLine) error {
	return r.v.write(ctx, func(st *state) error {
		if _, ok := st.movements[movementID]; !ok {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movementID)
		}
		st.lines[movementID] = append(st.lines[movementID], cloneLines(lines)...)
		return nil
	})
}

func (r movementRepo) DeleteLines(ctx context.Context, movementID string) error {
	return r.v.write(ctx, func(st *state) error {
		delete(st.lines, movementID)
		return nil
	})
}

func (r movementRepo) ListLines(ctx context.Context, movementID string) ([]*entity.MovementLine, error) {
	var out []*entity.MovementLine
	err := r.v.read(ctx, func(st *state) error {
		out = cloneLines(st.lines[movementID])
		return nil
	})
	return out, err
}
