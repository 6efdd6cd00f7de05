package repository

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// MovementFilter filtros de listado.
type MovementFilter struct {
	Type   entity.MovementType
	Status entity.MovementStatus
	Limit  int
	Offset int
}

// MovementRepository puerto para movimientos y sus líneas.
// Create/Update solo tocan la cabecera; las líneas se escriben con CreateLines/DeleteLines
// dentro de la misma transacción.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	Update(ctx context.Context, m *entity.Movement) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f MovementFilter) ([]*entity.Movement, int, error)

	CreateLines(ctx context.Context, movementID string, lines []*entity.MovementLine) error
	DeleteLines(ctx context.Context, movementID string) error
	ListLines(ctx context.Context, movementID string) ([]*entity.MovementLine, error)
}
