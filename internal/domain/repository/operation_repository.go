package repository

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// OperationRepository puerto para las operaciones configuradas.
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	GetByID(ctx context.Context, id string) (*entity.Operation, error)
	GetByCode(ctx context.Context, code string) (*entity.Operation, error)
	// FirstByType devuelve la operación de ese tipo con menor código, o nil.
	FirstByType(ctx context.Context, t entity.MovementType) (*entity.Operation, error)
	List(ctx context.Context) ([]*entity.Operation, error)
}
