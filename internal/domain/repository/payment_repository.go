package repository

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// PaymentRepository puerto para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*entity.Payment, error)
	// GetForUpdate bloquea la fila del pago (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Payment, error)
	// CompareAndSetStatus cambia el estado solo si el actual es from. Devuelve false si otra
	// transacción ya lo cambió.
	CompareAndSetStatus(ctx context.Context, id string, from, to entity.PaymentStatus) (bool, error)
	ListByMovement(ctx context.Context, movementID string, limit, offset int) ([]*entity.Payment, int, error)
	CountByMovement(ctx context.Context, movementID string) (int, error)
}

// PaymentMethodRepository puerto de solo lectura para medios de pago.
type PaymentMethodRepository interface {
	GetByID(ctx context.Context, id string) (*entity.PaymentMethod, error)
	List(ctx context.Context) ([]*entity.PaymentMethod, error)
}
