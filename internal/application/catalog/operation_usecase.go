package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// OperationUseCase configuración de operaciones y consulta de medios de pago.
type OperationUseCase struct {
	operations repository.OperationRepository
	methods    repository.PaymentMethodRepository
}

// NewOperationUseCase construye el caso de uso.
func NewOperationUseCase(operations repository.OperationRepository, methods repository.PaymentMethodRepository) *OperationUseCase {
	return &OperationUseCase{operations: operations, methods: methods}
}

// Create registra una operación con código único.
func (uc *OperationUseCase) Create(ctx context.Context, in dto.CreateOperationRequest) (*dto.OperationResponse, error) {
	t := entity.MovementType(in.OperationType)
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tipo de operación %q", domain.ErrValidation, in.OperationType)
	}
	code := strings.ToUpper(strings.TrimSpace(in.OperationCode))
	existing, err := uc.operations.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: operación %s", domain.ErrDuplicate, code)
	}
	now := time.Now()
	op := &entity.Operation{
		ID:              uuid.New().String(),
		Name:            in.Name,
		OperationCode:   code,
		OperationType:   t,
		ChangeInventory: in.ChangeInventory,
		HasFinance:      in.HasFinance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.operations.Create(ctx, op); err != nil {
		return nil, err
	}
	out := dto.ToOperationResponse(op)
	return &out, nil
}

// GetByID obtiene una operación.
func (uc *OperationUseCase) GetByID(ctx context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.operations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}
	out := dto.ToOperationResponse(op)
	return &out, nil
}

// List operaciones ordenadas por código.
func (uc *OperationUseCase) List(ctx context.Context) ([]dto.OperationResponse, error) {
	ops, err := uc.operations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OperationResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, dto.ToOperationResponse(op))
	}
	return out, nil
}

// ListPaymentMethods medios de pago disponibles.
func (uc *OperationUseCase) ListPaymentMethods(ctx context.Context) ([]dto.PaymentMethodResponse, error) {
	methods, err := uc.methods.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PaymentMethodResponse, 0, len(methods))
	for _, m := range methods {
		out = append(out, dto.PaymentMethodResponse{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return out, nil
}
