// Package sales implementa el motor de movimientos: cotizaciones, ventas y documentos de
// inventario, su edición y la conversión cotización → venta.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/ledger"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// MovementUseCase casos de uso de movimientos. Toda escritura corre en una transacción del TxRunner.
type MovementUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	renderer ports.DocumentRenderer
	metrics  ports.LedgerMetrics
	codes    *ledger.CodeGenerator
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso. repos se usa para lecturas fuera de transacción.
// renderer y metrics pueden ser nil.
func NewMovementUseCase(
	txRunner ports.TxRunner,
	repos repository.Repositories,
	renderer ports.DocumentRenderer,
	metrics ports.LedgerMetrics,
) *MovementUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &MovementUseCase{
		txRunner: txRunner,
		repos:    repos,
		renderer: renderer,
		metrics:  metrics,
		codes:    ledger.NewCodeGenerator(),
		now:      time.Now,
	}
}

// Create registra un movimiento con sus líneas en una sola transacción.
// Estado inicial: cotización DRAFT, venta PENDING (saldo = total), entradas/salidas DRAFT.
func (uc *MovementUseCase) Create(ctx context.Context, actorID string, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.OperationID == "" {
		return nil, fmt.Errorf("%w: operation_id es obligatorio", domain.ErrValidation)
	}
	now := uc.now()
	var created *entity.Movement

	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		op, err := repos.Operations.GetByID(ctx, in.OperationID)
		if err != nil {
			return err
		}
		if op == nil {
			return fmt.Errorf("%w: operación %s", domain.ErrNotFound, in.OperationID)
		}

		movementType := op.OperationType
		if in.MovementType != "" {
			movementType = entity.MovementType(in.MovementType)
			if !movementType.Valid() {
				return fmt.Errorf("%w: tipo de movimiento %q", domain.ErrValidation, in.MovementType)
			}
		}
		if movementType.IsCommercial() {
			if err := requireContact(ctx, repos, in.ContactID); err != nil {
				return err
			}
		}

		m := &entity.Movement{
			ID:                uuid.New().String(),
			StockMovementCode: in.StockMovementCode,
			MovementDate:      now,
			MovementType:      movementType,
			OperationID:       op.ID,
			ContactID:         in.ContactID,
			Notes:             in.Notes,
			PaidAmount:        decimal.Zero,
			Status:            initialStatus(movementType),
			CreatedByID:       actorID,
			UpdatedByID:       actorID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if m.StockMovementCode == "" {
			m.StockMovementCode = uc.codes.Next(op.OperationCode)
		}
		if in.MovementDate != nil {
			m.MovementDate = *in.MovementDate
		}
		lines, err := buildLines(ctx, repos, m.ID, in.Lines)
		if err != nil {
			return err
		}
		m.Lines = lines
		if err := ledger.Reprice(m); err != nil {
			return err
		}

		if err := repos.Movements.Create(ctx, m); err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := repos.Movements.CreateLines(ctx, m.ID, lines); err != nil {
				return err
			}
		}
		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("movement_id", created.ID).Str("code", created.StockMovementCode).
		Str("type", string(created.MovementType)).Str("total", created.TotalAmount.StringFixed(2)).
		Msg("movimiento creado")
	out := dto.ToMovementResponse(created)
	return &out, nil
}

// Update modifica cabecera y, si vienen líneas, las reemplaza por completo recalculando
// total y saldo. Todo ocurre con la fila del movimiento bloqueada.
func (uc *MovementUseCase) Update(ctx context.Context, actorID, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	var updated *entity.Movement
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		m, err := lockMovement(ctx, repos, id)
		if err != nil {
			return err
		}
		if _, err := ledger.NextMovementStatus(m.Status, ledger.ActionUpdate); err != nil {
			return fmt.Errorf("%w: no se puede editar un movimiento %s", domain.ErrInvalidState, m.Status)
		}

		if in.MovementDate != nil {
			m.MovementDate = *in.MovementDate
		}
		if in.Notes != nil {
			m.Notes = *in.Notes
		}
		if in.ContactID != nil {
			if m.MovementType.IsCommercial() {
				if err := requireContact(ctx, repos, *in.ContactID); err != nil {
					return err
				}
			}
			m.ContactID = *in.ContactID
		}

		if in.Lines != nil {
			lines, err := buildLines(ctx, repos, m.ID, in.Lines)
			if err != nil {
				return err
			}
			m.Lines = lines
			if err := ledger.Reprice(m); err != nil {
				return err
			}
			if err := repos.Movements.DeleteLines(ctx, m.ID); err != nil {
				return err
			}
			if len(lines) > 0 {
				if err := repos.Movements.CreateLines(ctx, m.ID, lines); err != nil {
					return err
				}
			}
		} else {
			if m.Lines, err = repos.Movements.ListLines(ctx, m.ID); err != nil {
				return err
			}
		}

		m.UpdatedByID = actorID
		m.UpdatedAt = uc.now()
		if err := repos.Movements.Update(ctx, m); err != nil {
			return err
		}
		updated = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := dto.ToMovementResponse(updated)
	return &out, nil
}

// Delete elimina un movimiento en DRAFT o PENDING sin pagos. Las líneas se borran con él.
func (uc *MovementUseCase) Delete(ctx context.Context, id string) error {
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		m, err := lockMovement(ctx, repos, id)
		if err != nil {
			return err
		}
		if _, err := ledger.NextMovementStatus(m.Status, ledger.ActionDelete); err != nil {
			return fmt.Errorf("%w: no se puede eliminar un movimiento %s", domain.ErrInvalidState, m.Status)
		}
		n, err := repos.Payments.CountByMovement(ctx, m.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("%w: el movimiento tiene %d pagos registrados", domain.ErrInvalidState, n)
		}
		if err := repos.Movements.DeleteLines(ctx, m.ID); err != nil {
			return err
		}
		return repos.Movements.Delete(ctx, m.ID)
	})
	if err != nil {
		return err
	}
	log.Info().Str("movement_id", id).Msg("movimiento eliminado")
	return nil
}

// Get devuelve el movimiento con sus líneas.
func (uc *MovementUseCase) Get(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.ToMovementResponse(m)
	return &out, nil
}

// List devuelve movimientos paginados, del más reciente al más antiguo.
func (uc *MovementUseCase) List(ctx context.Context, in dto.MovementFilterRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repos.Movements.List(ctx, repository.MovementFilter{
		Type:   entity.MovementType(in.Type),
		Status: entity.MovementStatus(in.Status),
		Limit:  in.Limit,
		Offset: in.Offset(),
	})
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(items)),
		Page:  dto.NewPageResponse(in.PageRequest, total),
	}
	for _, m := range items {
		if m.Lines, err = uc.repos.Movements.ListLines(ctx, m.ID); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, dto.ToMovementResponse(m))
	}
	return out, nil
}

func (uc *MovementUseCase) load(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := uc.repos.Movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	if m.Lines, err = uc.repos.Movements.ListLines(ctx, id); err != nil {
		return nil, err
	}
	return m, nil
}

func initialStatus(t entity.MovementType) entity.MovementStatus {
	if t == entity.MovementTypeSale {
		return entity.MovementStatusPending
	}
	return entity.MovementStatusDraft
}

// lockMovement lee la cabecera con SELECT FOR UPDATE. No trae líneas.
func lockMovement(ctx context.Context, repos repository.Repositories, id string) (*entity.Movement, error) {
	m, err := repos.Movements.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, id)
	}
	return m, nil
}

func requireContact(ctx context.Context, repos repository.Repositories, contactID string) error {
	if contactID == "" {
		return fmt.Errorf("%w: cotizaciones y ventas requieren contact_id", domain.ErrValidation)
	}
	c, err := repos.Contacts.GetByID(ctx, contactID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: contacto %s", domain.ErrNotFound, contactID)
	}
	return nil
}

// buildLines resuelve cada producto y congela su precio cuando la línea no trae uno.
func buildLines(ctx context.Context, repos repository.Repositories, movementID string, in []dto.MovementLineRequest) ([]*entity.MovementLine, error) {
	lines := make([]*entity.MovementLine, 0, len(in))
	for i, l := range in {
		if l.ProductID == "" {
			return nil, fmt.Errorf("%w: línea %d sin producto", domain.ErrValidation, i+1)
		}
		p, err := repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, l.ProductID)
		}
		price := p.Price
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		lines = append(lines, &entity.MovementLine{
			ID:         uuid.New().String(),
			MovementID: movementID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			UnitPrice:  price,
		})
	}
	return lines, nil
}
