package sales

import (
	"context"
	"fmt"

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

// SendQuotation marca la cotización como enviada (DRAFT → SENT).
func (uc *MovementUseCase) SendQuotation(ctx context.Context, actorID, id string) (*dto.MovementResponse, error) {
	return uc.transition(ctx, actorID, id, ledger.ActionSend)
}

// CancelMovement cancela cualquier movimiento que no esté en un estado terminal.
func (uc *MovementUseCase) CancelMovement(ctx context.Context, actorID, id string) (*dto.MovementResponse, error) {
	out, err := uc.transition(ctx, actorID, id, ledger.ActionCancel)
	if err != nil {
		return nil, err
	}
	uc.metrics.MovementCanceled(out.MovementType)
	return out, nil
}

func (uc *MovementUseCase) transition(ctx context.Context, actorID, id string, action ledger.MovementAction) (*dto.MovementResponse, error) {
	var m *entity.Movement
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		var err error
		if m, err = lockMovement(ctx, repos, id); err != nil {
			return err
		}
		if action == ledger.ActionSend && m.MovementType != entity.MovementTypeQuotation {
			return fmt.Errorf("%w: solo se envían cotizaciones", domain.ErrValidation)
		}
		next, err := ledger.NextMovementStatus(m.Status, action)
		if err != nil {
			return err
		}
		m.Status = next
		m.UpdatedByID = actorID
		m.UpdatedAt = uc.now()
		if err := repos.Movements.Update(ctx, m); err != nil {
			return err
		}
		m.Lines, err = repos.Movements.ListLines(ctx, m.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("movement_id", m.ID).Str("action", string(action)).Str("status", string(m.Status)).
		Msg("transición de movimiento")
	out := dto.ToMovementResponse(m)
	return &out, nil
}

// AcceptQuotation acepta una cotización y genera la venta enlazada en la misma transacción.
// La venta copia contacto, total y líneas (con ids nuevos) y queda PENDING con saldo = total.
func (uc *MovementUseCase) AcceptQuotation(ctx context.Context, actorID, id string) (*dto.MovementResponse, error) {
	var sale *entity.Movement
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		q, err := repos.Movements.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if q == nil || q.MovementType != entity.MovementTypeQuotation {
			return fmt.Errorf("%w: cotización %s", domain.ErrNotFound, id)
		}
		next, err := ledger.NextMovementStatus(q.Status, ledger.ActionAccept)
		if err != nil {
			return err
		}
		op, err := repos.Operations.FirstByType(ctx, entity.MovementTypeSale)
		if err != nil {
			return err
		}
		if op == nil {
			return fmt.Errorf("%w: no hay operación de tipo SALE configurada", domain.ErrFatalConfig)
		}
		qLines, err := repos.Movements.ListLines(ctx, q.ID)
		if err != nil {
			return err
		}

		now := uc.now()
		sale = &entity.Movement{
			ID:                uuid.New().String(),
			StockMovementCode: uc.codes.Next(op.OperationCode),
			MovementDate:      now,
			MovementType:      entity.MovementTypeSale,
			OperationID:       op.ID,
			ContactID:         q.ContactID,
			Notes:             q.Notes,
			TotalAmount:       q.TotalAmount,
			PaidAmount:        decimal.Zero,
			BalanceAmount:     q.TotalAmount,
			Status:            entity.MovementStatusPending,
			ConvertedFromID:   q.ID,
			CreatedByID:       actorID,
			UpdatedByID:       actorID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		sale.Lines = make([]*entity.MovementLine, 0, len(qLines))
		for _, l := range qLines {
			sale.Lines = append(sale.Lines, &entity.MovementLine{
				ID:         uuid.New().String(),
				MovementID: sale.ID,
				ProductID:  l.ProductID,
				Quantity:   l.Quantity,
				UnitPrice:  l.UnitPrice,
				Subtotal:   l.Subtotal,
			})
		}

		if err := repos.Movements.Create(ctx, sale); err != nil {
			return err
		}
		if len(sale.Lines) > 0 {
			if err := repos.Movements.CreateLines(ctx, sale.ID, sale.Lines); err != nil {
				return err
			}
		}
		q.Status = next
		q.ConvertedToID = sale.ID
		q.UpdatedByID = actorID
		q.UpdatedAt = now
		return repos.Movements.Update(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.QuotationConverted()
	log.Info().Str("quotation_id", id).Str("sale_id", sale.ID).Str("total", sale.TotalAmount.StringFixed(2)).
		Msg("cotización convertida en venta")
	out := dto.ToMovementResponse(sale)
	return &out, nil
}

// QuotationPDF genera el documento PDF del movimiento (cotización o venta).
func (uc *MovementUseCase) QuotationPDF(ctx context.Context, id string) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("%w: generador de PDF no configurado", domain.ErrFatalConfig)
	}
	m, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	doc := ports.MovementDocument{Movement: m, Products: map[string]*entity.Product{}}
	if doc.Operation, err = uc.repos.Operations.GetByID(ctx, m.OperationID); err != nil {
		return nil, err
	}
	if m.ContactID != "" {
		if doc.Contact, err = uc.repos.Contacts.GetByID(ctx, m.ContactID); err != nil {
			return nil, err
		}
	}
	for _, l := range m.Lines {
		if _, ok := doc.Products[l.ProductID]; ok {
			continue
		}
		p, err := uc.repos.Products.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if p != nil {
			doc.Products[l.ProductID] = p
		}
	}
	return uc.renderer.RenderMovement(doc)
}
