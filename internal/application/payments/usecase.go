// Package payments implementa el motor de pagos: registro de abonos pendientes y su
// confirmación con asientos de partida doble.
package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/ledger"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

const lockTTL = 10 * time.Second

// PaymentUseCase casos de uso de pagos.
type PaymentUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	ledger   AccountLedger
	accounts ledger.AccountCodes
	locker   ports.Locker
	metrics  ports.LedgerMetrics
	codes    *ledger.CodeGenerator
	now      func() time.Time
}

// NewPaymentUseCase construye el caso de uso. locker y metrics pueden ser nil.
func NewPaymentUseCase(
	txRunner ports.TxRunner,
	repos repository.Repositories,
	accountLedger AccountLedger,
	accounts ledger.AccountCodes,
	locker ports.Locker,
	metrics ports.LedgerMetrics,
) *PaymentUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &PaymentUseCase{
		txRunner: txRunner,
		repos:    repos,
		ledger:   accountLedger,
		accounts: accounts,
		locker:   locker,
		metrics:  metrics,
		codes:    ledger.NewCodeGenerator(),
		now:      time.Now,
	}
}

// Create registra un pago PENDING contra una venta. No mueve saldos hasta confirmarse.
func (uc *PaymentUseCase) Create(ctx context.Context, actorID string, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	var created *entity.Payment
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		m, err := repos.Movements.GetByID(ctx, in.MovementID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, in.MovementID)
		}
		if m.MovementType != entity.MovementTypeSale {
			return fmt.Errorf("%w: solo se registran pagos sobre ventas", domain.ErrValidation)
		}
		if !in.Amount.IsPositive() {
			return fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrValidation)
		}
		if !ledger.HasCents(in.Amount) {
			return fmt.Errorf("%w: el monto admite como máximo dos decimales", domain.ErrValidation)
		}
		method, err := repos.PaymentMethods.GetByID(ctx, in.PaymentMethodID)
		if err != nil {
			return err
		}
		if method == nil {
			return fmt.Errorf("%w: medio de pago %s", domain.ErrNotFound, in.PaymentMethodID)
		}
		if err := ledger.CheckPayable(m, in.Amount); err != nil {
			return err
		}

		now := uc.now()
		created = &entity.Payment{
			ID:              uuid.New().String(),
			PaymentCode:     uc.codes.Next(ledger.PaymentCodePrefix),
			MovementID:      m.ID,
			Amount:          in.Amount,
			PaymentMethodID: method.ID,
			Notes:           in.Notes,
			Status:          entity.PaymentStatusPending,
			CreatedByID:     actorID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		return repos.Payments.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("payment_id", created.ID).Str("movement_id", created.MovementID).
		Str("amount", created.Amount.StringFixed(2)).Msg("pago registrado")
	out := dto.ToPaymentResponse(created)
	return &out, nil
}

// Confirm confirma un pago PENDING: asienta DEBIT a caja/tarjetas y CREDIT a cuentas por cobrar,
// ajusta ambos saldos y aplica el abono a la venta. Todo o nada.
// Orden de bloqueo: pago → venta → cuenta débito → cuenta crédito.
func (uc *PaymentUseCase) Confirm(ctx context.Context, actorID, id string) (*dto.PaymentResponse, error) {
	if uc.locker != nil {
		lock, err := uc.locker.Obtain(ctx, "lock:payment:"+id, lockTTL)
		switch {
		case errors.Is(err, ports.ErrLockNotObtained):
			log.Warn().Str("payment_id", id).Msg("confirmación concurrente en curso; se delega en el bloqueo de fila")
		case err != nil:
			log.Warn().Err(err).Str("payment_id", id).Msg("lock distribuido no disponible")
		default:
			defer func() {
				if err := lock.Release(context.Background()); err != nil {
					log.Debug().Err(err).Str("payment_id", id).Msg("liberar lock")
				}
			}()
		}
	}

	var (
		confirmed  *entity.Payment
		methodName string
	)
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Payments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: pago %s", domain.ErrNotFound, id)
		}
		next, err := ledger.NextPaymentStatus(p.Status, ledger.ActionConfirm)
		if err != nil {
			return err
		}

		m, err := repos.Movements.GetForUpdate(ctx, p.MovementID)
		if err != nil {
			return err
		}
		if m == nil {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, p.MovementID)
		}
		if err := ledger.CheckPayable(m, p.Amount); err != nil {
			return err
		}

		method, err := repos.PaymentMethods.GetByID(ctx, p.PaymentMethodID)
		if err != nil {
			return err
		}
		if method == nil {
			return fmt.Errorf("%w: medio de pago %s", domain.ErrNotFound, p.PaymentMethodID)
		}
		methodName = method.Name

		debit, err := uc.requireAccount(ctx, repos, uc.accounts.DebitAccountCode(method.Name))
		if err != nil {
			return err
		}
		credit, err := uc.requireAccount(ctx, repos, uc.accounts.Receivable)
		if err != nil {
			return err
		}

		swapped, err := repos.Payments.CompareAndSetStatus(ctx, p.ID, entity.PaymentStatusPending, next)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: el pago %s ya no está PENDING", domain.ErrInvalidState, p.ID)
		}

		now := uc.now()
		entries := ledger.Postings(p, method.Name, debit, credit, now)
		if err := ledger.ValidateBalanced(entries); err != nil {
			return err
		}
		for _, e := range entries {
			if err := repos.Entries.Create(ctx, e); err != nil {
				return err
			}
		}
		if err := uc.ledger.Debit(ctx, repos, debit.ID, p.Amount); err != nil {
			return err
		}
		if err := uc.ledger.Credit(ctx, repos, credit.ID, p.Amount); err != nil {
			return err
		}

		if err := ledger.ApplyPayment(m, p.Amount); err != nil {
			return err
		}
		m.UpdatedByID = actorID
		m.UpdatedAt = now
		if err := repos.Movements.Update(ctx, m); err != nil {
			return err
		}

		p.Status = next
		p.UpdatedAt = now
		p.Entries = entries
		confirmed = p
		return nil
	})
	if err != nil {
		uc.metrics.PaymentRejected(rejectReason(err))
		return nil, err
	}
	uc.metrics.PaymentConfirmed(methodName, confirmed.Amount)
	log.Info().Str("payment_id", confirmed.ID).Str("movement_id", confirmed.MovementID).
		Str("amount", confirmed.Amount.StringFixed(2)).Str("method", methodName).Msg("pago confirmado")
	out := dto.ToPaymentResponse(confirmed)
	return &out, nil
}

// Fail marca un pago PENDING como FAILED. No genera asientos.
func (uc *PaymentUseCase) Fail(ctx context.Context, actorID, id string) (*dto.PaymentResponse, error) {
	var failed *entity.Payment
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Payments.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: pago %s", domain.ErrNotFound, id)
		}
		next, err := ledger.NextPaymentStatus(p.Status, ledger.ActionFail)
		if err != nil {
			return err
		}
		swapped, err := repos.Payments.CompareAndSetStatus(ctx, p.ID, entity.PaymentStatusPending, next)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: el pago %s ya no está PENDING", domain.ErrInvalidState, p.ID)
		}
		p.Status = next
		p.UpdatedAt = uc.now()
		failed = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.PaymentFailed()
	log.Info().Str("payment_id", id).Str("actor", actorID).Msg("pago marcado como fallido")
	out := dto.ToPaymentResponse(failed)
	return &out, nil
}

// Get devuelve el pago con sus asientos.
func (uc *PaymentUseCase) Get(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	p, err := uc.repos.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: pago %s", domain.ErrNotFound, id)
	}
	if p.Entries, err = uc.repos.Entries.ListByPayment(ctx, id); err != nil {
		return nil, err
	}
	out := dto.ToPaymentResponse(p)
	return &out, nil
}

// List pagos paginados, opcionalmente de una sola venta.
func (uc *PaymentUseCase) List(ctx context.Context, in dto.PaymentFilterRequest) (*dto.PaymentListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repos.Payments.ListByMovement(ctx, in.MovementID, in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}
	out := &dto.PaymentListResponse{
		Items: make([]dto.PaymentResponse, 0, len(items)),
		Page:  dto.NewPageResponse(in.PageRequest, total),
	}
	for _, p := range items {
		if p.Entries, err = uc.repos.Entries.ListByPayment(ctx, p.ID); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, dto.ToPaymentResponse(p))
	}
	return out, nil
}

func (uc *PaymentUseCase) requireAccount(ctx context.Context, repos repository.Repositories, code string) (*entity.Account, error) {
	a, err := uc.ledger.FindByCode(ctx, repos, code)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: cuenta %s no existe o está inactiva", domain.ErrFatalConfig, code)
	}
	return a, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrFatalConfig):
		return "config"
	default:
		return "internal"
	}
}
