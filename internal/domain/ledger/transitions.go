package ledger

import (
	"fmt"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// MovementAction acción que solicita un cambio (o verificación) de estado del movimiento.
type MovementAction string

const (
	ActionSend           MovementAction = "send"
	ActionAccept         MovementAction = "accept"
	ActionCancel         MovementAction = "cancel"
	ActionUpdate         MovementAction = "update"
	ActionDelete         MovementAction = "delete"
	ActionPartialPay     MovementAction = "partial_pay"
	ActionPayInFull      MovementAction = "pay_in_full"
	ActionReceivePayment MovementAction = "receive_payment" // solo verificación, sin cambio
)

type movementKey struct {
	from   entity.MovementStatus
	action MovementAction
}

// movementTransitions tabla (estado × acción) → estado. Lo que no está aquí se rechaza.
var movementTransitions = map[movementKey]entity.MovementStatus{
	{entity.MovementStatusDraft, ActionSend}:   entity.MovementStatusSent,
	{entity.MovementStatusDraft, ActionAccept}: entity.MovementStatusAccepted,
	{entity.MovementStatusSent, ActionAccept}:  entity.MovementStatusAccepted,

	{entity.MovementStatusDraft, ActionCancel}:         entity.MovementStatusCanceled,
	{entity.MovementStatusSent, ActionCancel}:          entity.MovementStatusCanceled,
	{entity.MovementStatusAccepted, ActionCancel}:      entity.MovementStatusCanceled,
	{entity.MovementStatusPending, ActionCancel}:       entity.MovementStatusCanceled,
	{entity.MovementStatusPartiallyPaid, ActionCancel}: entity.MovementStatusCanceled,

	{entity.MovementStatusPending, ActionPartialPay}:       entity.MovementStatusPartiallyPaid,
	{entity.MovementStatusPartiallyPaid, ActionPartialPay}: entity.MovementStatusPartiallyPaid,
	{entity.MovementStatusPending, ActionPayInFull}:        entity.MovementStatusPaid,
	{entity.MovementStatusPartiallyPaid, ActionPayInFull}:  entity.MovementStatusPaid,

	{entity.MovementStatusPending, ActionReceivePayment}:       entity.MovementStatusPending,
	{entity.MovementStatusPartiallyPaid, ActionReceivePayment}: entity.MovementStatusPartiallyPaid,

	// update y delete no cambian el estado: la tabla solo dice desde dónde se permiten.
	{entity.MovementStatusDraft, ActionUpdate}:         entity.MovementStatusDraft,
	{entity.MovementStatusSent, ActionUpdate}:          entity.MovementStatusSent,
	{entity.MovementStatusAccepted, ActionUpdate}:      entity.MovementStatusAccepted,
	{entity.MovementStatusPending, ActionUpdate}:       entity.MovementStatusPending,
	{entity.MovementStatusPartiallyPaid, ActionUpdate}: entity.MovementStatusPartiallyPaid,
	{entity.MovementStatusDraft, ActionDelete}:         entity.MovementStatusDraft,
	{entity.MovementStatusPending, ActionDelete}:       entity.MovementStatusPending,
}

// NextMovementStatus devuelve el estado destino o ErrInvalidState si la transición no existe.
func NextMovementStatus(from entity.MovementStatus, action MovementAction) (entity.MovementStatus, error) {
	to, ok := movementTransitions[movementKey{from, action}]
	if !ok {
		return from, fmt.Errorf("%w: no se puede %s un movimiento en estado %s", domain.ErrInvalidState, action, from)
	}
	return to, nil
}

// PaymentAction acción sobre un pago.
type PaymentAction string

const (
	ActionConfirm PaymentAction = "confirm"
	ActionFail    PaymentAction = "fail"
)

type paymentKey struct {
	from   entity.PaymentStatus
	action PaymentAction
}

var paymentTransitions = map[paymentKey]entity.PaymentStatus{
	{entity.PaymentStatusPending, ActionConfirm}: entity.PaymentStatusConfirmed,
	{entity.PaymentStatusPending, ActionFail}:    entity.PaymentStatusFailed,
}

// NextPaymentStatus devuelve el estado destino del pago o ErrInvalidState.
func NextPaymentStatus(from entity.PaymentStatus, action PaymentAction) (entity.PaymentStatus, error) {
	to, ok := paymentTransitions[paymentKey{from, action}]
	if !ok {
		return from, fmt.Errorf("%w: no se puede %s un pago en estado %s", domain.ErrInvalidState, action, from)
	}
	return to, nil
}
