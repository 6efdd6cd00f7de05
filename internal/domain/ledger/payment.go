package ledger

import (
	"fmt"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CheckPayable verifica que una venta pueda recibir un abono de amount.
// Se usa al crear el pago y de nuevo, con la fila bloqueada, al confirmarlo.
func CheckPayable(m *entity.Movement, amount decimal.Decimal) error {
	if m.MovementType != entity.MovementTypeSale {
		return fmt.Errorf("%w: solo se registran pagos sobre ventas", domain.ErrValidation)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("%w: el monto debe ser mayor a cero", domain.ErrValidation)
	}
	if !HasCents(amount) {
		return fmt.Errorf("%w: el monto %s tiene más de %d decimales", domain.ErrValidation, amount.String(), MoneyScale)
	}
	if _, err := NextMovementStatus(m.Status, ActionReceivePayment); err != nil {
		return err
	}
	if amount.GreaterThan(m.BalanceAmount) {
		return fmt.Errorf("%w: el monto %s supera el saldo %s",
			domain.ErrValidation, amount.StringFixed(2), m.BalanceAmount.StringFixed(2))
	}
	return nil
}

// ApplyPayment suma amount a PaidAmount, recalcula BalanceAmount y mueve el estado:
// PAID si el saldo queda en cero, PARTIALLY_PAID si hay algo pagado.
func ApplyPayment(m *entity.Movement, amount decimal.Decimal) error {
	if err := CheckPayable(m, amount); err != nil {
		return err
	}
	paid := m.PaidAmount.Add(amount)
	balance := m.TotalAmount.Sub(paid)

	action := ActionReceivePayment
	switch {
	case !balance.IsPositive():
		action = ActionPayInFull
	case paid.IsPositive():
		action = ActionPartialPay
	}
	next, err := NextMovementStatus(m.Status, action)
	if err != nil {
		return err
	}
	m.PaidAmount = paid
	m.BalanceAmount = balance
	m.Status = next
	return nil
}
