// Package ledger contiene las reglas puras del libro de ventas y pagos: totales de líneas,
// tablas de transición de estados, aplicación de pagos y partida doble.
// No depende de persistencia; los casos de uso la invocan dentro de sus transacciones.
package ledger

import (
	"fmt"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MoneyScale decimales con que se almacenan los importes (NUMERIC(18,2)).
const MoneyScale = 2

// HasCents indica si x no tiene más de dos decimales.
func HasCents(x decimal.Decimal) bool {
	return x.Equal(x.Round(MoneyScale))
}

// LineSubtotal = UnitPrice * Quantity.
func LineSubtotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// PriceLines valida cada línea, fija su Subtotal y devuelve la suma (TotalAmount).
func PriceLines(lines []*entity.MovementLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, l := range lines {
		if l == nil || l.ProductID == "" {
			return decimal.Zero, fmt.Errorf("%w: línea %d sin producto", domain.ErrValidation, i+1)
		}
		if l.Quantity <= 0 {
			return decimal.Zero, fmt.Errorf("%w: línea %d con cantidad no positiva", domain.ErrValidation, i+1)
		}
		if l.UnitPrice.IsNegative() {
			return decimal.Zero, fmt.Errorf("%w: línea %d con precio negativo", domain.ErrValidation, i+1)
		}
		if !HasCents(l.UnitPrice) {
			return decimal.Zero, fmt.Errorf("%w: línea %d con precio de más de %d decimales", domain.ErrValidation, i+1, MoneyScale)
		}
		l.Subtotal = LineSubtotal(l.UnitPrice, l.Quantity)
		total = total.Add(l.Subtotal)
	}
	return total, nil
}

// Reprice recalcula TotalAmount y BalanceAmount a partir de las líneas.
// Solo cotizaciones y ventas llevan totales; en entradas y salidas se validan las líneas y
// los importes quedan en cero. Un total menor a lo ya pagado se rechaza, y una venta con
// abonos cuyo nuevo total iguala lo pagado pasa a PAID.
func Reprice(m *entity.Movement) error {
	total, err := PriceLines(m.Lines)
	if err != nil {
		return err
	}
	if !m.MovementType.IsCommercial() {
		m.TotalAmount = decimal.Zero
		m.BalanceAmount = decimal.Zero
		return nil
	}
	if total.LessThan(m.PaidAmount) {
		return fmt.Errorf("%w: el total (%s) no puede ser menor a lo pagado (%s)",
			domain.ErrValidation, total.StringFixed(2), m.PaidAmount.StringFixed(2))
	}
	status := m.Status
	balance := total.Sub(m.PaidAmount)
	if m.MovementType == entity.MovementTypeSale && m.PaidAmount.IsPositive() && balance.IsZero() {
		if status, err = NextMovementStatus(m.Status, ActionPayInFull); err != nil {
			return err
		}
	}
	m.TotalAmount = total
	m.BalanceAmount = balance
	m.Status = status
	return nil
}
