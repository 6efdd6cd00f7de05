package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Plan de cuentas por defecto.
const (
	DefaultCashAccountCode       = "1010" // Caja
	DefaultCardAccountCode       = "1020" // Tarjetas de crédito por cobrar
	DefaultReceivableAccountCode = "1030" // Cuentas por cobrar
)

// AccountCodes cuentas que intervienen al confirmar un pago.
type AccountCodes struct {
	Cash       string
	Card       string
	Receivable string
}

// DefaultAccountCodes devuelve 1010/1020/1030.
func DefaultAccountCodes() AccountCodes {
	return AccountCodes{
		Cash:       DefaultCashAccountCode,
		Card:       DefaultCardAccountCode,
		Receivable: DefaultReceivableAccountCode,
	}
}

// DebitAccountCode elige la cuenta débito según el nombre del medio de pago:
// si contiene "credit" va a tarjetas, cualquier otro (banco incluido) a caja.
func (c AccountCodes) DebitAccountCode(methodName string) string {
	if strings.Contains(strings.ToLower(methodName), "credit") {
		return c.Card
	}
	return c.Cash
}

// Postings arma el par de asientos de un pago confirmado: DEBIT a la cuenta de activo,
// CREDIT a cuentas por cobrar, ambos por el monto del pago.
func Postings(p *entity.Payment, methodName string, debit, credit *entity.Account, now time.Time) []*entity.AccountEntry {
	return []*entity.AccountEntry{
		{
			ID:          uuid.New().String(),
			AccountID:   debit.ID,
			PaymentID:   p.ID,
			Amount:      p.Amount,
			EntryType:   entity.EntryTypeDebit,
			Description: fmt.Sprintf("Pago %s - %s", p.PaymentCode, methodName),
			CreatedAt:   now,
		},
		{
			ID:          uuid.New().String(),
			AccountID:   credit.ID,
			PaymentID:   p.ID,
			Amount:      p.Amount,
			EntryType:   entity.EntryTypeCredit,
			Description: fmt.Sprintf("Pago %s - disminución cuentas por cobrar", p.PaymentCode),
			CreatedAt:   now,
		},
	}
}

// ValidateBalanced exige al menos dos asientos positivos con débitos = créditos.
func ValidateBalanced(entries []*entity.AccountEntry) error {
	if len(entries) < 2 {
		return fmt.Errorf("%w: partida doble requiere al menos dos asientos", domain.ErrValidation)
	}
	debits, credits := decimal.Zero, decimal.Zero
	for _, e := range entries {
		if !e.Amount.IsPositive() {
			return fmt.Errorf("%w: asiento con monto no positivo", domain.ErrValidation)
		}
		switch e.EntryType {
		case entity.EntryTypeDebit:
			debits = debits.Add(e.Amount)
		case entity.EntryTypeCredit:
			credits = credits.Add(e.Amount)
		default:
			return fmt.Errorf("%w: tipo de asiento %q desconocido", domain.ErrValidation, e.EntryType)
		}
	}
	if !debits.Equal(credits) {
		return fmt.Errorf("%w: débitos %s ≠ créditos %s", domain.ErrValidation, debits.StringFixed(2), credits.StringFixed(2))
	}
	return nil
}
