package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de documento. Replica el tipo de la Operation salvo que se indique otro.
type MovementType string

const (
	MovementTypeQuotation MovementType = "QUOTATION" // cotización
	MovementTypeSale      MovementType = "SALE"      // orden de venta
	MovementTypeIn        MovementType = "IN"        // entrada de inventario
	MovementTypeOut       MovementType = "OUT"       // salida de inventario
)

// Valid indica si el tipo pertenece al conjunto cerrado conocido.
func (t MovementType) Valid() bool {
	switch t {
	case MovementTypeQuotation, MovementTypeSale, MovementTypeIn, MovementTypeOut:
		return true
	}
	return false
}

// IsCommercial: cotizaciones y ventas exigen contacto y llevan totales.
func (t MovementType) IsCommercial() bool {
	return t == MovementTypeQuotation || t == MovementTypeSale
}

// MovementStatus estado del documento.
type MovementStatus string

const (
	MovementStatusDraft         MovementStatus = "DRAFT"
	MovementStatusSent          MovementStatus = "SENT"
	MovementStatusAccepted      MovementStatus = "ACCEPTED"
	MovementStatusCanceled      MovementStatus = "CANCELED"
	MovementStatusPending       MovementStatus = "PENDING"
	MovementStatusPartiallyPaid MovementStatus = "PARTIALLY_PAID"
	MovementStatusPaid          MovementStatus = "PAID"
	// Reservado: ninguna transición lo produce todavía.
	MovementStatusFulfilled MovementStatus = "FULFILLED"
)

// Valid indica si el estado pertenece al conjunto cerrado conocido.
func (s MovementStatus) Valid() bool {
	switch s {
	case MovementStatusDraft, MovementStatusSent, MovementStatusAccepted, MovementStatusCanceled,
		MovementStatusPending, MovementStatusPartiallyPaid, MovementStatusPaid, MovementStatusFulfilled:
		return true
	}
	return false
}

// IsTerminal: PAID, CANCELED y FULFILLED no admiten más cambios.
func (s MovementStatus) IsTerminal() bool {
	return s == MovementStatusPaid || s == MovementStatusCanceled || s == MovementStatusFulfilled
}

// Movement documento de inventario/finanzas (cotización, venta, entrada o salida) con sus líneas.
// Invariante: BalanceAmount = TotalAmount - PaidAmount tras cada transición confirmada.
type Movement struct {
	ID                string
	StockMovementCode string // único; "{operationCode}-{timestamp}" si no se informa
	MovementDate      time.Time
	MovementType      MovementType
	OperationID       string
	ContactID         string // obligatorio para QUOTATION y SALE
	Notes             string
	TotalAmount       decimal.Decimal
	PaidAmount        decimal.Decimal
	BalanceAmount     decimal.Decimal
	Status            MovementStatus
	ConvertedFromID   string // cotización de origen (vacío si no aplica)
	ConvertedToID     string // venta generada (vacío si no aplica)
	CreatedByID       string
	UpdatedByID       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Lines             []*MovementLine
}

// MovementLine línea de un movimiento. UnitPrice es una copia del precio al crear la línea
// y Subtotal se guarda, no se recalcula al leer.
type MovementLine struct {
	ID         string
	MovementID string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
}
