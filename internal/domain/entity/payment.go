package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus estado de un pago. CONFIRMED y FAILED son terminales.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// PaymentMethod medio de pago (efectivo, tarjeta, transferencia...).
type PaymentMethod struct {
	ID          string
	Name        string
	Description string
}

// Payment abono contra el saldo de una venta.
// Los asientos (Entries) solo existen una vez confirmado.
type Payment struct {
	ID              string
	PaymentCode     string // "PAY-{timestamp}"
	MovementID      string // siempre una venta (SALE)
	Amount          decimal.Decimal
	PaymentMethodID string
	Notes           string
	Status          PaymentStatus
	CreatedByID     string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Entries         []*AccountEntry
}
