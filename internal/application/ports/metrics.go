package ports

import "github.com/shopspring/decimal"

// LedgerMetrics puerto de métricas del libro. NopMetrics cuando no hay recolector.
type LedgerMetrics interface {
	PaymentConfirmed(method string, amount decimal.Decimal)
	PaymentRejected(reason string)
	PaymentFailed()
	QuotationConverted()
	MovementCanceled(movementType string)
}

// NopMetrics descarta todas las observaciones.
type NopMetrics struct{}

func (NopMetrics) PaymentConfirmed(string, decimal.Decimal) {}
func (NopMetrics) PaymentRejected(string)                  {}
func (NopMetrics) PaymentFailed()                          {}
func (NopMetrics) QuotationConverted()                     {}
func (NopMetrics) MovementCanceled(string)                 {}
