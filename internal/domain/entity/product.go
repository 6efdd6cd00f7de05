package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockQuantity nunca es negativo; las líneas de movimiento copian Price al crearse.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal // precio de venta vigente
	StockQuantity int
	MinStockLevel int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BelowMinStock indica si el stock está por debajo del mínimo configurado.
func (p *Product) BelowMinStock() bool {
	return p.StockQuantity < p.MinStockLevel
}
