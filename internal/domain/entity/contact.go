package entity

import "time"

// Contact cliente o proveedor referenciado por cotizaciones y ventas.
type Contact struct {
	ID        string
	Name      string
	Email     string // único
	Phone     string // formato E.164 cuando se informa
	SellerID  string // usuario vendedor asignado (opcional)
	CreatedAt time.Time
	UpdatedAt time.Time
}
