package entity

import "time"

// Operation es la plantilla configurable de un tipo de movimiento (código, tipo, si afecta
// inventario o finanzas). Configuración estática: el núcleo nunca la modifica.
type Operation struct {
	ID              string
	Name            string
	OperationCode   string // único
	OperationType   MovementType
	ChangeInventory bool
	HasFinance      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
