package ports

import "github.com/jhoicas/Comercial-api/internal/domain/entity"

// MovementDocument agrupa lo necesario para renderizar una cotización o venta.
type MovementDocument struct {
	Movement  *entity.Movement
	Operation *entity.Operation
	Contact   *entity.Contact
	Products  map[string]*entity.Product
}

// DocumentRenderer genera la representación PDF de un movimiento.
type DocumentRenderer interface {
	RenderMovement(doc MovementDocument) ([]byte, error)
}
