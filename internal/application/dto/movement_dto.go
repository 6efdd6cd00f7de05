package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// MovementLineRequest línea de un movimiento. UnitPrice nil toma el precio vigente del producto.
type MovementLineRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	StockMovementCode string                `json:"stock_movement_code,omitempty" validate:"omitempty,max=50"`
	MovementDate      *time.Time            `json:"movement_date,omitempty"`
	MovementType      string                `json:"movement_type,omitempty" validate:"omitempty,oneof=QUOTATION SALE IN OUT"`
	OperationID       string                `json:"operation_id" validate:"required"`
	ContactID         string                `json:"contact_id,omitempty"`
	Notes             string                `json:"notes,omitempty"`
	Lines             []MovementLineRequest `json:"lines" validate:"dive"`
}

// UpdateMovementRequest body para PUT /api/movements/:id. Lines nil no toca las líneas;
// una lista (incluso vacía) las reemplaza por completo.
type UpdateMovementRequest struct {
	MovementDate *time.Time            `json:"movement_date,omitempty"`
	ContactID    *string               `json:"contact_id,omitempty"`
	Notes        *string               `json:"notes,omitempty"`
	Lines        []MovementLineRequest `json:"lines,omitempty" validate:"omitempty,dive"`
}

// MovementFilterRequest query de GET /api/movements.
type MovementFilterRequest struct {
	PageRequest
	Type   string `query:"type" validate:"omitempty,oneof=QUOTATION SALE IN OUT"`
	Status string `query:"status" validate:"omitempty,oneof=DRAFT SENT ACCEPTED CANCELED PENDING PARTIALLY_PAID PAID FULFILLED"`
}

// MovementLineResponse línea en respuestas.
type MovementLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// MovementResponse movimiento con sus líneas.
type MovementResponse struct {
	ID                string                 `json:"id"`
	StockMovementCode string                 `json:"stock_movement_code"`
	MovementDate      time.Time              `json:"movement_date"`
	MovementType      string                 `json:"movement_type"`
	OperationID       string                 `json:"operation_id"`
	ContactID         string                 `json:"contact_id,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	TotalAmount       decimal.Decimal        `json:"total_amount"`
	PaidAmount        decimal.Decimal        `json:"paid_amount"`
	BalanceAmount     decimal.Decimal        `json:"balance_amount"`
	Status            string                 `json:"status"`
	ConvertedFromID   string                 `json:"converted_from_id,omitempty"`
	ConvertedToID     string                 `json:"converted_to_id,omitempty"`
	CreatedByID       string                 `json:"created_by_id"`
	UpdatedByID       string                 `json:"updated_by_id"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
	Lines             []MovementLineResponse `json:"lines"`
}

// MovementListResponse listado paginado.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse mapea la entidad con sus líneas.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	lines := make([]MovementLineResponse, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, MovementLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return MovementResponse{
		ID:                m.ID,
		StockMovementCode: m.StockMovementCode,
		MovementDate:      m.MovementDate,
		MovementType:      string(m.MovementType),
		OperationID:       m.OperationID,
		ContactID:         m.ContactID,
		Notes:             m.Notes,
		TotalAmount:       m.TotalAmount,
		PaidAmount:        m.PaidAmount,
		BalanceAmount:     m.BalanceAmount,
		Status:            string(m.Status),
		ConvertedFromID:   m.ConvertedFromID,
		ConvertedToID:     m.ConvertedToID,
		CreatedByID:       m.CreatedByID,
		UpdatedByID:       m.UpdatedByID,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
		Lines:             lines,
	}
}
