package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// CreatePaymentRequest body para POST /api/payments.
type CreatePaymentRequest struct {
	MovementID      string          `json:"movement_id" validate:"required"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID string          `json:"payment_method_id" validate:"required"`
	Notes           string          `json:"notes,omitempty" validate:"max=500"`
}

// PaymentFilterRequest query de GET /api/payments.
type PaymentFilterRequest struct {
	PageRequest
	MovementID string `query:"movement_id"`
}

// AccountEntryResponse asiento en respuestas.
type AccountEntryResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	PaymentID   string          `json:"payment_id"`
	Amount      decimal.Decimal `json:"amount"`
	EntryType   string          `json:"entry_type"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentResponse pago con sus asientos (vacío mientras esté PENDING).
type PaymentResponse struct {
	ID              string                 `json:"id"`
	PaymentCode     string                 `json:"payment_code"`
	MovementID      string                 `json:"movement_id"`
	Amount          decimal.Decimal        `json:"amount"`
	PaymentMethodID string                 `json:"payment_method_id"`
	Notes           string                 `json:"notes,omitempty"`
	Status          string                 `json:"status"`
	CreatedByID     string                 `json:"created_by_id"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	Entries         []AccountEntryResponse `json:"entries"`
}

// PaymentListResponse listado paginado.
type PaymentListResponse struct {
	Items []PaymentResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToAccountEntryResponse mapea un asiento.
func ToAccountEntryResponse(e *entity.AccountEntry) AccountEntryResponse {
	return AccountEntryResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		PaymentID:   e.PaymentID,
		Amount:      e.Amount,
		EntryType:   string(e.EntryType),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ToPaymentResponse mapea la entidad con sus asientos.
func ToPaymentResponse(p *entity.Payment) PaymentResponse {
	entries := make([]AccountEntryResponse, 0, len(p.Entries))
	for _, e := range p.Entries {
		entries = append(entries, ToAccountEntryResponse(e))
	}
	return PaymentResponse{
		ID:              p.ID,
		PaymentCode:     p.PaymentCode,
		MovementID:      p.MovementID,
		Amount:          p.Amount,
		PaymentMethodID: p.PaymentMethodID,
		Notes:           p.Notes,
		Status:          string(p.Status),
		CreatedByID:     p.CreatedByID,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Entries:         entries,
	}
}
