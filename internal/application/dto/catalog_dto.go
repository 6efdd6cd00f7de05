package dto

import (
	"time"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// CreateContactRequest body para POST /api/contacts.
type CreateContactRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone,omitempty"`
	SellerID string `json:"seller_id,omitempty" validate:"omitempty,uuid"`
}

// ContactResponse contacto en respuestas.
type ContactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	SellerID  string    `json:"seller_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactListResponse listado paginado.
type ContactListResponse struct {
	Items []ContactResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToContactResponse mapea la entidad.
func ToContactResponse(c *entity.Contact) ContactResponse {
	return ContactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		SellerID:  c.SellerID,
		CreatedAt: c.CreatedAt,
	}
}

// CreateOperationRequest body para POST /api/operations.
type CreateOperationRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	OperationCode   string `json:"operation_code" validate:"required,max=20"`
	OperationType   string `json:"operation_type" validate:"required,oneof=QUOTATION SALE IN OUT"`
	ChangeInventory bool   `json:"change_inventory"`
	HasFinance      bool   `json:"has_finance"`
}

// OperationResponse operación en respuestas.
type OperationResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	OperationCode   string `json:"operation_code"`
	OperationType   string `json:"operation_type"`
	ChangeInventory bool   `json:"change_inventory"`
	HasFinance      bool   `json:"has_finance"`
}

// ToOperationResponse mapea la entidad.
func ToOperationResponse(o *entity.Operation) OperationResponse {
	return OperationResponse{
		ID:              o.ID,
		Name:            o.Name,
		OperationCode:   o.OperationCode,
		OperationType:   string(o.OperationType),
		ChangeInventory: o.ChangeInventory,
		HasFinance:      o.HasFinance,
	}
}

// PaymentMethodResponse medio de pago en respuestas.
type PaymentMethodResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
