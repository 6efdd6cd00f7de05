package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// CreateAccountRequest body para POST /api/accounts.
type CreateAccountRequest struct {
	AccountCode string `json:"account_code" validate:"required,numeric,max=20"`
	Name        string `json:"name" validate:"required,max=200"`
	AccountType string `json:"account_type" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
}

// AccountResponse cuenta con su saldo.
type AccountResponse struct {
	ID          string          `json:"id"`
	AccountCode string          `json:"account_code"`
	Name        string          `json:"name"`
	AccountType string          `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccountDetailResponse cuenta con sus asientos más recientes.
type AccountDetailResponse struct {
	AccountResponse
	Entries []AccountEntryResponse `json:"entries"`
}

// ToAccountResponse mapea la entidad.
func ToAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		AccountCode: a.AccountCode,
		Name:        a.Name,
		AccountType: string(a.AccountType),
		Balance:     a.Balance,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAccountEntryResponses mapea una lista de asientos.
func ToAccountEntryResponses(entries []*entity.AccountEntry) []AccountEntryResponse {
	out := make([]AccountEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToAccountEntryResponse(e))
	}
	return out
}
