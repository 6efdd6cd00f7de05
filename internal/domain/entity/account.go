package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType clasificación contable de la cuenta.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Valid indica si el tipo pertenece al conjunto cerrado conocido.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// Account cuenta del plan contable. Balance es un acumulado que solo cambia con asientos confirmados.
type Account struct {
	ID          string
	AccountCode string // único
	Name        string
	AccountType AccountType
	Balance     decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EntryType lado del asiento.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// AccountEntry asiento inmutable; es la pista de auditoría de cada cambio de saldo.
type AccountEntry struct {
	ID          string
	AccountID   string
	PaymentID   string
	Amount      decimal.Decimal // siempre positivo
	EntryType   EntryType
	Description string
	CreatedAt   time.Time
}
