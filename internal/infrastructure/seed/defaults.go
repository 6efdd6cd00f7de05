// Package seed datos de configuración iniciales: operaciones, medios de pago y plan de cuentas.
// Los IDs son UUID v5 derivados del código, así el SQL generado es idempotente y el store
// en memoria arranca con los mismos valores.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/ledger"
)

var namespace = uuid.MustParse("6f1c1d2e-8a43-4c59-9d0b-4c1e5b7a2f10")

// StableID UUID determinístico para kind/código.
func StableID(kind, code string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+code)).String()
}

// Operations operaciones base: cotización, venta y entrega.
func Operations(now time.Time) []*entity.Operation {
	defs := []struct {
		code, name     string
		t              entity.MovementType
		inventory, fin bool
	}{
		{"QUOT", "Cotización", entity.MovementTypeQuotation, false, false},
		{"SALE", "Venta", entity.MovementTypeSale, false, true},
		{"DELV", "Entrega", entity.MovementTypeOut, true, false},
	}
	out := make([]*entity.Operation, 0, len(defs))
	for _, d := range defs {
		out = append(out, &entity.Operation{
			ID:              StableID("operation", d.code),
			Name:            d.name,
			OperationCode:   d.code,
			OperationType:   d.t,
			ChangeInventory: d.inventory,
			HasFinance:      d.fin,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return out
}

// PaymentMethods medios de pago por defecto.
func PaymentMethods() []*entity.PaymentMethod {
	defs := [][2]string{
		{"Cash", "Pago en efectivo"},
		{"Credit Card", "Tarjeta de crédito"},
		{"Debit Card", "Tarjeta débito"},
		{"Bank Transfer", "Transferencia bancaria"},
		{"Check", "Cheque"},
		{"Other", "Otro medio de pago"},
	}
	out := make([]*entity.PaymentMethod, 0, len(defs))
	for _, d := range defs {
		out = append(out, &entity.PaymentMethod{
			ID:          StableID("payment_method", d[0]),
			Name:        d[0],
			Description: d[1],
		})
	}
	return out
}

// Accounts plan de cuentas mínimo para confirmar pagos.
func Accounts(now time.Time) []*entity.Account {
	defs := []struct {
		code, name string
		t          entity.AccountType
	}{
		{ledger.DefaultCashAccountCode, "Cash", entity.AccountTypeAsset},
		{ledger.DefaultCardAccountCode, "Credit Card Receivable", entity.AccountTypeAsset},
		{ledger.DefaultReceivableAccountCode, "Accounts Receivable", entity.AccountTypeAsset},
		{"4010", "Sales Revenue", entity.AccountTypeRevenue},
	}
	out := make([]*entity.Account, 0, len(defs))
	for _, d := range defs {
		out = append(out, &entity.Account{
			ID:          StableID("account", d.code),
			AccountCode: d.code,
			Name:        d.name,
			AccountType: d.t,
			Balance:     decimal.Zero,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return out
}
