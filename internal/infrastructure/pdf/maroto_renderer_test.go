package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

func TestRenderMovement_Cotizacion(t *testing.T) {
	r := NewMarotoRenderer("Comercial S.A.S.")
	doc := ports.MovementDocument{
		Movement: &entity.Movement{
			StockMovementCode: "QUOT-1",
			MovementDate:      time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			MovementType:      entity.MovementTypeQuotation,
			Status:            entity.MovementStatusDraft,
			TotalAmount:       decimal.NewFromInt(500),
			Notes:             "Entrega en 5 días",
			Lines: []*entity.MovementLine{
				{ProductID: "p1", Quantity: 5, UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(500)},
			},
		},
		Operation: &entity.Operation{OperationCode: "QUOT"},
		Contact:   &entity.Contact{Name: "Ana", Email: "ana@example.com"},
		Products:  map[string]*entity.Product{"p1": {ID: "p1", Name: "Silla"}},
	}

	out, err := r.RenderMovement(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderMovement_VentaSinContacto(t *testing.T) {
	r := NewMarotoRenderer("Comercial")
	out, err := r.RenderMovement(ports.MovementDocument{
		Movement: &entity.Movement{
			StockMovementCode: "SALE-1",
			MovementType:      entity.MovementTypeSale,
			Status:            entity.MovementStatusPartiallyPaid,
			TotalAmount:       decimal.NewFromInt(500),
			PaidAmount:        decimal.NewFromInt(200),
			BalanceAmount:     decimal.NewFromInt(300),
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderMovement_Nil(t *testing.T) {
	_, err := NewMarotoRenderer("x").RenderMovement(ports.MovementDocument{})
	assert.Error(t, err)
}

func TestMoney_DosDecimales(t *testing.T) {
	r := NewMarotoRenderer("x")
	s := r.money(decimal.RequireFromString("1234567.5"))
	assert.True(t, strings.HasPrefix(s, "$1"))
	assert.True(t, strings.HasSuffix(s, "50"), s)
	assert.Contains(t, s, "567")
}
