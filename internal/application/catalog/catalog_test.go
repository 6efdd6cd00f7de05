package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/memory"
)

func TestNormalizePhone(t *testing.T) {
	got, err := catalog.NormalizePhone("300 123 4567", "CO")
	require.NoError(t, err)
	assert.Equal(t, "+573001234567", got)

	got, err = catalog.NormalizePhone("", "CO")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = catalog.NormalizePhone("123", "CO")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestContact_EmailUnicoYNormalizado(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewContactUseCase(memory.NewStore().Repositories().Contacts, "CO")

	c, err := uc.Create(ctx, dto.CreateContactRequest{Name: " Ana ", Email: "Ana@Empresa.CO", Phone: "+57 300 123 4567"})
	require.NoError(t, err)
	assert.Equal(t, "ana@empresa.co", c.Email)
	assert.Equal(t, "Ana", c.Name)
	assert.Equal(t, "+573001234567", c.Phone)

	_, err = uc.Create(ctx, dto.CreateContactRequest{Name: "Otra", Email: "ana@empresa.co"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProduct_CreaYLista(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewProductUseCase(memory.NewStore().Repositories().Products)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Malo", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Martillo", Price: decimal.NewFromInt(45), StockQuantity: 2, MinStockLevel: 5})
	require.NoError(t, err)
	assert.True(t, p.LowStock)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 10, list.Page.Limit)
}

func TestOperation_CodigoUnicoYTipoCerrado(t *testing.T) {
	ctx := context.Background()
	r := memory.NewSeededStore().Repositories()
	uc := catalog.NewOperationUseCase(r.Operations, r.PaymentMethods)

	_, err := uc.Create(ctx, dto.CreateOperationRequest{Name: "Venta 2", OperationCode: "sale", OperationType: "SALE"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateOperationRequest{Name: "Raro", OperationCode: "XX", OperationType: "GIFT"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	op, err := uc.Create(ctx, dto.CreateOperationRequest{Name: "Compra", OperationCode: "purc", OperationType: "IN", ChangeInventory: true})
	require.NoError(t, err)
	assert.Equal(t, "PURC", op.OperationCode)

	ops, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ops, 4)

	methods, err := uc.ListPaymentMethods(ctx)
	require.NoError(t, err)
	assert.Len(t, methods, 6)
}
