package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/accounting"
	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/payments"
	"github.com/jhoicas/Comercial-api/internal/application/sales"
	"github.com/jhoicas/Comercial-api/internal/domain/authz"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/ledger"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/seed"
	apphttp "github.com/jhoicas/Comercial-api/internal/interfaces/http"
	"github.com/jhoicas/Comercial-api/internal/observability/metrics"
)

const (
	sellerID     = "00000000-0000-0000-0000-0000000000a1"
	otherSeller  = "00000000-0000-0000-0000-0000000000a2"
	accountantID = "00000000-0000-0000-0000-0000000000b1"
)

type apiFixture struct {
	app *fiber.App
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewSeededStore()
	repos := store.Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Contacts.Create(ctx, &entity.Contact{ID: "c1", Name: "Ana", Email: "ana@example.com"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Name: "Silla", Price: decimal.NewFromInt(100), StockQuantity: 10}))

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, metrics.Config{ServiceName: "test"})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerologDiscard(), m))
	apphttp.Router(app, apphttp.RouterDeps{
		MovementUC:  sales.NewMovementUseCase(store, repos, pdf.NewMarotoRenderer("Comercial"), m),
		PaymentUC:   payments.NewPaymentUseCase(store, repos, accounting.NewLedgerUseCase(repos), ledger.DefaultAccountCodes(), nil, m),
		LedgerUC:    accounting.NewLedgerUseCase(repos),
		ProductUC:   catalog.NewProductUseCase(repos.Products),
		ContactUC:   catalog.NewContactUseCase(repos.Contacts, "CO"),
		OperationUC: catalog.NewOperationUseCase(repos.Operations, repos.PaymentMethods),
		Policy:      authz.DefaultPolicy(),
		JWTSecret:   testJWTSecret,
		ServiceName: "test",
		Gatherer:    reg,
	})
	return &apiFixture{app: app}
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body interface{}) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func TestAPI_CotizacionAVentaYPagoParcial(t *testing.T) {
	f := newAPI(t)
	seller := tokenFor(t, sellerID, authz.RoleVendedor)
	accountant := tokenFor(t, accountantID, authz.RoleContador)

	resp, raw := f.do(t, http.MethodPost, "/api/movements", seller, map[string]interface{}{
		"operation_id": seed.StableID("operation", "QUOT"),
		"contact_id":   "c1",
		"lines":        []map[string]interface{}{{"product_id": "p1", "quantity": 5}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	quote := decode[dto.MovementResponse](t, raw)
	assert.Equal(t, "QUOTATION", quote.MovementType)
	assert.Equal(t, "DRAFT", quote.Status)
	assert.True(t, quote.TotalAmount.Equal(decimal.NewFromInt(500)))

	resp, raw = f.do(t, http.MethodPost, "/api/movements/"+quote.ID+"/send", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "SENT", decode[dto.MovementResponse](t, raw).Status)

	resp, raw = f.do(t, http.MethodPost, "/api/movements/"+quote.ID+"/accept", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	sale := decode[dto.MovementResponse](t, raw)
	assert.Equal(t, "SALE", sale.MovementType)
	assert.Equal(t, "PENDING", sale.Status)
	assert.Equal(t, quote.ID, sale.ConvertedFromID)
	assert.True(t, sale.BalanceAmount.Equal(decimal.NewFromInt(500)))

	resp, raw = f.do(t, http.MethodPost, "/api/payments", seller, map[string]interface{}{
		"movement_id":       sale.ID,
		"amount":            "200",
		"payment_method_id": seed.StableID("payment_method", "Cash"),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	payment := decode[dto.PaymentResponse](t, raw)
	assert.Equal(t, "PENDING", payment.Status)

	// El vendedor registra pagos pero no los confirma.
	resp, _ = f.do(t, http.MethodPost, "/api/payments/"+payment.ID+"/confirm", seller, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = f.do(t, http.MethodPost, "/api/payments/"+payment.ID+"/confirm", accountant, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	confirmed := decode[dto.PaymentResponse](t, raw)
	assert.Equal(t, "CONFIRMED", confirmed.Status)
	assert.Len(t, confirmed.Entries, 2)

	resp, raw = f.do(t, http.MethodPost, "/api/payments/"+payment.ID+"/confirm", accountant, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_STATE", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = f.do(t, http.MethodGet, "/api/movements/"+sale.ID, seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sale = decode[dto.MovementResponse](t, raw)
	assert.Equal(t, "PARTIALLY_PAID", sale.Status)
	assert.True(t, sale.PaidAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, sale.BalanceAmount.Equal(decimal.NewFromInt(300)))

	resp, raw = f.do(t, http.MethodGet, "/api/accounts/"+seed.StableID("account", "1010"), accountant, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cash := decode[dto.AccountDetailResponse](t, raw)
	assert.True(t, cash.Balance.Equal(decimal.NewFromInt(200)))
	assert.Len(t, cash.Entries, 1)

	// Pago mayor al saldo.
	resp, raw = f.do(t, http.MethodPost, "/api/payments", seller, map[string]interface{}{
		"movement_id":       sale.ID,
		"amount":            "300.01",
		"payment_method_id": seed.StableID("payment_method", "Cash"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	resp, raw = f.do(t, http.MethodGet, "/api/payments?movement_id="+sale.ID, seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.PaymentListResponse](t, raw)
	assert.Equal(t, 1, list.Page.Total)
}

func TestAPI_VendedorSoloModificaSusMovimientos(t *testing.T) {
	f := newAPI(t)
	owner := tokenFor(t, sellerID, authz.RoleVendedor)
	other := tokenFor(t, otherSeller, authz.RoleVendedor)
	admin := tokenFor(t, testUserID, authz.RoleAdmin)

	resp, raw := f.do(t, http.MethodPost, "/api/movements", owner, map[string]interface{}{
		"operation_id": seed.StableID("operation", "QUOT"),
		"contact_id":   "c1",
		"lines":        []map[string]interface{}{{"product_id": "p1", "quantity": 1}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	id := decode[dto.MovementResponse](t, raw).ID

	update := map[string]interface{}{"notes": "cambio"}
	resp, raw = f.do(t, http.MethodPut, "/api/movements/"+id, other, update)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, string(raw))

	resp, raw = f.do(t, http.MethodPut, "/api/movements/"+id, owner, update)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, "cambio", decode[dto.MovementResponse](t, raw).Notes)

	for _, action := range []string{"send", "accept", "cancel"} {
		resp, raw = f.do(t, http.MethodPost, "/api/movements/"+id+"/"+action, other, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, action+": "+string(raw))
	}
	resp, raw = f.do(t, http.MethodGet, "/api/movements/"+id, owner, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "DRAFT", decode[dto.MovementResponse](t, raw).Status, "otro vendedor no cambia el estado")

	resp, _ = f.do(t, http.MethodDelete, "/api/movements/"+id, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = f.do(t, http.MethodDelete, "/api/movements/"+id, admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = f.do(t, http.MethodGet, "/api/movements/"+id, owner, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_ErroresDeValidacionConCampos(t *testing.T) {
	f := newAPI(t)
	seller := tokenFor(t, sellerID, authz.RoleVendedor)

	resp, raw := f.do(t, http.MethodPost, "/api/movements", seller, map[string]interface{}{
		"lines": []map[string]interface{}{{"product_id": "p1", "quantity": 0}},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "required", body.Fields["operation_id"])
	assert.Equal(t, "required", body.Fields["lines[0].quantity"])

	resp, raw = f.do(t, http.MethodGet, "/api/movements?status=BORRADOR", seller, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "oneof", decode[dto.ErrorResponse](t, raw).Fields["Status"])

	req := httptest.NewRequest(http.MethodPost, "/api/accounts", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenFor(t, testUserID, authz.RoleAdmin))
	r, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestAPI_CatalogoYCuentas(t *testing.T) {
	f := newAPI(t)
	admin := tokenFor(t, testUserID, authz.RoleAdmin)

	resp, raw := f.do(t, http.MethodGet, "/api/payment-methods", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.PaymentMethodResponse](t, raw), len(seed.PaymentMethods()))

	resp, raw = f.do(t, http.MethodPost, "/api/accounts", admin, map[string]interface{}{
		"account_code": "1010", "name": "Caja duplicada", "account_type": "ASSET",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(raw))

	resp, raw = f.do(t, http.MethodPost, "/api/contacts", admin, map[string]interface{}{
		"name": "Luis", "email": "LUIS@Example.com", "phone": "300 123 4567",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	contact := decode[dto.ContactResponse](t, raw)
	assert.Equal(t, "luis@example.com", contact.Email)
	assert.Equal(t, "+573001234567", contact.Phone)

	resp, _ = f.do(t, http.MethodGet, "/api/accounts/no-existe/entries", admin, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPI_PDFDeCotizacion(t *testing.T) {
	f := newAPI(t)
	seller := tokenFor(t, sellerID, authz.RoleVendedor)

	_, raw := f.do(t, http.MethodPost, "/api/movements", seller, map[string]interface{}{
		"operation_id": seed.StableID("operation", "QUOT"),
		"contact_id":   "c1",
		"lines":        []map[string]interface{}{{"product_id": "p1", "quantity": 2}},
	})
	id := decode[dto.MovementResponse](t, raw).ID

	resp, body := f.do(t, http.MethodGet, "/api/movements/"+id+"/pdf", seller, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_HealthYMetricsSinToken(t *testing.T) {
	f := newAPI(t)

	resp, _ := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Genera al menos una serie HTTP.
	f.do(t, http.MethodGet, "/api/movements", "", nil)

	resp, raw := f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")

	resp, _ = f.do(t, http.MethodGet, "/api/movements", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
