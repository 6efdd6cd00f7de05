package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Comercial-api/internal/application/accounting"
	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/payments"
	"github.com/jhoicas/Comercial-api/internal/application/sales"
	"github.com/jhoicas/Comercial-api/internal/domain/authz"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC  *sales.MovementUseCase
	PaymentUC   *payments.PaymentUseCase
	LedgerUC    *accounting.LedgerUseCase
	ProductUC   *catalog.ProductUseCase
	ContactUC   *catalog.ContactUseCase
	OperationUC *catalog.OperationUseCase
	Policy      *authz.Policy
	JWTSecret   string
	ServiceName string
	// Gatherer nil deja /metrics sin registrar.
	Gatherer prometheus.Gatherer
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	policy := deps.Policy
	if policy == nil {
		policy = authz.DefaultPolicy()
	}
	can := func(a authz.Action, s authz.Subject) fiber.Handler {
		return RequirePermission(policy, a, s)
	}

	// Todo /api requiere Bearer Token.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC, policy)
	movements.Post("/", can(authz.ActionCreate, authz.SubjectMovement), movementHandler.Create)
	movements.Get("/", can(authz.ActionRead, authz.SubjectMovement), movementHandler.List)
	movements.Get("/:id", can(authz.ActionRead, authz.SubjectMovement), movementHandler.GetByID)
	movements.Get("/:id/pdf", can(authz.ActionRead, authz.SubjectMovement), movementHandler.PDF)
	movements.Put("/:id", can(authz.ActionUpdate, authz.SubjectMovement), movementHandler.Update)
	movements.Delete("/:id", can(authz.ActionDelete, authz.SubjectMovement), movementHandler.Delete)
	movements.Post("/:id/send", can(authz.ActionUpdate, authz.SubjectMovement), movementHandler.Send)
	movements.Post("/:id/accept", can(authz.ActionUpdate, authz.SubjectMovement), movementHandler.Accept)
	movements.Post("/:id/cancel", can(authz.ActionUpdate, authz.SubjectMovement), movementHandler.Cancel)

	paymentsGroup := api.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	paymentsGroup.Post("/", can(authz.ActionCreate, authz.SubjectPayment), paymentHandler.Create)
	paymentsGroup.Get("/", can(authz.ActionRead, authz.SubjectPayment), paymentHandler.List)
	paymentsGroup.Get("/:id", can(authz.ActionRead, authz.SubjectPayment), paymentHandler.GetByID)
	paymentsGroup.Post("/:id/confirm", can(authz.ActionUpdate, authz.SubjectPayment), paymentHandler.Confirm)
	paymentsGroup.Post("/:id/fail", can(authz.ActionUpdate, authz.SubjectPayment), paymentHandler.Fail)

	accounts := api.Group("/accounts")
	accountHandler := NewAccountHandler(deps.LedgerUC)
	accounts.Get("/", can(authz.ActionRead, authz.SubjectAccount), accountHandler.List)
	accounts.Post("/", can(authz.ActionCreate, authz.SubjectAccount), accountHandler.Create)
	accounts.Get("/:id", can(authz.ActionRead, authz.SubjectAccount), accountHandler.GetByID)
	accounts.Get("/:id/entries", can(authz.ActionRead, authz.SubjectAccount), accountHandler.Entries)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", can(authz.ActionCreate, authz.SubjectProduct), productHandler.Create)
	products.Get("/", can(authz.ActionRead, authz.SubjectProduct), productHandler.List)
	products.Get("/:id", can(authz.ActionRead, authz.SubjectProduct), productHandler.GetByID)

	contacts := api.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts.Post("/", can(authz.ActionCreate, authz.SubjectContact), contactHandler.Create)
	contacts.Get("/", can(authz.ActionRead, authz.SubjectContact), contactHandler.List)
	contacts.Get("/:id", can(authz.ActionRead, authz.SubjectContact), contactHandler.GetByID)

	operations := api.Group("/operations")
	operationHandler := NewOperationHandler(deps.OperationUC)
	operations.Post("/", can(authz.ActionCreate, authz.SubjectOperation), operationHandler.Create)
	operations.Get("/", can(authz.ActionRead, authz.SubjectOperation), operationHandler.List)
	operations.Get("/:id", can(authz.ActionRead, authz.SubjectOperation), operationHandler.GetByID)

	api.Get("/payment-methods", can(authz.ActionRead, authz.SubjectPayment), operationHandler.PaymentMethods)
}
