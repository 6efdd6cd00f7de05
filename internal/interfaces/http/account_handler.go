package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercial-api/internal/application/accounting"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
)

// AccountHandler expone el plan de cuentas y su historial.
type AccountHandler struct {
	uc *accounting.LedgerUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(uc *accounting.LedgerUseCase) *AccountHandler {
	return &AccountHandler{uc: uc}
}

// List godoc
// @Summary      Listar cuentas activas
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear cuenta
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "Cuenta"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Saldo y asientos recientes
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetAccount(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Entries godoc
// @Summary      Historial de asientos (más reciente primero)
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la cuenta"
// @Param        limit  query  int     false  "Límite"  default(50)
// @Success      200    {array}   dto.AccountEntryResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/entries [get]
func (h *AccountHandler) Entries(c *fiber.Ctx) error {
	out, err := h.uc.GetHistory(c.UserContext(), c.Params("id"), c.QueryInt("limit", accounting.DefaultHistoryLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
