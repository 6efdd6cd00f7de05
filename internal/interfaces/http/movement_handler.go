package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/sales"
	"github.com/jhoicas/Comercial-api/internal/domain/authz"
)

// MovementHandler maneja cotizaciones, ventas y movimientos de inventario.
type MovementHandler struct {
	uc     *sales.MovementUseCase
	policy *authz.Policy
}

// NewMovementHandler construye el handler. policy decide los permisos por instancia.
func NewMovementHandler(uc *sales.MovementUseCase, policy *authz.Policy) *MovementHandler {
	return &MovementHandler{uc: uc, policy: policy}
}

// Create godoc
// @Summary      Crear movimiento
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento y líneas"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        page    query  int     false  "Página"  default(1)
// @Param        limit   query  int     false  "Límite"  default(10)
// @Param        type    query  string  false  "QUOTATION | SALE | IN | OUT"
// @Param        status  query  string  false  "Estado"
// @Success      200     {object}  dto.MovementListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	in := dto.MovementFilterRequest{
		PageRequest: pageFromQuery(c),
		Type:        c.Query("type"),
		Status:      c.Query("status"),
	}
	if ok, err := checkStruct(c, &in); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento con líneas
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Representación PDF de cotización o venta
// @Tags         movements
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/pdf [get]
func (h *MovementHandler) PDF(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.QuotationPDF(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="movimiento-`+id+`.pdf"`)
	return c.Send(pdf)
}

// Update godoc
// @Summary      Actualizar movimiento (reemplaza líneas si se envían)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del movimiento"
// @Param        body  body  dto.UpdateMovementRequest  true  "Cambios"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if ok, err := h.authorizeInstance(c, authz.ActionUpdate, id); !ok {
		return err
	}
	var in dto.UpdateMovementRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar movimiento en borrador o pendiente
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if ok, err := h.authorizeInstance(c, authz.ActionDelete, id); !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"id": id, "deleted": true})
}

// Send godoc
// @Summary      Enviar cotización (DRAFT → SENT)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/send [post]
func (h *MovementHandler) Send(c *fiber.Ctx) error {
	id := c.Params("id")
	if ok, err := h.authorizeInstance(c, authz.ActionUpdate, id); !ok {
		return err
	}
	out, err := h.uc.SendQuotation(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Accept godoc
// @Summary      Aceptar cotización y generar la venta
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.MovementResponse  "venta creada"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/accept [post]
func (h *MovementHandler) Accept(c *fiber.Ctx) error {
	id := c.Params("id")
	if ok, err := h.authorizeInstance(c, authz.ActionUpdate, id); !ok {
		return err
	}
	out, err := h.uc.AcceptQuotation(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id}/cancel [post]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if ok, err := h.authorizeInstance(c, authz.ActionUpdate, id); !ok {
		return err
	}
	out, err := h.uc.CancelMovement(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// authorizeInstance carga el movimiento y evalúa las condiciones por propietario.
// Si no autoriza ya respondió (404 o 403).
func (h *MovementHandler) authorizeInstance(c *fiber.Ctx, action authz.Action, id string) (bool, error) {
	mv, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return false, writeError(c, err)
	}
	res := authz.Resource{authz.FieldCreatedByID: mv.CreatedByID}
	if !h.policy.Can(GetPrincipal(c), action, authz.SubjectMovement, res) {
		return false, c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "solo el creador del movimiento puede modificarlo",
		})
	}
	return true, nil
}
