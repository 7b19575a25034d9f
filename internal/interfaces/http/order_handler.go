package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/auth"
	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// OrderHandler maneja comandas: alta, consulta, entrega y comanda impresa.
type OrderHandler struct {
	orders   *usecase.OrderUseCase
	fulfill  *inventory.FulfillOrderUseCase
	pickList *usecase.PickListUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(orders *usecase.OrderUseCase, fulfill *inventory.FulfillOrderUseCase, pickList *usecase.PickListUseCase) *OrderHandler {
	return &OrderHandler{orders: orders, fulfill: fulfill, pickList: pickList}
}

// Create godoc
// @Summary      Crear comanda
// @Description  Sin token requested_by queda como se envió (o "anonimo"); con token y sin requested_by se usa el email.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Comanda"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	if in.RequestedBy == "" {
		in.RequestedBy = GetEmail(c)
	}
	out, err := h.orders.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// TimeSlots godoc
// @Summary      Franjas horarias válidas para requested_for
// @Tags         orders
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/orders/time-slots [get]
func (h *OrderHandler) TimeSlots(c *fiber.Ctx) error {
	return c.JSON(h.orders.TimeSlots())
}

// GetByID godoc
// @Summary      Detalle de comanda
// @Description  Personal de bodega ve todas; el resto solo las propias.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la comanda"
// @Success      200  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	viewer := usecase.Viewer{Email: GetEmail(c), ReadAll: auth.Can(GetRole(c), auth.CapOrdersReadAll)}
	out, err := h.orders.GetByID(c.UserContext(), c.Params("id"), viewer)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar comandas (más recientes primero)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | delivered"
// @Param        limit   query  int     false  "Límite (default 20, máx 100)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.OrderListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.orders.List(c.UserContext(), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Entregar comanda
// @Description  Descuenta stock (bodega, luego trastienda, luego piso). Los faltantes quedan
// @Description  pendientes en la línea y la comanda pasa a delivered igual. Repetir es inocuo.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la comanda"
// @Success      200  {object}  dto.FulfillResult
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/deliver [post]
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	out, err := h.fulfill.Fulfill(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PickList godoc
// @Summary      Comanda imprimible en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la comanda"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/picklist [get]
func (h *OrderHandler) PickList(c *fiber.Ctx) error {
	pdf, filename, err := h.pickList.Generate(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
