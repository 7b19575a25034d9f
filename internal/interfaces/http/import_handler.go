package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
)

// ImportHandler recibe planillas de catálogo ya convertidas a filas.
type ImportHandler struct {
	uc *inventory.ImportCatalogUseCase
}

// NewImportHandler construye el handler.
func NewImportHandler(uc *inventory.ImportCatalogUseCase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

// Import godoc
// @Summary      Importar catálogo
// @Description  Crea o actualiza productos por SKU. Si vienen columnas de ubicación, cada fila
// @Description  agrega una ubicación nueva. Las filas con error se informan en el resumen.
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ImportCatalogRequest  true  "Filas (columna → valor)"
// @Success      200   {object}  dto.ImportSummary
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/catalog/import [post]
func (h *ImportHandler) Import(c *fiber.Ctx) error {
	var in dto.ImportCatalogRequest
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	out, err := h.uc.Import(c.UserContext(), in.Rows, GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
