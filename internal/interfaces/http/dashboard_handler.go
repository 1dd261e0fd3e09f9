package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/erpcrm-api/internal/application/analytics"
)

// DashboardHandler maneja el tablero principal.
type DashboardHandler struct {
	uc   *appanalytics.DashboardUseCase
	errs *ErrorWriter
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, errs *ErrorWriter) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// GetStats godoc
// @Summary      Indicadores de la firma
// @Description  Cariler y stok activos, facturas, ventas totales, fichas bajo mínimo y las 5 facturas más recientes.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        X-Tenant-Id  header  int  true  "Firma"
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context(), GetTenantID(c))
	if err != nil {
		return h.errs.Write(c, err)
	}
	return c.JSON(stats)
}
