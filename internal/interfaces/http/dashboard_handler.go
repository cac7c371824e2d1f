package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dashboard"
)

// DashboardHandler agregados de solo lectura para el back office.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Stats godoc
// @Summary      Estadísticas generales del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStats
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.uc.Stats(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(stats)
}
