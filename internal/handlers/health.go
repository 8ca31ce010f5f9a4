package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/publishdb/internal/config"
	"github.com/localnerve/publishdb/internal/database"
	"github.com/localnerve/publishdb/internal/services"
	"github.com/localnerve/publishdb/internal/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler serves the health probe
type HealthHandler struct {
	Config   *config.Config
	DB       *gorm.DB
	Registry *database.Registry
	Log      *zap.Logger
}

// Health handles GET /health
// @Summary Health check
// @Description Database reachability and schema version stamps
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB, h.Registry, h.Log)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return utils.SuccessResponse(c, result, status)
}
