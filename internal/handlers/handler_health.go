package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/teamops_backend/internal/core/ports/services"
	"github.com/SscSPs/teamops_backend/internal/dto"
	"github.com/SscSPs/teamops_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HealthResponse reports process and database health.
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Database  string    `json:"database" example:"connected"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    float64   `json:"uptime" example:"12.5"`
}

type healthHandler struct {
	healthService portssvc.HealthSvc
	startedAt     time.Time
}

// health godoc
// @Summary Health check
// @Description Pings the database.
// @Tags health
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=HealthResponse}
// @Failure 503 {object} dto.ErrorResponse
// @Router /health [get]
func (h *healthHandler) health(c *gin.Context) {
	now := time.Now().UTC()
	uptime := now.Sub(h.startedAt).Seconds()

	if err := h.healthService.Check(c.Request.Context()); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
		c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(dto.CodeUnavailable, "API is unhealthy"))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse("API is healthy", HealthResponse{
		Status:    "healthy",
		Database:  "connected",
		Timestamp: now,
		Uptime:    uptime,
	}))
}
