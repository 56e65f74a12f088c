package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Live always reports ok while the process is up.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// Ready pings the database; a failed ping returns 503.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.DB.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "db unreachable"})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
