package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	pkgdb "github.com/Skotchmaster/portfolio/pkg/db"
	"github.com/Skotchmaster/portfolio/pkg/logging"
)

const readyTimeout = 2 * time.Second

type HealthHTTP struct {
	DB *gorm.DB
}

func (h *HealthHTTP) Live(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func (h *HealthHTTP) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	if err := pkgdb.Ping(ctx, h.DB, readyTimeout); err != nil {
		logging.FromContext(ctx).Error("ready_check_failed", "status", 503, "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
