package httpserver

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/pkg/logging"
)

func pathID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, apperr.Validation(name + " must be a positive integer")
	}
	return uint(v), nil
}

// bind decodes the request body and reports decode failures as validation
// errors.
func bind(c echo.Context, dst any, op string) error {
	if err := c.Bind(dst); err != nil {
		logging.FromContext(c.Request().Context()).Warn(op+"_failed", "status", 400, "reason", "invalid body", "error", err)
		return apperr.Validation("invalid body")
	}
	return nil
}
