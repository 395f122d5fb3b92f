package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/internal/service"
	"github.com/Skotchmaster/portfolio/internal/transport"
	"github.com/Skotchmaster/portfolio/pkg/logging"
	middleware "github.com/Skotchmaster/portfolio/pkg/middleware/auth"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bind(c, &req, "login"); err != nil {
		return err
	}

	resp, err := h.Svc.Login(ctx, req)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) && ae.Kind == apperr.KindInvalidCredentials {
			l.Warn("login_failed", "status", 401, "reason", "invalid credentials")
		}
		return err
	}

	l.Info("login_success")
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthHTTP) SecureData(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.MissingToken()
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Hello, " + id.Username + "! This is protected data.",
		"user":    id,
	})
}
