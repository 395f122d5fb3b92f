package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/pkg/logging"
	"github.com/Skotchmaster/portfolio/pkg/tokens"
)

const CtxIdentity = "identity"

const bearerPrefix = "Bearer "

type identityKey struct{}

type Verifier interface {
	Verify(token string) (tokens.Identity, error)
}

type Gate struct {
	Verifier Verifier
}

func NewGate(v Verifier) *Gate {
	return &Gate{Verifier: v}
}

// RequireAdmin lets the request through only with a valid bearer token.
func (g *Gate) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		l := logging.FromContext(c.Request().Context())

		raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), bearerPrefix)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			l.Warn("auth_failed", "status", 401, "reason", "missing bearer token")
			return apperr.MissingToken()
		}

		id, err := g.Verifier.Verify(raw)
		if err != nil {
			l.Warn("auth_failed", "status", 403, "reason", "token rejected", "error", err)
			return apperr.InvalidToken(err)
		}

		c.Set(CtxIdentity, id)
		ctx := context.WithValue(c.Request().Context(), identityKey{}, id)
		ctx = logging.IntoContext(ctx, l.With("user", id.Username))
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

func IdentityFrom(c echo.Context) (tokens.Identity, bool) {
	id, ok := c.Get(CtxIdentity).(tokens.Identity)
	return id, ok
}

func IdentityFromContext(ctx context.Context) (tokens.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(tokens.Identity)
	return id, ok
}
