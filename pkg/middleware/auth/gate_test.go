package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/portfolio/internal/apperr"
	"github.com/Skotchmaster/portfolio/pkg/tokens"
)

func TestRequireAdmin(t *testing.T) {
	t.Parallel()

	issuedAt := time.Now().Add(-2 * time.Hour)
	iss := tokens.NewIssuer([]byte("gate-secret"), time.Hour)

	valid, _, err := iss.Issue(tokens.Identity{Username: "admin"})
	require.NoError(t, err)
	expired, _, err := iss.WithClock(func() time.Time { return issuedAt }).Issue(tokens.Identity{Username: "admin"})
	require.NoError(t, err)
	foreign, _, err := tokens.NewIssuer([]byte("other"), time.Hour).Issue(tokens.Identity{Username: "admin"})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		kind   apperr.Kind
		status int
	}{
		{name: "no header", header: "", kind: apperr.KindMissingToken, status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic YWRtaW46cHc=", kind: apperr.KindMissingToken, status: http.StatusUnauthorized},
		{name: "lowercase scheme", header: "bearer " + valid, kind: apperr.KindMissingToken, status: http.StatusUnauthorized},
		{name: "bearer without token", header: "Bearer ", kind: apperr.KindMissingToken, status: http.StatusUnauthorized},
		{name: "raw token", header: valid, kind: apperr.KindMissingToken, status: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc.def.ghi", kind: apperr.KindInvalidToken, status: http.StatusForbidden},
		{name: "expired token", header: "Bearer " + expired, kind: apperr.KindInvalidToken, status: http.StatusForbidden},
		{name: "foreign signature", header: "Bearer " + foreign, kind: apperr.KindInvalidToken, status: http.StatusForbidden},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/api/secure-data", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := e.NewContext(req, httptest.NewRecorder())

			called := false
			err := NewGate(iss).RequireAdmin(func(c echo.Context) error {
				called = true
				return nil
			})(c)

			require.Error(t, err)
			assert.False(t, called)
			var ae *apperr.Error
			require.ErrorAs(t, err, &ae)
			assert.Equal(t, tt.kind, ae.Kind)
			assert.Equal(t, tt.status, ae.Status)
		})
	}
}

func TestRequireAdminAttachesIdentity(t *testing.T) {
	t.Parallel()

	iss := tokens.NewIssuer([]byte("gate-secret"), time.Hour)
	token, _, err := iss.Issue(tokens.Identity{Username: "admin"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/secure-data", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = NewGate(iss).RequireAdmin(func(c echo.Context) error {
		id, ok := IdentityFrom(c)
		require.True(t, ok)
		assert.Equal(t, "admin", id.Username)

		fromCtx, ok := IdentityFromContext(c.Request().Context())
		require.True(t, ok)
		assert.Equal(t, id, fromCtx)
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
