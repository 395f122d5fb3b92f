package apperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromStorage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		kind   Kind
		status int
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, kind: KindNotFound, status: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("get: %w", gorm.ErrRecordNotFound), kind: KindNotFound, status: http.StatusNotFound},
		{name: "foreign key", err: gorm.ErrForeignKeyViolated, kind: KindNotFound, status: http.StatusNotFound},
		{name: "deadline", err: fmt.Errorf("query: %w", context.DeadlineExceeded), kind: KindStorageTimeout, status: http.StatusGatewayTimeout},
		{name: "anything else", err: errors.New("connection reset"), kind: KindStorage, status: http.StatusInternalServerError},
		{name: "already translated", err: Validation("bad"), kind: KindValidation, status: http.StatusBadRequest},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := FromStorage(tt.err, "project not found")
			var ae *Error
			require.ErrorAs(t, got, &ae)
			assert.Equal(t, tt.kind, ae.Kind)
			assert.Equal(t, tt.status, ae.Status)
		})
	}

	assert.NoError(t, FromStorage(nil, "x"))
}

func TestHTTPErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		kind   Kind
		detail string
	}{
		{name: "validation", err: Validation("title is required"), status: 400, kind: KindValidation, detail: "title is required"},
		{name: "missing token", err: MissingToken(), status: 401, kind: KindMissingToken, detail: "No token provided"},
		{name: "invalid token", err: InvalidToken(errors.New("sig")), status: 403, kind: KindInvalidToken, detail: "Invalid or expired token"},
		{name: "storage hides cause", err: Storage(errors.New("pq: password authentication failed")), status: 500, kind: KindStorage, detail: "storage error"},
		{name: "echo not found", err: echo.ErrNotFound, status: 404, kind: KindNotFound, detail: "Not Found"},
		{name: "echo method not allowed", err: echo.ErrMethodNotAllowed, status: 405, kind: KindMethodNotAllowed, detail: "Method Not Allowed"},
		{name: "plain error", err: errors.New("boom"), status: 500, kind: KindInternal, detail: "internal error"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			HTTPErrorHandler(tt.err, c)

			require.Equal(t, tt.status, rec.Code)
			var body Body
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.kind, body.Error.Kind)
			assert.Equal(t, tt.detail, body.Error.Detail)
			assert.NotContains(t, rec.Body.String(), "pq:")
		})
	}
}
