package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/portfolio/pkg/logging"
)

type Body struct {
	Error BodyError `json:"error"`
}

type BodyError struct {
	Kind   Kind   `json:"kind"`
	Detail string `json:"detail"`
}

// HTTPErrorHandler renders every error reaching echo as {error:{kind,detail}}.
// Server side faults are logged with their cause and answered with a
// generic detail.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := render(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request_failed",
			"status", status,
			"kind", body.Error.Kind,
			"error", err,
		)
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, body)
	}
	if werr != nil {
		logging.FromContext(c.Request().Context()).Error("error_response_failed", "error", werr)
	}
}

func render(err error) (int, Body) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status, Body{Error: BodyError{Kind: ae.Kind, Detail: ae.Detail}}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, Body{Error: BodyError{Kind: kindForStatus(he.Code), Detail: httpDetail(he)}}
	}

	return http.StatusInternalServerError, Body{Error: BodyError{Kind: KindInternal, Detail: "internal error"}}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusUnauthorized:
		return KindMissingToken
	case status == http.StatusForbidden:
		return KindInvalidToken
	case status == http.StatusMethodNotAllowed:
		return KindMethodNotAllowed
	case status >= 500:
		return KindInternal
	default:
		return KindValidation
	}
}

func httpDetail(he *echo.HTTPError) string {
	if he.Code >= 500 {
		return http.StatusText(he.Code)
	}
	if s, ok := he.Message.(string); ok {
		return s
	}
	return fmt.Sprint(he.Message)
}
