// Package apperr holds the error kinds surfaced to clients and the single
// place where they are turned into HTTP responses.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

type Kind string

const (
	KindValidation         Kind = "validation_error"
	KindMissingToken       Kind = "missing_token"
	KindInvalidToken       Kind = "invalid_token"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotFound           Kind = "not_found"
	KindStorage            Kind = "storage_error"
	KindStorageTimeout     Kind = "storage_timeout"
	KindMethodNotAllowed   Kind = "method_not_allowed"
	KindInternal           Kind = "internal_error"
)

type Error struct {
	Kind   Kind
	Status int
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Detail: detail}
}

func MissingToken() *Error {
	return &Error{Kind: KindMissingToken, Status: http.StatusUnauthorized, Detail: "No token provided"}
}

func InvalidToken(err error) *Error {
	return &Error{Kind: KindInvalidToken, Status: http.StatusForbidden, Detail: "Invalid or expired token", Err: err}
}

func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Status: http.StatusUnauthorized, Detail: "Invalid credentials"}
}

func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Status: http.StatusInternalServerError, Detail: "storage error", Err: err}
}

func StorageTimeout(err error) *Error {
	return &Error{Kind: KindStorageTimeout, Status: http.StatusGatewayTimeout, Detail: "storage timeout", Err: err}
}

// FromStorage maps an error coming out of the repo layer. notFound is the
// client facing detail used when the row does not exist.
func FromStorage(err error, notFound string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, gorm.ErrForeignKeyViolated):
		return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Detail: notFound, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return StorageTimeout(err)
	default:
		return Storage(err)
	}
}

func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}
