package httperr

import (
	"errors"
	"net/http"
)

// Kind classifies a business failure. Each kind maps to one HTTP status.
type Kind string

const (
	KindInvalidArgument Kind = "invalid_argument"
	KindForbidden       Kind = "forbidden"
	KindNotFound        Kind = "not_found"
	KindInvalidState    Kind = "invalid_state"
	KindConflict        Kind = "conflict"
	KindUnauthorized    Kind = "unauthorized"
)

func (k Kind) Status() int {
	switch k {
	case KindInvalidArgument, KindInvalidState:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func ErrInvalidArgument(code, message string) error {
	return ErrBusiness(KindInvalidArgument, code, message)
}

func ErrForbidden(code, message string) error {
	return ErrBusiness(KindForbidden, code, message)
}

func ErrNotFound(code, message string) error {
	return ErrBusiness(KindNotFound, code, message)
}

func ErrInvalidState(code, message string) error {
	return ErrBusiness(KindInvalidState, code, message)
}

func ErrConflict(code, message string) error {
	return ErrBusiness(KindConflict, code, message)
}

func ErrUnauthorized(code, message string) error {
	return ErrBusiness(KindUnauthorized, code, message)
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return BusinessError{}, false
}

func IsBusiness(err error, code string) bool {
	be, ok := AsBusiness(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := AsBusiness(err)
	return ok && be.Kind == kind
}
