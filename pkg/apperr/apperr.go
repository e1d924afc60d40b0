// Package apperr classifies failures so transports can map them to a status.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConfiguration
	KindProvider
	KindDelivery
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConfiguration:
		return "configuration"
	case KindProvider:
		return "provider"
	case KindDelivery:
		return "delivery"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Status is the HTTP status the kind is reported with.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String() + " error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

func Validation(format string, args ...any) error {
	return New(KindValidation, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...any) error {
	return New(KindNotFound, fmt.Errorf(format, args...))
}

func Configuration(format string, args ...any) error {
	return New(KindConfiguration, fmt.Errorf(format, args...))
}

func Delivery(err error) error {
	return New(KindDelivery, err)
}

func Storage(err error) error {
	return New(KindStorage, err)
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func Status(err error) int {
	return KindOf(err).Status()
}
