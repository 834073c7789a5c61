// Package apperr defines the error kinds shared by every concept and the
// HTTP layer. An error may embed raw ids in a message template; the HTTP
// layer replaces them with display names before answering.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

type Kind int

const (
	KindInternal Kind = iota
	KindBadInput
	KindNotFound
	KindConflict
	KindUnauthorized
	KindUnauthenticated
)

func (k Kind) String() string {
	switch k {
	case KindBadInput:
		return "bad_input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnauthenticated:
		return "unauthenticated"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to the status code sent to clients.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindBadInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a kinded error. Format may reference Args positionally as {0},
// {1}, ...; Code names errors whose arguments the HTTP layer knows how to
// humanize.
type Error struct {
	Kind   Kind
	Code   string
	Format string
	Args   []any
}

func (e *Error) Error() string {
	return e.FormatWith(e.Args...)
}

// FormatWith renders the template with substitutes for the raw arguments.
func (e *Error) FormatWith(args ...any) string {
	if len(args) == 0 {
		return e.Format
	}
	pairs := make([]string, 0, 2*len(args))
	for i, arg := range args {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", fmt.Sprint(arg))
	}
	return strings.NewReplacer(pairs...).Replace(e.Format)
}

func BadInput(format string, args ...any) *Error {
	return &Error{Kind: KindBadInput, Format: format, Args: args}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Format: format, Args: args}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Format: format, Args: args}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthorized, Format: format, Args: args}
}

func Unauthenticated(format string, args ...any) *Error {
	return &Error{Kind: KindUnauthenticated, Format: format, Args: args}
}

// WithCode tags the error for humanization.
func (e *Error) WithCode(code string) *Error {
	e.Code = code
	return e
}

// As extracts the *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
