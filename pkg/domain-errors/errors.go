// Package domainerrors is the closed error taxonomy surfaced by the family
// lookup pipeline. Every failure that leaves the service is an *Error carrying
// one of six codes and a stable, user-facing message.
package domainerrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Code identifies the kind of failure.
type Code string

const (
	// CodeValidation marks a malformed IIN, rejected before any network call.
	CodeValidation Code = "validation"
	// CodeAuth marks a credential rejection by the backend.
	CodeAuth Code = "auth"
	// CodeNotFound marks an IIN that has no family record.
	CodeNotFound Code = "not_found"
	// CodeEligibility marks an IIN outside the expected cohort.
	CodeEligibility Code = "eligibility"
	// CodeDecode marks backend data that cannot be interpreted.
	CodeDecode Code = "decode"
	// CodeTransport marks an unreachable, failing, or slow backend.
	CodeTransport Code = "transport"
)

// Codes lists every code in a stable order.
var Codes = []Code{CodeValidation, CodeAuth, CodeNotFound, CodeEligibility, CodeDecode, CodeTransport}

var userMessages = map[Code]string{
	CodeValidation:  "Неверный ИИН. ИИН должен состоять из 12 цифр без букв и пробелов",
	CodeAuth:        "Неправильный пароль. Свяжитесь с администраторами",
	CodeNotFound:    "ИИН не найден. Проверьте ИИН",
	CodeEligibility: "ИИН не входит в список",
	CodeDecode:      "Некорректные данные от сервера. Свяжитесь с администраторами",
	CodeTransport:   "Нет подключения к VPN на сервере. Свяжитесь с администраторами",
}

// UserMessage returns the fixed message shown to end users for a code.
func UserMessage(code Code) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return userMessages[CodeTransport]
}

// Error is a classified pipeline failure.
type Error struct {
	Code    Code
	Message string // operator-facing detail, not shown to end users
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the stable end-user message for this error's code.
func (e *Error) UserMessage() string {
	return UserMessage(e.Code)
}

// Retryable reports whether the caller may reasonably retry the operation.
func (e *Error) Retryable() bool {
	return e.Code == CodeTransport
}

// New creates a classified error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap classifies an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err is (or wraps) an *Error with the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code of a classified error. Unclassified errors are
// reported as transport failures.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeTransport
}

// Classify guarantees that err is one of the six kinds. Errors that are
// already classified pass through; deadlines, cancellations and network
// failures become transport errors; anything else is reported as a transport
// failure with its detail preserved for operators.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var de *Error
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Wrap(err, CodeTransport, "backend timed out")
	}
	if errors.Is(err, context.Canceled) {
		return Wrap(err, CodeTransport, "request cancelled")
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(err, CodeTransport, "backend unreachable")
	}
	return Wrap(err, CodeTransport, "unexpected backend failure")
}

// ToHTTPStatus maps a code onto the status returned by the HTTP surface.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeAuth:
		return http.StatusBadGateway
	case CodeNotFound:
		return http.StatusNotFound
	case CodeEligibility:
		return http.StatusForbidden
	case CodeDecode:
		return http.StatusBadGateway
	case CodeTransport:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
