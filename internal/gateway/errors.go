// Package gateway is the typed HTTP client for the FinnBourse REST
// backend. It shapes requests, unwraps responses, and normalizes
// failures into a tagged error taxonomy; business logic stays with the
// callers. Every call is fire-once: no retry, no backoff, no caching.
package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind discriminates backend failures so callers switch on a tag instead
// of sniffing message text.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindDuplicateEmail
	KindNotFound
	KindAuth
	KindTransient
)

// String returns the kind's wire-stable name.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDuplicateEmail:
		return "duplicate_email"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	case KindTransient:
		return "transient"
	}
	return "unknown"
}

// Error is the normalized backend failure. Status is zero for transport
// errors that never produced a response.
type Error struct {
	Kind    Kind
	Status  int
	Code    string            // structured code from the body, if any
	Message string            // server-provided message, if any
	Fields  map[string]string // per-field messages for validation failures
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return fmt.Sprintf("backend %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend %s (%d)", e.Kind, e.Status)
}

// IsKind reports whether err is a gateway error of the given kind.
func IsKind(err error, k Kind) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Kind == k
}

// errorBody is the structured error shape the backend returns. Older
// deployments only populate message.
type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Errors  map[string]string `json:"errors"`
}

// classify turns a non-2xx response into an *Error. It prefers the
// structured code discriminant; the substring heuristic on message text
// only survives here as the fallback for backends that predate codes,
// and is never applied at call sites.
func classify(status int, body []byte) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	msg := eb.Message
	if msg == "" {
		msg = eb.Error
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	e := &Error{
		Status:  status,
		Code:    eb.Code,
		Message: msg,
		Fields:  eb.Errors,
	}

	switch eb.Code {
	case "duplicate_email":
		e.Kind = KindDuplicateEmail
		return e
	case "validation_failed":
		e.Kind = KindValidation
		return e
	case "not_found":
		e.Kind = KindNotFound
		return e
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status == http.StatusConflict:
		e.Kind = KindDuplicateEmail
	case status >= 400 && status < 500:
		if looksLikeDuplicateEmail(msg) {
			e.Kind = KindDuplicateEmail
		} else {
			e.Kind = KindValidation
		}
	case status >= 500:
		e.Kind = KindTransient
	default:
		e.Kind = KindUnknown
	}
	return e
}

// looksLikeDuplicateEmail is the legacy heuristic: "email" together with
// "already" or "use" in the free-text message.
func looksLikeDuplicateEmail(msg string) bool {
	m := strings.ToLower(msg)
	if !strings.Contains(m, "email") {
		return false
	}
	return strings.Contains(m, "already") || strings.Contains(m, "use")
}

// transportError wraps a failure that never produced an HTTP response
// (connection refused, timeout). Treated as transient: the operation is
// assumed not to have taken effect, and the caller's working state is
// untouched.
func transportError(err error) *Error {
	return &Error{
		Kind:    KindTransient,
		Message: err.Error(),
	}
}
