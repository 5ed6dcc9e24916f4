package restclient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"

	"github.com/pkg/errors"
)

const unknownErrorText = "erro desconhecido"

// APIError is a failure response returned by the server. Message is
// extracted from the body following the same fallback order for every
// resource so the UI stays consistent.
type APIError struct {
	StatusCode int
	Message    string
	// Fields holds field-level server validation errors when the body has
	// them, keyed by field name.
	Fields map[string][]string
}

func (e *APIError) Error() string { return e.Message }

// NetworkError is a request that produced no response at all. It is a
// distinct shape from server error bodies; callers see a generic 500.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string   { return "falha de rede: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error   { return e.Err }
func (e *NetworkError) StatusCode() int { return http.StatusInternalServerError }

// ErrorStatus returns the HTTP status carried by err, or 0 when err is not
// a request failure.
func ErrorStatus(err error) int {
	switch e := errors.Cause(err).(type) {
	case *APIError:
		return e.StatusCode
	case *NetworkError:
		return e.StatusCode()
	}
	return 0
}

// IsAuthError reports whether err is a 401; no token refresh is attempted,
// the caller is expected to route back to login.
func IsAuthError(err error) bool {
	return ErrorStatus(err) == http.StatusUnauthorized
}

func newAPIError(status int, body []byte) *APIError {
	msg, fields := extractErrorMessage(body)
	return &APIError{StatusCode: status, Message: msg, Fields: fields}
}

// extractErrorMessage picks a human-readable message out of a failure body,
// checking in order: top-level string, `message`, `detail`, `error`, first
// element of `non_field_errors`, then the first field's first error string.
func extractErrorMessage(body []byte) (string, map[string][]string) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return unknownErrorText, nil
	}

	var s string
	if err := json.Unmarshal(body, &s); err == nil && s != "" {
		return s, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return unknownErrorText, nil
	}
	fields := fieldErrors(obj)

	for _, key := range []string{"message", "detail", "error"} {
		if raw, ok := obj[key]; ok {
			if err := json.Unmarshal(raw, &s); err == nil && s != "" {
				return s, fields
			}
		}
	}
	if errs := fields["non_field_errors"]; len(errs) > 0 {
		return errs[0], fields
	}

	// first field's first error string; keys sorted so the pick is deterministic
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if len(fields[k]) > 0 {
			return fields[k][0], fields
		}
	}
	return unknownErrorText, fields
}

func fieldErrors(obj map[string]json.RawMessage) map[string][]string {
	var fields map[string][]string
	for k, raw := range obj {
		var errs []string
		if err := json.Unmarshal(raw, &errs); err == nil && len(errs) > 0 {
			if fields == nil {
				fields = make(map[string][]string)
			}
			fields[k] = errs
		}
	}
	return fields
}
