// Package httputil centralizes JSON encoding and domain error translation
// for HTTP handlers so every endpoint produces the same envelopes.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "rosterd/pkg/domain-errors"
)

// statusByCode maps domain error codes onto HTTP status codes.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeValidation:   http.StatusBadRequest,
	dErrors.CodeInvalidInput: http.StatusBadRequest,
	dErrors.CodeBadRequest:   http.StatusBadRequest,
	dErrors.CodeUnauthorized: http.StatusUnauthorized,
	dErrors.CodeForbidden:    http.StatusForbidden,
	dErrors.CodeNotFound:     http.StatusNotFound,
	dErrors.CodeConflict:     http.StatusBadRequest,
	dErrors.CodeInternal:     http.StatusInternalServerError,
}

// errorResponse is the error envelope the presentation layer displays
// verbatim: {"error": "<human-readable message>"}.
type errorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors never leak their detail; clients see a generic message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	message := dErrors.MessageOf(err)
	if code == dErrors.CodeInternal || message == "" {
		message = "internal server error"
	}
	WriteJSON(w, status, errorResponse{Error: message})
}

// DecodeJSON decodes the request body into dst, returning a coded error on
// malformed input so handlers can pass it straight to WriteError.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
