// Package httputil holds the shared request decoding and response writing
// helpers used by every HTTP handler.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "vorsorge/pkg/domain-errors"
)

// Validatable is implemented by request payloads that validate and parse
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// errorResponse is the wire shape of every error body.
type errorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// WriteError maps a coded error onto an HTTP status and a JSON error body.
// Internal errors never leak their message to the client.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{Error: wireCode(code)}
	var coded *dErrors.Error
	if code != dErrors.CodeInternal && errors.As(err, &coded) {
		resp.Description = coded.Message()
	}
	WriteJSON(w, StatusFromCode(code), resp)
}

// DecodeAndPrepare decodes the JSON body into T and runs its Validate method,
// writing the error response itself on failure. The boolean result tells the
// handler whether to continue.
func DecodeAndPrepare[T any, PT interface {
	*T
	Validatable
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	req := PT(new(T))
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		logger.WarnContext(ctx, "request validation failed",
			"request_id", requestID,
			"error", err,
		)
		WriteError(w, err)
		return nil, false
	}
	return req, true
}

// StatusFromCode maps an error code onto its HTTP status.
func StatusFromCode(code dErrors.Code) int {
	switch code {
	case dErrors.CodeBadRequest, dErrors.CodeInvalidInput, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeForbidden, dErrors.CodeMissingConsent:
		return http.StatusForbidden
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict:
		return http.StatusConflict
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	case dErrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func wireCode(code dErrors.Code) string {
	if code == dErrors.CodeInternal {
		return "internal_error"
	}
	return string(code)
}
