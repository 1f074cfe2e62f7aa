package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/eld-trips/internal/domain"
	"github.com/pkordes/eld-trips/internal/handler/gen"
)

const (
	codeNotFound   = "not_found"
	codeValidation = "validation_error"
	codeInternal   = "internal_error"
	codeTooLarge   = "request_too_large"
)

// notFoundBody returns an ErrorResponse for a missing resource.
func notFoundBody(message string) gen.NotFoundJSONResponse {
	return gen.NotFoundJSONResponse{Error: gen.ErrorDetail{Code: codeNotFound, Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// Per-field messages are included when err carries a *domain.ValidationError.
func validationBody(err error) gen.BadRequestJSONResponse {
	detail := gen.ErrorDetail{Code: codeValidation, Message: "Invalid input."}

	var verr *domain.ValidationError
	if errors.As(err, &verr) && !verr.Empty() {
		fields := verr.Fields
		detail.Fields = &fields
	}
	return gen.BadRequestJSONResponse{Error: detail}
}

// requestBody returns an ErrorResponse for a request rejected before it
// reached the service layer (malformed JSON, bad query parameter).
func requestBody(message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: codeValidation, Message: message}}
}

// StrictOptions returns the strict-handler hooks that render body decode
// failures as JSON 400 (413 past the body limit) and unexpected errors as a
// generic JSON 500.
func StrictOptions(log *slog.Logger) gen.StrictHTTPServerOptions {
	return gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				writeJSON(w, http.StatusRequestEntityTooLarge, gen.ErrorResponse{
					Error: gen.ErrorDetail{Code: codeTooLarge, Message: "Request body too large."},
				})
				return
			}
			writeJSON(w, http.StatusBadRequest, requestBody(decodeMessage(err)))
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			log.ErrorContext(r.Context(), "request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			writeJSON(w, http.StatusInternalServerError, gen.ErrorResponse{
				Error: gen.ErrorDetail{Code: codeInternal, Message: "An unexpected error occurred."},
			})
		},
	}
}

// ParamErrorHandler renders router-level parameter binding failures, such as
// a non-numeric trip id or a malformed created_after, as JSON 400.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	body := requestBody(err.Error())

	var perr *gen.InvalidParamFormatError
	if errors.As(err, &perr) {
		fields := map[string][]string{perr.ParamName: {"Invalid value."}}
		body.Error.Message = "Invalid parameter " + perr.ParamName + "."
		body.Error.Fields = &fields
	}
	writeJSON(w, http.StatusBadRequest, body)
}

// decodeMessage trims the generated "can't decode JSON body: " prefix so
// clients see only the decoder's own message.
func decodeMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), "can't decode JSON body: ")
	return "Malformed JSON body: " + msg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
