package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/model"

	"github.com/rs/zerolog"
)

// envelope is the `{success, ...}` response shape the original API
// exposed; existing storefront and admin clients match on it.
type envelope map[string]any

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already flushed; nothing sensible left to do.
		return
	}
}

// writeSuccess writes a success envelope with extra fields merged in.
func writeSuccess(w http.ResponseWriter, status int, fields envelope) {
	body := envelope{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, status, body)
}

// writeFailure writes a failure envelope. The order/user endpoints
// report domain failures with HTTP 200 like the original Express
// handlers; the payment endpoints use real status codes.
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// domainStatus maps a domain error to the HTTP status the payment and
// review endpoints use.
func domainStatus(derr *model.DomainError) int {
	switch derr.Code {
	case model.ErrCodeOrderNotFound, model.ErrCodeProductNotFound, model.ErrCodeUserNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// writeError reports an error on endpoints that use real status codes.
// Domain errors keep their message; everything else becomes an opaque
// 500 so internals never leak.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var derr *model.DomainError
	if errors.As(err, &derr) {
		writeFailure(w, domainStatus(derr), derr.Message)
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeFailure(w, http.StatusInternalServerError, "internal server error")
}

// writeSoftError reports an error the way the original order/user
// endpoints did: HTTP 200 with success=false and the error message.
func writeSoftError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var derr *model.DomainError
	if errors.As(err, &derr) {
		writeFailure(w, http.StatusOK, derr.Message)
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeFailure(w, http.StatusOK, "something went wrong")
}

// decode parses a JSON request body into dst.
func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewDomainError(model.ErrCodeInvalidJSON, "invalid request body")
	}
	return nil
}
