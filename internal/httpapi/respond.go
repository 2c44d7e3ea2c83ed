package httpapi

import (
	"fmt"
	"net/http"

	"github.com/alexanderramin/etude/internal/app"
	"github.com/alexanderramin/etude/internal/domain"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type errorBody struct {
	Code    app.ErrorCode `json:"code"`
	Message string        `json:"message"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode JSON response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := app.CodeOf(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("code", string(code)).Msg("request failed")
	}
	writeJSON(w, r, status, errorBody{Code: code, Message: err.Error()})
}

func statusFor(code app.ErrorCode) int {
	switch code {
	case app.ErrCodeMalformedIdentifier, app.ErrCodeInvalidValue:
		return http.StatusBadRequest
	case app.ErrCodeNotAuthenticated:
		return http.StatusUnauthorized
	case app.ErrCodeNotFound:
		return http.StatusNotFound
	case app.ErrCodePersistenceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidDomainValue}, args...)...)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("decoding body: %v", err)
	}
	return nil
}
