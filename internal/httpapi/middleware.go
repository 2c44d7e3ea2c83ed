package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/etude/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// UserHeader carries the authenticated user ID.
const UserHeader = "X-User-ID"

type ctxKey int

const userKey ctxKey = iota

func userFrom(ctx context.Context) string {
	u, _ := ctx.Value(userKey).(string)
	return u
}

// requireUser rejects requests without a user ID with 401.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := strings.TrimSpace(r.Header.Get(UserHeader))
		if user == "" {
			writeError(w, r, domain.ErrNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// requestLogger logs one line per request and attaches a request-scoped
// logger to the context.
func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			reqLog := logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
			r = r.WithContext(reqLog.WithContext(r.Context()))

			next.ServeHTTP(ww, r)

			ev := reqLog.Info()
			if ww.Status() >= http.StatusInternalServerError {
				ev = reqLog.Error()
			}
			ev.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("http_request")
		})
	}
}
