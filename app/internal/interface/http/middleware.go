package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	domuser "example.com/property-listing/app/internal/domain/user"
	authuc "example.com/property-listing/app/internal/usecase/auth"
)

type ctxKey int

const ctxUserKey ctxKey = iota

var errUnauthenticated = errors.New("unauthenticated")

func (a *API) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, http.StatusUnauthorized, errUnauthenticated)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := a.authSvc.Authenticate(r.Context(), token)
		if err != nil {
			if errors.Is(err, domuser.ErrUnauthorized) {
				respondError(w, http.StatusUnauthorized, errUnauthenticated)
				return
			}
			a.handleDomainError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxUserKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getAuthUser(ctx context.Context) *authuc.Claims {
	if claims, ok := ctx.Value(ctxUserKey).(*authuc.Claims); ok {
		return claims
	}
	return nil
}

// requestLogger emits one structured line per request.
func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("route", routePattern(r)),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", chimw.GetReqID(r.Context())),
			zap.String("remote_ip", r.RemoteAddr),
		}
		switch {
		case status >= http.StatusInternalServerError:
			a.log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			a.log.Warn("request", fields...)
		default:
			a.log.Info("request", fields...)
		}
	})
}

// routePattern returns the matched chi pattern, e.g. /v1/properties/{slug}.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
