package common

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	nameKey     contextKey = "name"
)

// AnonymousIdentity is the placeholder identity attached to requests that
// carry no valid session token.
const AnonymousIdentity = "anonymous"

// IdentityMiddleware resolves the caller identity from a Bearer token when
// one is present and falls back to the anonymous placeholder otherwise.
// Handlers downstream read the identity with IdentityFromContext.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := AnonymousIdentity
		name := ""

		if header := r.Header.Get("Authorization"); header != "" {
			parts := strings.Fields(header)
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
				if claims, err := ValidToken(parts[1]); err == nil {
					identity = claims.UserID
					name = claims.Name
				}
			}
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		ctx = context.WithValue(ctx, nameKey, name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth gates a route: requests without a valid session token are
// rejected before reaching the handler.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromContext(r.Context()) == AnonymousIdentity {
			http.Error(w, "authorization required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the caller identity set by IdentityMiddleware,
// or the anonymous placeholder when the middleware did not run.
func IdentityFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(identityKey).(string); ok && v != "" {
		return v
	}
	return AnonymousIdentity
}

// NameFromContext returns the display name from the session claims, if any.
func NameFromContext(ctx context.Context) string {
	v, _ := ctx.Value(nameKey).(string)
	return v
}

// LoggingMiddleware logs every request with its outcome and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("→ %s %s", r.Method, r.URL.Path)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		if rec.status >= 400 {
			log.Printf("✗ %s %s failed (%d, %v)", r.Method, r.URL.Path, rec.status, duration)
		} else {
			log.Printf("✓ %s %s completed (%d, %v)", r.Method, r.URL.Path, rec.status, duration)
		}
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
