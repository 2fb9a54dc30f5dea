package handler

import (
	"context"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dangtrinh58/goshop/internal/core/domain"
	"github.com/dangtrinh58/goshop/internal/port"
)

type ctxKey int

const identityKey ctxKey = iota

type identity struct {
	UserID int64
	Role   domain.Role
}

func identityFrom(r *http.Request) (identity, bool) {
	id, ok := r.Context().Value(identityKey).(identity)
	return id, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// observe tags every request with an id, logs it and records metrics.
func observe(metrics *Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		metrics.Requests.WithLabelValues(pattern, http.StatusText(rec.status)).Inc()
		metrics.Latency.WithLabelValues(pattern).Observe(elapsed.Seconds())

		log.Printf("request_id=%s method=%s path=%s status=%d duration=%s",
			requestID, r.Method, r.URL.Path, rec.status, elapsed)
	})
}

// authenticate requires a valid bearer token and stashes the identity it
// carries in the request context.
func authenticate(tokens port.TokenIssuer, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}

		userID, role, err := tokens.Verify(raw)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity{UserID: userID, Role: role})
		next(w, r.WithContext(ctx))
	}
}

// requireRoles rejects authenticated callers whose role is not listed.
func requireRoles(roles []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFrom(r)
		if !ok {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		if !slices.Contains(roles, id.Role) {
			writeJSON(w, http.StatusForbidden, errorResponse{Error: "insufficient role"})
			return
		}
		next(w, r)
	}
}
