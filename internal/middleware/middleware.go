package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/aanandhisonduri/BigBrain/internal/config"
	"github.com/aanandhisonduri/BigBrain/internal/metrics"
	"github.com/aanandhisonduri/BigBrain/pkg/logging"
	"github.com/google/uuid"
)

var logger = logging.NewLogger("middleware")

// Wrap applies the standard chain: trace id, caller identity, per-IP
// rate limit, request metrics.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recorder := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}

		r = injectTrace(r)
		r = resolveIdentity(r)

		if !allow(r) {
			logger.Warn("Rate limit exceeded", "ip", clientIP(r))
			http.Error(recorder, "rate limit exceeded", http.StatusTooManyRequests)
		} else {
			next(recorder, r)
		}

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(recorder.Status)).Inc()
	}
}

func injectTrace(r *http.Request) *http.Request {
	trace := r.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = uuid.New().String()
	}
	ctx := context.WithValue(r.Context(), config.TraceIdKey, trace)
	return r.WithContext(ctx)
}

// resolveIdentity passes the bearer token through as the opaque caller
// identity. Credential validation belongs to the external identity
// issuer; the core only compares this value to stored owner tokens. No
// header means unauthenticated, which each endpoint handles itself.
func resolveIdentity(r *http.Request) *http.Request {
	identity := ""
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		identity = strings.TrimPrefix(header, "Bearer ")
	}
	ctx := context.WithValue(r.Context(), config.IdentityKey, identity)
	return r.WithContext(ctx)
}

// CallerIdentity reads the resolved identity; empty means
// unauthenticated.
func CallerIdentity(ctx context.Context) string {
	identity, _ := ctx.Value(config.IdentityKey).(string)
	return identity
}

func TraceId(ctx context.Context) string {
	trace, _ := ctx.Value(config.TraceIdKey).(string)
	return trace
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func allow(r *http.Request) bool {
	return limiterInstance.GetLimiter(clientIP(r)).Allow()
}
