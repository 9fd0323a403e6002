package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func capture(captured *context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*captured = r.Context()
		w.WriteHeader(http.StatusOK)
	}
}

func TestWrap_TraceAndIdentity(t *testing.T) {
	tests := []struct {
		name         string
		authHeader   string
		traceHeader  string
		wantIdentity string
		wantTrace    string
	}{
		{
			name:         "Bearer_Token_Becomes_Identity",
			authHeader:   "Bearer alice-token",
			traceHeader:  "trace-123",
			wantIdentity: "alice-token",
			wantTrace:    "trace-123",
		},
		{
			name:         "No_Header_Means_Unauthenticated",
			wantIdentity: "",
		},
		{
			name:         "Non_Bearer_Scheme_Ignored",
			authHeader:   "Basic dXNlcjpwYXNz",
			wantIdentity: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured context.Context
			handler := Wrap(capture(&captured))

			req := httptest.NewRequest(http.MethodGet, "/notes", nil)
			req.RemoteAddr = "10.0.0." + tt.name + ":1234"
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.traceHeader != "" {
				req.Header.Set("X-Trace-Id", tt.traceHeader)
			}
			handler(httptest.NewRecorder(), req)

			if got := CallerIdentity(captured); got != tt.wantIdentity {
				t.Errorf("identity got %q, want %q", got, tt.wantIdentity)
			}
			if tt.wantTrace != "" {
				if got := TraceId(captured); got != tt.wantTrace {
					t.Errorf("trace got %q, want %q", got, tt.wantTrace)
				}
			} else if TraceId(captured) == "" {
				t.Error("a missing trace header must still yield a trace id")
			}
		})
	}
}

func TestRateLimiter_PerIP(t *testing.T) {
	limiter := newIPRateLimiter(1, 2)

	first := limiter.GetLimiter("1.1.1.1")
	if first.Allow() != true || first.Allow() != true {
		t.Fatal("burst requests should pass")
	}
	if first.Allow() {
		t.Error("third immediate request should be limited")
	}

	// a different address gets its own bucket
	if !limiter.GetLimiter("2.2.2.2").Allow() {
		t.Error("fresh ip should not inherit another ip's limit")
	}
}
