package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func containsHeader(headerValue, target string) bool {
	for part := range strings.SplitSeq(headerValue, ",") {
		if strings.EqualFold(strings.TrimSpace(part), target) {
			return true
		}
	}
	return false
}

func TestSecuritySetsHeaders(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/metrics")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/users", nil))

	for _, kv := range securityHeaders {
		if got := resp.Header().Get(kv[0]); got != kv[1] {
			t.Errorf("%s: expected %q, got %q", kv[0], kv[1], got)
		}
	}
}

func TestSecuritySkipsPrefixes(t *testing.T) {
	resp := httptest.NewRecorder()
	Security("/metrics", "/api-docs")(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs/index.html", nil))

	if got := resp.Header().Get("Cache-Control"); got != "" {
		t.Fatalf("expected no security headers on skipped path, got Cache-Control %q", got)
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected downstream response, got %d", resp.Code)
	}
}

func TestCORSWildcardByDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://localhost/v1/profiles", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()

	CORS()(okHandler).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected '*', got %q", got)
	}
	expose := resp.Header().Get("Access-Control-Expose-Headers")
	for _, h := range []string{"Location", "X-Request-Id", "X-Amzn-Trace-Id"} {
		if !containsHeader(expose, h) {
			t.Errorf("expected exposed header %q, got %q", h, expose)
		}
	}
}

func TestCORSRestrictsOrigins(t *testing.T) {
	h := CORS("https://console.example.com")(okHandler)

	allowed := httptest.NewRequest(http.MethodGet, "http://localhost/v1/profiles", nil)
	allowed.Header.Set("Origin", "https://console.example.com")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, allowed)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://console.example.com" {
		t.Fatalf("expected allowed origin to be echoed, got %q", got)
	}

	denied := httptest.NewRequest(http.MethodGet, "http://localhost/v1/profiles", nil)
	denied.Header.Set("Origin", "https://evil.example.com")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, denied)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for unknown origin, got %q", got)
	}
}

func TestCORSPreflightAllowsTraceHeader(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodOptions, "http://localhost/v1/users", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Amzn-Trace-Id")
	resp := httptest.NewRecorder()

	CORS()(next).ServeHTTP(resp, req)

	if called {
		t.Fatal("expected preflight to be answered by CORS middleware")
	}
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for preflight, got %d", resp.Code)
	}
	if allow := resp.Header().Get("Access-Control-Allow-Headers"); !containsHeader(allow, "X-Amzn-Trace-Id") {
		t.Fatalf("expected trace header to be allowed, got %q", allow)
	}
}

func TestVarySetsAccept(t *testing.T) {
	resp := httptest.NewRecorder()
	Vary()(okHandler).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	if vary := resp.Header().Get("Vary"); vary != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", vary)
	}
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	var captured string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	}))
	resp := httptest.NewRecorder()

	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	parsed, err := uuid.Parse(captured)
	if err != nil {
		t.Fatalf("request ID %q is not a UUID: %v", captured, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
	if header := resp.Header().Get(chimiddleware.RequestIDHeader); header != captured {
		t.Fatalf("expected response header %q, got %q", captured, header)
	}
}

func TestRequestIDHeaderHandling(t *testing.T) {
	tests := []struct {
		name    string
		inputID string
		keep    bool
	}{
		{"alphanumeric kept", "abc123-XYZ", true},
		{"uuid kept", "550e8400-e29b-41d4-a716-446655440000", true},
		{"newline replaced", "abc\ninjected", false},
		{"non ascii replaced", "réq", false},
		{"too long replaced", strings.Repeat("a", maxRequestIDLength+1), false},
		{"max length kept", strings.Repeat("a", maxRequestIDLength), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				captured = chimiddleware.GetReqID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header[chimiddleware.RequestIDHeader] = []string{tt.inputID}

			h.ServeHTTP(httptest.NewRecorder(), req)

			if tt.keep && captured != tt.inputID {
				t.Fatalf("expected %q to be kept, got %q", tt.inputID, captured)
			}
			if !tt.keep && captured == tt.inputID {
				t.Fatalf("expected %q to be replaced", tt.inputID)
			}
		})
	}
}
