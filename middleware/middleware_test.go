// ABOUTME: Tests for logging, CORS, recovery, body limits and chaining
// ABOUTME: Exercises each middleware through httptest recorders

package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markalston/network-capacity-planner/models"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestSanitizePath_RemovesControlCharacters(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"newline injection", "/api/v1/plan\nlevel=ERROR msg=forged", "/api/v1/planlevel=ERROR msg=forged"},
		{"carriage return", "/api/test\rmalicious", "/api/testmalicious"},
		{"tab and null", "/api/\t\x00x", "/api/x"},
		{"delete", "/api\x7f", "/api"},
		{"clean", "/api/v1/health", "/api/v1/health"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizePath(tt.input)
			if got != tt.want {
				t.Errorf("sanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogRequest_SetsRequestID(t *testing.T) {
	var seen string
	handler := LogRequest(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	header := w.Header().Get("X-Request-ID")
	if header == "" || len(header) != 16 {
		t.Errorf("Expected 16-char request ID, got %q", header)
	}
	if seen != header {
		t.Errorf("Expected context ID %q to match header, got %q", header, seen)
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("Expected status to pass through, got %d", w.Code)
	}
}

func TestLogRequest_ReusesValidIncomingID(t *testing.T) {
	tests := []struct {
		incoming string
		reused   bool
	}{
		{"abcdef0123456789", true},
		{"not-hex\nforged", false},
		{strings.Repeat("a", 66), false},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", tt.incoming)
		w := httptest.NewRecorder()
		LogRequest(okHandler)(w, req)

		got := w.Header().Get("X-Request-ID")
		if (got == tt.incoming) != tt.reused {
			t.Errorf("incoming %q: expected reused=%v, got %q", tt.incoming, tt.reused, got)
		}
	}
}

func TestCORS_AllowedOrigin(t *testing.T) {
	handler := CORS([]string{"https://planner.example.com"})(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", nil)
	req.Header.Set("Origin", "https://planner.example.com")
	w := httptest.NewRecorder()
	handler(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://planner.example.com" {
		t.Errorf("Expected origin echoed, got %q", got)
	}
}

func TestCORS_DisallowedOriginGetsNoHeaders(t *testing.T) {
	handler := CORS([]string{"https://planner.example.com"})(okHandler)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w := httptest.NewRecorder()
	handler(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no CORS header, got %q", got)
	}
	if w.Code != http.StatusOK {
		t.Errorf("Expected handler to run, got %d", w.Code)
	}
}

func TestCORS_WildcardAndPreflight(t *testing.T) {
	called := false
	handler := CORS([]string{"*"})(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/plan", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	handler(w, req)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
	if called {
		t.Error("Expected preflight not to reach the handler")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected wildcard to echo origin, got %q", got)
	}
}

func TestRecover_ReturnsJSON500(t *testing.T) {
	handler := Recover(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Expected JSON body: %v", err)
	}
	if resp.Code != 500 || resp.Error == "" {
		t.Errorf("Unexpected error body %+v", resp)
	}
}

func TestLimitBody_RejectsOversizedReads(t *testing.T) {
	var readErr error
	handler := LimitBody(8)(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	handler(httptest.NewRecorder(), req)

	if readErr == nil {
		t.Error("Expected read past the limit to fail")
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) func(http.HandlerFunc) http.HandlerFunc {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	handler := Chain(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mark("outer"), mark("inner"))
	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "outer,inner,handler" {
		t.Errorf("Expected outer,inner,handler, got %v", order)
	}
}
