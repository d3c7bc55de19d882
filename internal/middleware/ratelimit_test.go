package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientIPForRateLimit(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		remoteAddr string
		want       string
	}{
		{
			name:       "single ip",
			header:     "203.0.113.1",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "multiple ips use first",
			header:     " 203.0.113.1 , 198.51.100.2 ",
			remoteAddr: "198.51.100.10:1234",
			want:       "203.0.113.1",
		},
		{
			name:       "invalid forwarded falls back",
			header:     "invalid",
			remoteAddr: "198.51.100.10:1234",
			want:       "198.51.100.10",
		},
		{
			name:       "empty forwarded uses remote host",
			header:     "",
			remoteAddr: "198.51.100.10:1234",
			want:       "198.51.100.10",
		},
		{
			name:       "ipv6 forwarded",
			header:     "2001:db8::1",
			remoteAddr: net.JoinHostPort("2001:db8::2", "443"),
			want:       "2001:db8::1",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/contact-inquiries", nil)
			r.RemoteAddr = tc.remoteAddr
			if tc.header != "" {
				r.Header.Set("X-Forwarded-For", tc.header)
			}
			if got := clientIPForRateLimit(r); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRateLimitBlocksAfterLimit(t *testing.T) {
	handler := RateLimit(2, time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/contact-inquiries", nil)
		r.RemoteAddr = "198.51.100.10:1234"
		handler.ServeHTTP(rr, r)
		if rr.Code != http.StatusCreated {
			t.Fatalf("request %d: got %d, want 201", i+1, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/contact-inquiries", nil)
	r.RemoteAddr = "198.51.100.10:1234"
	handler.ServeHTTP(rr, r)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after limit, got %d", rr.Code)
	}

	// A different client is unaffected.
	rr = httptest.NewRecorder()
	r = httptest.NewRequest("POST", "/api/contact-inquiries", nil)
	r.RemoteAddr = "203.0.113.9:4321"
	handler.ServeHTTP(rr, r)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected other client to pass, got %d", rr.Code)
	}
}
