package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomz197/asteroids-classic/internal/logging"
)

type board struct {
	scores []int
	err    error
	asked  int
}

func (b *board) Top(_ context.Context, n int) ([]int, error) {
	b.asked = n
	return b.scores, b.err
}

func get(t *testing.T, h http.Handler, path, remote string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if remote != "" {
		req.RemoteAddr = remote
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLandingPage(t *testing.T) {
	site := NewSite(Config{SSHHost: "play.example.org", SSHPort: "2222"}, nil, logging.Discard())
	rec := get(t, site.Handler(nil), "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "ssh -p 2222 play.example.org") {
		t.Errorf("page lacks connect command:\n%s", body)
	}

	site = NewSite(Config{SSHHost: "play.example.org", SSHPort: "22"}, nil, logging.Discard())
	if body := get(t, site.Handler(nil), "/", "").Body.String(); !strings.Contains(body, "<pre>ssh play.example.org</pre>") {
		t.Errorf("default port should be omitted:\n%s", body)
	}
}

func TestUnknownPath(t *testing.T) {
	site := NewSite(Config{}, nil, logging.Discard())
	if rec := get(t, site.Handler(nil), "/nope", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestScoresAPI(t *testing.T) {
	b := &board{scores: []int{9000, 500}}
	site := NewSite(Config{TopN: 5}, b, logging.Discard())
	rec := get(t, site.Handler(nil), "/api/scores", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp scoresResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Scores) != 2 || resp.Scores[0] != 9000 || b.asked != 5 {
		t.Errorf("scores = %v, asked for %d", resp.Scores, b.asked)
	}
}

func TestScoresWithoutStore(t *testing.T) {
	site := NewSite(Config{}, nil, logging.Discard())
	rec := get(t, site.Handler(nil), "/api/scores", "")
	if strings.TrimSpace(rec.Body.String()) != `{"scores":[]}` {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestScoresStoreFailure(t *testing.T) {
	site := NewSite(Config{}, &board{err: errors.New("down")}, logging.Discard())
	if rec := get(t, site.Handler(nil), "/api/scores", ""); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func TestRateLimitPerClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 0.001, 2, false, logging.Discard())
	h := NewSite(Config{}, nil, logging.Discard()).Handler(rl)

	for i := range 2 {
		if rec := get(t, h, "/api/scores", "10.0.0.1:4000"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status %d", i, rec.Code)
		}
	}
	rec := get(t, h, "/api/scores", "10.0.0.1:4001")
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") != "1" {
		t.Errorf("third request: status %d", rec.Code)
	}
	if rec := get(t, h, "/api/scores", "10.0.0.2:4000"); rec.Code != http.StatusOK {
		t.Errorf("other client throttled: %d", rec.Code)
	}
	// The landing page is not limited.
	if rec := get(t, h, "/", "10.0.0.1:4000"); rec.Code != http.StatusOK {
		t.Errorf("landing page throttled: %d", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if ip := clientIP(req, false); ip != "192.168.1.1" {
		t.Errorf("untrusted ip = %s", ip)
	}
	if ip := clientIP(req, true); ip != "203.0.113.9" {
		t.Errorf("proxied ip = %s", ip)
	}
}
