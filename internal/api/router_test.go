package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubEvents struct {
	hits int
}

func (s *stubEvents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.hits++
	w.WriteHeader(http.StatusAccepted)
}

func TestRouterHealth(t *testing.T) {
	h := &Handler{Events: &stubEvents{}}
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", res.StatusCode)
	}
	if got := res.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %s", got)
	}
}

func TestRouterEventsRoute(t *testing.T) {
	events := &stubEvents{}
	h := &Handler{Events: events}
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	res, err := http.Post(srv.URL+"/v1/slack/events", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer res.Body.Close()
	if events.hits != 1 {
		t.Fatalf("events handler not routed, hits=%d", events.hits)
	}
}

func TestRouterUnknownPath(t *testing.T) {
	h := &Handler{Events: &stubEvents{}}
	srv := httptest.NewServer(NewRouter(h))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}
