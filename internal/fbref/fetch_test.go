package fbref

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetch_SendsBrowserHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = io.WriteString(w, "<html>ok</html>")
	}))
	defer srv.Close()

	p, err := NewFetcher(5*time.Second).Fetch(context.Background(), srv.URL+"/en/squads/x/Gotham-FC-Stats")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !p.OK() || p.Body != "<html>ok</html>" {
		t.Fatalf("page = %+v", p)
	}
	for _, h := range []string{"User-Agent", "Accept", "Accept-Language", "Referer", "DNT", "Upgrade-Insecure-Requests"} {
		if got.Get(h) != browserHeaders[h] {
			t.Errorf("%s = %q, want %q", h, got.Get(h), browserHeaders[h])
		}
	}
}

func TestFetch_NonOKIsNotAnError(t *testing.T) {
	cases := []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError}
	for _, code := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		p, err := NewFetcher(0).Fetch(context.Background(), srv.URL)
		srv.Close()
		if err != nil {
			t.Fatalf("%d: unexpected error %v", code, err)
		}
		if p.OK() || p.StatusCode != code {
			t.Fatalf("%d: page = %+v", code, p)
		}
	}
}

func TestFetch_NoRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	if _, err := NewFetcher(0).Fetch(context.Background(), srv.URL); err != nil {
		t.Fatal(err)
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("hits = %d, want 1", n)
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(time.Second).Fetch(context.Background(), url)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
	if ne.URL != url {
		t.Fatalf("URL = %q", ne.URL)
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewFetcher(50*time.Millisecond).Fetch(context.Background(), srv.URL)
	var ne *NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v, want *NetworkError", err)
	}
}
