package mirror

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestFetcherRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewFetcher(WithHTTPClient(server.Client()), WithBaseDelay(time.Millisecond))
	data, err := f.Get(context.Background(), server.URL+"/x")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "ok" || calls.Load() != 3 {
		t.Errorf("Get = %q after %d calls, want ok after 3", data, calls.Load())
	}
}

func TestFetcherGivesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	f := NewFetcher(WithHTTPClient(server.Client()), WithBaseDelay(time.Millisecond), WithMaxRetries(2))
	_, err := f.Get(context.Background(), server.URL+"/x")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Get error = %v, want %v", err, ErrRateLimited)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFetcherDoesNotRetryNotFound(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	f := NewFetcher(WithHTTPClient(server.Client()), WithBaseDelay(time.Millisecond))
	_, err := f.Get(context.Background(), server.URL+"/missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get error = %v, want %v", err, ErrNotFound)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestFetcherWithoutRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	f := NewFetcher(WithHTTPClient(server.Client()), WithMaxRetries(0), WithBaseDelay(time.Millisecond))
	if _, err := f.Get(ctx, server.URL+"/x"); !errors.Is(err, ErrUpstreamDown) {
		t.Fatalf("Get error = %v, want %v", err, ErrUpstreamDown)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestBreakerGetterTrips(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	inner := NewFetcher(WithHTTPClient(server.Client()), WithMaxRetries(0))
	b := NewBreakerGetter(inner)
	b.Threshold = 2
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := b.Get(ctx, server.URL+"/x"); !errors.Is(err, ErrUpstreamDown) {
			t.Fatalf("call %d error = %v, want %v", i, err, ErrUpstreamDown)
		}
	}

	_, err := b.Get(ctx, server.URL+"/x")
	if !errors.Is(err, ErrUpstreamDown) {
		t.Errorf("open breaker error = %v, want %v", err, ErrUpstreamDown)
	}
	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2 (open breaker must not call through)", calls.Load())
	}
	if state := b.State()[hostOf(server.URL)]; state != "open" {
		t.Errorf("breaker state = %q, want open", state)
	}
}

func TestHostOf(t *testing.T) {
	tests := map[string]string{
		"https://mirror.example.org/g-octave/index.toml": "mirror.example.org",
		"http://127.0.0.1:8080/x":                        "127.0.0.1:8080",
		"not a url":                                      "not a url",
	}
	for in, want := range tests {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
