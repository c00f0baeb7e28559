package server

import (
	"context"
	"net/http"
	"testing"
	"time"
)

func TestNormalizeAddr(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ":8080"},
		{"9000", ":9000"},
		{":9000", ":9000"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
	}
	for _, tt := range tests {
		if got := normalizeAddr(tt.in); got != tt.want {
			t.Fatalf("normalizeAddr(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNew_AppliesTimeouts(t *testing.T) {
	s := New("9000", http.NotFoundHandler())
	hs := s.httpServer
	if hs.ReadHeaderTimeout != readHeaderTimeout || hs.WriteTimeout != writeTimeout || hs.IdleTimeout != idleTimeout {
		t.Fatalf("timeouts not applied: %+v", hs)
	}
	if hs.MaxHeaderBytes != maxHeaderBytes {
		t.Fatalf("max header bytes not applied")
	}
	if s.Addr() != ":9000" {
		t.Fatalf("unexpected addr %q", s.Addr())
	}
}

func TestRun_ReturnsNilAfterShutdown(t *testing.T) {
	s := New("127.0.0.1:0", http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- s.Run() }()

	// let ListenAndServe start; Shutdown before it starts is handled the same way
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v after shutdown", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after shutdown")
	}
}
