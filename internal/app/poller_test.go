package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/chromaview/internal/bridge"
	"github.com/five82/chromaview/internal/state"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 64; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

// newChromaServer answers the endpoints used by the connect sequence and
// fails heartbeats while down is set.
func newChromaServer(t *testing.T, down *atomic.Bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/heartbeat", func(w http.ResponseWriter, _ *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Unavailable","message":"server is shutting down"}`))
			return
		}
		_, _ = w.Write([]byte(`{"nanosecond heartbeat": 1712345678}`))
	})
	mux.HandleFunc("/api/v2/tenants/default_tenant", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"default_tenant"}`))
	})
	mux.HandleFunc("/api/v2/tenants/default_tenant/databases/default_database", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"default_database"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckHealth_SkipsUntilConnected(t *testing.T) {
	store := &state.Store{}
	b := bridge.New(bridge.Options{})

	if got := checkHealth(context.Background(), store, b); got != 0 {
		t.Fatalf("checkHealth = %d, want 0 while disconnected", got)
	}
	if snap := store.Snapshot(); snap.ConsecutiveFailures != 0 || snap.LastError != nil {
		t.Fatalf("store touched while disconnected: %#v", snap)
	}
}

func TestCheckHealth_TracksFailuresAndRecovery(t *testing.T) {
	var down atomic.Bool
	srv := newChromaServer(t, &down)

	ctx := context.Background()
	b := bridge.New(bridge.Options{Timeout: 2 * time.Second})
	p, err := bridge.Connect(ctx, b, bridge.ConnectParams{URL: srv.URL})
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	store := &state.Store{}
	store.Dispatch(state.Connected{Endpoint: state.Endpoint{URL: p.URL, Tenant: p.Tenant, Database: p.Database}})

	down.Store(true)
	checkHealth(ctx, store, b)
	if got := checkHealth(ctx, store, b); got != 2 {
		t.Fatalf("failures = %d, want 2", got)
	}
	snap := store.Snapshot()
	if !snap.IsOffline() {
		t.Fatalf("IsOffline() = false after two failed heartbeats")
	}
	if snap.LastError == nil || snap.LastError.Error() != "server is shutting down" {
		t.Fatalf("LastError = %v, want server message", snap.LastError)
	}

	down.Store(false)
	if got := checkHealth(ctx, store, b); got != 0 {
		t.Fatalf("failures after recovery = %d, want 0", got)
	}
	if store.Snapshot().IsOffline() {
		t.Fatalf("still offline after recovery")
	}
}

func TestStartHeartbeat_StopsWithContext(t *testing.T) {
	var down atomic.Bool
	srv := newChromaServer(t, &down)

	ctx, cancel := context.WithCancel(context.Background())
	b := bridge.New(bridge.Options{Timeout: time.Second})
	if _, err := bridge.Connect(ctx, b, bridge.ConnectParams{URL: srv.URL}); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	store := &state.Store{}
	store.Dispatch(state.Connected{})
	before := store.Snapshot().LastChecked

	StartHeartbeat(ctx, store, b, 10*time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for !store.Snapshot().LastChecked.After(before) {
		if time.Now().After(deadline) {
			t.Fatalf("heartbeat never ran")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
}
