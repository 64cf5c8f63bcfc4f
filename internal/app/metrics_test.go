package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/five82/chromaview/internal/bridge"
)

func TestMetricsRouter(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := bridge.NewMetrics(reg)
	b := bridge.New(bridge.Options{Metrics: m})
	_ = bridge.Invoke[bool](context.Background(), b, bridge.HealthCheck, nil)

	srv := httptest.NewServer(NewMetricsRouter(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/healthz status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `chromaview_bridge_commands_total{command="health_check",status="error"} 1`) {
		t.Fatalf("/metrics missing bridge counter:\n%s", body)
	}
}

func TestStartMetricsServer_ServesAndStops(t *testing.T) {
	ctx := context.Background()
	srv, err := StartMetricsServer(ctx, "127.0.0.1:0", prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("StartMetricsServer: %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()

	StopMetricsServer(ctx, srv)
	if _, err := http.Get("http://" + srv.Addr + "/healthz"); err == nil {
		t.Fatalf("server still answering after shutdown")
	}
}

func TestStartMetricsServer_BadAddress(t *testing.T) {
	if _, err := StartMetricsServer(context.Background(), "256.0.0.1:bad", prometheus.NewRegistry()); err == nil {
		t.Fatalf("StartMetricsServer returned nil error for bad address")
	}
}
