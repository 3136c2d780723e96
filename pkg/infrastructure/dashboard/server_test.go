package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulse/pkg/application"
	"github.com/felixgeelhaar/pulse/pkg/domain/analytics"
)

type mockProvider struct {
	health    *analytics.HealthReport
	delays    []analytics.DelayPrediction
	forecast  *analytics.SprintForecast
	risk      *analytics.RiskRadar
	capacity  *analytics.CapacityForecast
	report    *application.Report
	healthErr error
	fcastErr  error
}

func (m *mockProvider) Health() (*analytics.HealthReport, error) {
	return m.health, m.healthErr
}

func (m *mockProvider) Delays() ([]analytics.DelayPrediction, error) {
	return m.delays, nil
}

func (m *mockProvider) Forecast(sprintID string) (*analytics.SprintForecast, error) {
	if m.fcastErr != nil {
		return nil, m.fcastErr
	}
	return m.forecast, nil
}

func (m *mockProvider) Risk() (*analytics.RiskRadar, error) {
	return m.risk, nil
}

func (m *mockProvider) Capacity(months int) (*analytics.CapacityForecast, error) {
	return m.capacity, nil
}

func (m *mockProvider) FullReport(months int) (*application.Report, error) {
	return m.report, nil
}

func newTestProvider() *mockProvider {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return &mockProvider{
		health: &analytics.HealthReport{
			Overall:     82,
			Status:      analytics.HealthHealthy,
			Summary:     "Project is in good shape.",
			GeneratedAt: now,
		},
		risk: &analytics.RiskRadar{
			Dimensions: []analytics.RiskDimension{
				{Name: analytics.RiskSchedule, Score: 12, Threshold: 50},
			},
			GeneratedAt: now,
		},
		capacity: &analytics.CapacityForecast{GeneratedAt: now},
		report:   &application.Report{GeneratedAt: now},
	}
}

func newTestServer(t *testing.T, provider DataProvider) http.Handler {
	t.Helper()
	srv, err := NewServer(":0", provider)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv.Handler()
}

func TestHandleIndex(t *testing.T) {
	handler := newTestServer(t, newTestProvider())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "82/100") {
		t.Errorf("index missing health score: %s", body)
	}
	if !strings.Contains(body, "status-healthy") {
		t.Error("index missing status class")
	}
}

func TestHandleIndex_ProviderError(t *testing.T) {
	provider := newTestProvider()
	provider.healthErr = errors.New("workspace not initialized")
	handler := newTestServer(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "workspace not initialized") {
		t.Error("index should surface provider error")
	}
}

func TestHandleAPIHealth(t *testing.T) {
	handler := newTestServer(t, newTestProvider())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %s", ct)
	}

	var report analytics.HealthReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Overall != 82 {
		t.Errorf("overall = %d, want 82", report.Overall)
	}
}

func TestHandleAPIHealth_Error(t *testing.T) {
	provider := newTestProvider()
	provider.healthErr = errors.New("boom")
	handler := newTestServer(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleAPIDelays_EmptyIsArray(t *testing.T) {
	handler := newTestServer(t, newTestProvider())

	req := httptest.NewRequest(http.MethodGet, "/api/delays", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %s, want []", got)
	}
}

func TestHandleAPIForecast_NotFound(t *testing.T) {
	provider := newTestProvider()
	provider.fcastErr = errors.New("sprint \"x\" not found")
	handler := newTestServer(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/api/forecast?sprint=x", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleAPICapacity_BadMonths(t *testing.T) {
	handler := newTestServer(t, newTestProvider())

	req := httptest.NewRequest(http.MethodGet, "/api/capacity?months=soon", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleAPIReport(t *testing.T) {
	handler := newTestServer(t, newTestProvider())

	req := httptest.NewRequest(http.MethodGet, "/api/report", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
