package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"order-insights/internal/models"
	"order-insights/internal/server"
	"order-insights/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// Test helper to create analytics with test data
func newTestAnalytics() *services.Analytics {
	a := services.NewAnalytics(services.WithLogger(testLogger()))
	a.SetData([]models.Order{
		{OrderID: "O1", CustomerID: "C1", Customer: "Alice", Company: "Acme", Vendor: "V1", TotalRevenue: 100, GM1: 10, DeliveryStatus: "green"},
		{OrderID: "O2", CustomerID: "C1", Customer: "Alice", Company: "Acme", Vendor: "V1", TotalRevenue: 50, GM1: 5, DeliveryStatus: "red"},
		{OrderID: "O3", CustomerID: "C2", Customer: "Bob", Company: "Beta", Vendor: "V2", TotalRevenue: 850, GM1: 50, RefundAmount: 20},
	})
	return a
}

func newTestServer(a *services.Analytics) *server.Server {
	templateHandlers := &server.TemplateHandlers{Dashboard: dashboardHandler(a)}
	return server.NewServer(a, testLogger(), templateHandlers, server.Options{Currency: "MYR"})
}

// Integration tests for HTTP routes
func TestServer_Routes(t *testing.T) {
	srv := newTestServer(newTestAnalytics())

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/api/overview", http.StatusOK, "application/json"},
		{"/api/concentration", http.StatusOK, "application/json"},
		{"/api/repeat-behavior", http.StatusOK, "application/json"},
		{"/api/vendors", http.StatusOK, "application/json"},
		{"/api/order-segments", http.StatusOK, "application/json"},
		{"/api/logistics", http.StatusOK, "application/json"},
		{"/api/operational-risk", http.StatusOK, "application/json"},
		{"/api/report", http.StatusOK, "application/json"},
		{"/health", http.StatusOK, "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

func TestServer_ReportResponse(t *testing.T) {
	srv := newTestServer(newTestAnalytics())

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/api/report", nil))

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			Overall struct {
				TotalOrders  int     `json:"total_orders"`
				TotalRevenue float64 `json:"total_revenue"`
			} `json:"overall"`
			Concentration  []map[string]any `json:"concentration"`
			RepeatBehavior []map[string]any `json:"repeat_behavior"`
			OrderSegments  []map[string]any `json:"order_segments"`
			RecordCount    int              `json:"record_count"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if !response.Success {
		t.Error("expected success=true in response")
	}
	if response.Data.Overall.TotalOrders != 3 || response.Data.RecordCount != 3 {
		t.Errorf("expected 3 orders, got %d / %d", response.Data.Overall.TotalOrders, response.Data.RecordCount)
	}
	if response.Data.Overall.TotalRevenue != 1000 {
		t.Errorf("total revenue = %v, want 1000", response.Data.Overall.TotalRevenue)
	}
	if len(response.Data.Concentration) != 2 {
		t.Errorf("expected 2 customer groups, got %d", len(response.Data.Concentration))
	}
	if len(response.Data.RepeatBehavior) != 5 {
		t.Errorf("expected 5 repeat segments, got %d", len(response.Data.RepeatBehavior))
	}
	if len(response.Data.OrderSegments) != 6 {
		t.Errorf("expected 6 order segments, got %d", len(response.Data.OrderSegments))
	}
}

// Test Server-Sent Events routes
func TestServer_SSERoutes(t *testing.T) {
	srv := newTestServer(newTestAnalytics())

	sseRoutes := []string{
		"/sse/overview",
		"/sse/concentration",
		"/sse/repeat-behavior",
		"/sse/vendors",
		"/sse/order-segments",
		"/sse/logistics",
		"/sse/operational-risk",
		"/sse/refresh-all",
	}

	for _, route := range sseRoutes {
		t.Run(route, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", route, nil)

			srv.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}

			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("content-type = %q, should contain 'text/event-stream'", ct)
			}

			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("cache-control = %q, want 'no-cache'", cc)
			}
		})
	}
}

// Test error handling for invalid methods
func TestServer_ErrorHandling(t *testing.T) {
	srv := newTestServer(newTestAnalytics())

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"POST", "/api/overview", http.StatusMethodNotAllowed},
		{"PUT", "/", http.StatusMethodNotAllowed},
		{"DELETE", "/health", http.StatusMethodNotAllowed},
		{"PATCH", "/api/vendors", http.StatusMethodNotAllowed},
		{"GET", "/api/country-revenue", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
		})
	}
}

// Test dashboard template rendering
func TestDashboardTemplate(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	dashboardHandler(newTestAnalytics())(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	body := w.Body.String()
	if !strings.Contains(body, "Order Insights") {
		t.Error("dashboard should contain title")
	}

	expectedComponents := []string{
		"Business Overview",
		"Customer Concentration",
		"Repeat Customer Behavior",
		"Vendor Performance",
		"Order Size Segments",
		"Logistics Economics",
		"Operational Risk",
	}

	for _, component := range expectedComponents {
		if !strings.Contains(body, component) {
			t.Errorf("dashboard should contain '%s'", component)
		}
	}
}

func TestDashboardTemplate_LoadError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "Order_Data.xlsx")
	a := services.NewAnalytics(services.WithSource(missing, ""), services.WithLogger(testLogger()))
	if err := a.Load(t.Context()); err == nil {
		t.Fatal("expected load to fail")
	}

	w := httptest.NewRecorder()
	dashboardHandler(a)(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, `id="load-error"`) {
		t.Error("dashboard should show the load error")
	}
	if !strings.Contains(body, "DATA_FILE") {
		t.Error("dashboard should tell the operator how to fix the source")
	}

	srv := newTestServer(a)
	api := httptest.NewRecorder()
	srv.ServeHTTP(api, httptest.NewRequest("GET", "/api/overview", nil))
	if api.Code != http.StatusServiceUnavailable {
		t.Errorf("api status = %d, want %d", api.Code, http.StatusServiceUnavailable)
	}
}
