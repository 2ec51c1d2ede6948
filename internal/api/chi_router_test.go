// PropertyRank - Property Listing and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/propertyrank

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tomtom215/propertyrank/internal/middleware"
	"github.com/tomtom215/propertyrank/internal/models"
)

func TestRouter_Errors(t *testing.T) {
	srv := newTestServer(t, newTestHandler(t, true))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"unknown route", http.MethodGet, "/nope", http.StatusNotFound, "NOT_FOUND"},
		{"wrong method", http.MethodGet, "/recommend", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"admin wrong method", http.MethodGet, "/cache/clear", http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, tt.method, tt.path, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if code := decode[models.ErrorResponse](t, rec).Error.Code; code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestRouter_RequestIDHeader(t *testing.T) {
	srv := newTestServer(t, newTestHandler(t, true))

	rec := do(t, srv, http.MethodGet, "/health", nil)
	if rec.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("response has no request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(middleware.RequestIDHeader, "client-supplied-id")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if got := rec.Header().Get(middleware.RequestIDHeader); got != "client-supplied-id" {
		t.Errorf("request id = %q, want client-supplied-id", got)
	}
}

func TestRouter_SecurityHeadersOnDataRoutes(t *testing.T) {
	srv := newTestServer(t, newTestHandler(t, true))

	if got := do(t, srv, http.MethodGet, "/", nil).Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options on / = %q", got)
	}
	if got := do(t, srv, http.MethodGet, "/cache/stats", nil).Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options on /cache/stats = %q", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	srv := newTestServer(t, newTestHandler(t, true))

	do(t, srv, http.MethodGet, "/", nil)
	rec := do(t, srv, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing API request counter")
	}
}

func TestRouter_DocsRedirect(t *testing.T) {
	srv := newTestServer(t, newTestHandler(t, true))

	rec := do(t, srv, http.MethodGet, "/docs", nil)
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/swagger/index.html" {
		t.Errorf("Location = %q", loc)
	}
}

func TestRouter_Compression(t *testing.T) {
	srv := newTestServer(t, newTestHandler(t, false))

	req := httptest.NewRequest(http.MethodGet, "/properties/details/all", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Errorf("Content-Encoding = %q, want gzip", got)
	}
}
