package pipelineclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestRecordSnapshots(t *testing.T) {
	t.Run("sends_key_and_parses_result", func(t *testing.T) {
		var gotKey, gotPath, gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("X-API-Key")
			gotPath = r.URL.Path
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"recorded":4,"recorded_at":"2026-10-19T00:00:00Z"}`))
		}))
		defer srv.Close()

		c := New(srv.URL+"/", "secret", srv.Client())
		result, err := c.RecordSnapshots(context.Background(), time.Time{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotKey != "secret" {
			t.Errorf("expected api key header, got %q", gotKey)
		}
		if gotPath != "/api/v1/pipeline/snapshots" {
			t.Errorf("unexpected path %q", gotPath)
		}
		if gotBody != "" {
			t.Errorf("expected empty body for server default, got %q", gotBody)
		}
		if result.Recorded != 4 {
			t.Errorf("expected 4 recorded, got %d", result.Recorded)
		}
	})

	t.Run("sends_explicit_time", func(t *testing.T) {
		var payload map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&payload)
			_, _ = w.Write([]byte(`{"recorded":0}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "secret", srv.Client())
		at := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
		if _, err := c.RecordSnapshots(context.Background(), at); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if payload["recorded_at"] != "2026-09-30T00:00:00Z" {
			t.Errorf("unexpected payload %v", payload)
		}
	})

	t.Run("reports_error_code", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"INVALID_API_KEY","message":"Invalid or missing API key"}}`))
		}))
		defer srv.Close()

		c := New(srv.URL, "wrong", srv.Client())
		_, err := c.RecordSnapshots(context.Background(), time.Time{})
		if err == nil || !strings.Contains(err.Error(), "INVALID_API_KEY") {
			t.Fatalf("expected INVALID_API_KEY error, got %v", err)
		}
	})

	t.Run("reports_bare_status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := New(srv.URL, "k", srv.Client())
		_, err := c.RecordSnapshots(context.Background(), time.Time{})
		if err == nil || !strings.Contains(err.Error(), "502") {
			t.Fatalf("expected status error, got %v", err)
		}
	})
}
