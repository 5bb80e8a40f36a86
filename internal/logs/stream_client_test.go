package logs_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"logwatch/internal/api"
	"logwatch/internal/logs"
)

func TestNewStreamClientEmptyBind(t *testing.T) {
	client, err := logs.NewStreamClient("")
	if err != nil {
		t.Fatalf("NewStreamClient error: %v", err)
	}
	if client != nil {
		t.Fatal("expected nil client for empty bind")
	}
}

func TestStreamClientHealthDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", Clients: 3, Position: 1024})
	}))
	defer srv.Close()

	client, err := logs.NewStreamClient(srv.URL)
	if err != nil {
		t.Fatalf("NewStreamClient error: %v", err)
	}
	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if health.Status != "ok" || health.Clients != 3 || health.Position != 1024 {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestStreamClientFollowParsesFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/events" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "event: init\ndata: {\"lines\":[\"alpha\"]}\n\n")
		fmt.Fprint(w, api.HeartbeatFrame)
		fmt.Fprint(w, "event: update\ndata: {\"lines\":[\"beta\",\"gamma\"]}\n\n")
	}))
	defer srv.Close()

	client, err := logs.NewStreamClient(srv.URL)
	if err != nil {
		t.Fatalf("NewStreamClient error: %v", err)
	}

	var events []logs.Event
	err = client.Follow(context.Background(), func(ev logs.Event) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("Follow error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %+v", events)
	}
	if events[0].Name != api.EventInit || len(events[0].Lines) != 1 || events[0].Lines[0] != "alpha" {
		t.Fatalf("unexpected init event: %+v", events[0])
	}
	if events[1].Name != api.EventUpdate || len(events[1].Lines) != 2 || events[1].Lines[1] != "gamma" {
		t.Fatalf("unexpected update event: %+v", events[1])
	}
}

func TestStreamClientFollowStopsOnHandlerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "event: init\ndata: {\"lines\":[]}\n\nevent: update\ndata: {\"lines\":[\"x\"]}\n\n")
	}))
	defer srv.Close()

	client, _ := logs.NewStreamClient(srv.URL)
	stop := errors.New("stop")
	calls := 0
	err := client.Follow(context.Background(), func(logs.Event) error {
		calls++
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected handler error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestStreamClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client, _ := logs.NewStreamClient(srv.URL)
	if _, err := client.Health(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestIsAPIUnavailable(t *testing.T) {
	if logs.IsAPIUnavailable(nil) {
		t.Fatal("nil should not be unavailable")
	}
	var client *logs.StreamClient
	_, err := client.Health(context.Background())
	if !logs.IsAPIUnavailable(err) {
		t.Fatalf("expected unavailable for nil client, got %v", err)
	}

	client, _ = logs.NewStreamClient("127.0.0.1:1")
	_, err = client.Health(context.Background())
	if !logs.IsAPIUnavailable(err) {
		t.Fatalf("expected unavailable for refused connection, got %v", err)
	}
}

func TestNewStreamClientRewritesWildcardHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer srv.Close()

	parsed, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}
	port := parsed.Port()
	client, err := logs.NewStreamClient("0.0.0.0:" + port)
	if err != nil {
		t.Fatalf("NewStreamClient error: %v", err)
	}
	if _, err := client.Health(context.Background()); err != nil {
		t.Fatalf("Health via wildcard bind: %v", err)
	}
}
