package httpapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"logwatch/internal/api"
	"logwatch/internal/broadcast"
	"logwatch/internal/httpapi"
	"logwatch/internal/logging"
	"logwatch/internal/logs"
)

type fixture struct {
	path   string
	hub    *broadcast.Hub
	tailer *logs.Tailer
	srv    *httptest.Server
	client *logs.StreamClient
}

func newFixture(t *testing.T, initial string) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte(initial), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	hub := broadcast.NewHub(logging.NewNop())
	tailer := logs.NewTailer(nil, path, hub, logging.NewNop())
	server, err := httpapi.New(httpapi.Options{
		Bind:      "127.0.0.1:0",
		WatchFile: path,
		Hub:       hub,
		Position:  tailer,
		Snapshot:  func() ([]string, error) { return logs.LastLines(nil, path, 10) },
		Heartbeat: time.Minute,
		Logger:    logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("httpapi.New: %v", err)
	}
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	client, err := logs.NewStreamClient(srv.URL)
	if err != nil {
		t.Fatalf("NewStreamClient: %v", err)
	}
	return &fixture{path: path, hub: hub, tailer: tailer, srv: srv, client: client}
}

// follow connects a viewer and waits until it is registered with the hub.
func (f *fixture) follow(t *testing.T) <-chan logs.Event {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := make(chan logs.Event, 16)
	before := f.hub.Count()
	go func() {
		_ = f.client.Follow(ctx, func(ev logs.Event) error {
			events <- ev
			return nil
		})
	}()
	deadline := time.Now().Add(2 * time.Second)
	for f.hub.Count() == before {
		if time.Now().After(deadline) {
			t.Fatal("viewer never registered")
		}
		time.Sleep(2 * time.Millisecond)
	}
	return events
}

func next(t *testing.T, events <-chan logs.Event) logs.Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return logs.Event{}
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	file, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer file.Close()
	if _, err := file.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestEventsInitThenUpdate(t *testing.T) {
	f := newFixture(t, "alpha\n")
	events := f.follow(t)

	init := next(t, events)
	if init.Name != api.EventInit || strings.Join(init.Lines, ",") != "alpha" {
		t.Fatalf("unexpected init: %+v", init)
	}

	appendLog(t, f.path, "beta\ngamma\n")
	if err := f.tailer.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	update := next(t, events)
	if update.Name != api.EventUpdate || strings.Join(update.Lines, ",") != "beta,gamma" {
		t.Fatalf("unexpected update: %+v", update)
	}
}

func TestEventsInitCarriesLastTenLines(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&b, "L%d\n", i)
	}
	f := newFixture(t, b.String())
	events := f.follow(t)

	init := next(t, events)
	if len(init.Lines) != 10 || init.Lines[0] != "L6" || init.Lines[9] != "L15" {
		t.Fatalf("unexpected init lines: %v", init.Lines)
	}
}

func TestEventsAfterTruncation(t *testing.T) {
	f := newFixture(t, strings.Repeat("x", 99)+"\n")
	events := f.follow(t)
	_ = next(t, events)

	if err := os.WriteFile(f.path, []byte("new\n"), 0o644); err != nil {
		t.Fatalf("truncate log: %v", err)
	}
	if err := f.tailer.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if f.tailer.Position() != 0 {
		t.Fatalf("expected reset position, got %d", f.tailer.Position())
	}
	if err := f.tailer.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	update := next(t, events)
	if update.Name != api.EventUpdate || strings.Join(update.Lines, ",") != "new" {
		t.Fatalf("unexpected update: %+v", update)
	}
}

func TestEventsHeaders(t *testing.T) {
	f := newFixture(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, f.srv.URL+"/events", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /events: %v", err)
	}
	defer resp.Body.Close()

	for key, want := range map[string]string{
		"Content-Type":      "text/event-stream",
		"Cache-Control":     "no-cache",
		"X-Accel-Buffering": "no",
	} {
		if got := resp.Header.Get(key); got != want {
			t.Fatalf("header %s = %q, want %q", key, got, want)
		}
	}
	buf := make([]byte, len("event: init\ndata: {\"lines\":[]}\n\n"))
	if _, err := io.ReadFull(resp.Body, buf); err != nil {
		t.Fatalf("read init: %v", err)
	}
	if string(buf) != "event: init\ndata: {\"lines\":[]}\n\n" {
		t.Fatalf("unexpected init frame %q", buf)
	}
}

func TestHealthReportsClientsAndPosition(t *testing.T) {
	f := newFixture(t, "alpha\n")
	_ = f.follow(t)

	resp, err := http.Get(f.srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var health api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "ok" || health.Clients != 1 || health.Position != 6 {
		t.Fatalf("unexpected health: %+v", health)
	}
}

func TestViewerPage(t *testing.T) {
	f := newFixture(t, "")
	for _, path := range []string{"/", "/log"} {
		resp, err := http.Get(f.srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d", path, resp.StatusCode)
		}
		if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
			t.Fatalf("GET %s content type = %q", path, resp.Header.Get("Content-Type"))
		}
		if !strings.Contains(string(body), `new EventSource("/events")`) || !strings.Contains(string(body), "app.log") {
			t.Fatalf("GET %s body missing viewer script", path)
		}
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	f := newFixture(t, "")
	resp, err := http.Get(f.srv.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestNewRequiresHubAndBind(t *testing.T) {
	if _, err := httpapi.New(httpapi.Options{Bind: "127.0.0.1:0"}); err == nil {
		t.Fatal("expected error without hub")
	}
	if _, err := httpapi.New(httpapi.Options{Hub: broadcast.NewHub(nil)}); err == nil {
		t.Fatal("expected error without bind")
	}
}

func TestStartAndStop(t *testing.T) {
	hub := broadcast.NewHub(logging.NewNop())
	server, err := httpapi.New(httpapi.Options{Bind: "127.0.0.1:0", Hub: hub, Logger: logging.NewNop()})
	if err != nil {
		t.Fatalf("httpapi.New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := server.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	client, _ := logs.NewStreamClient(server.Addr())
	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "ok" {
		t.Fatalf("unexpected health %+v", health)
	}

	streamCtx, streamCancel := context.WithCancel(context.Background())
	defer streamCancel()
	done := make(chan error, 1)
	go func() { done <- client.Follow(streamCtx, func(logs.Event) error { return nil }) }()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Count() == 0 && time.Now().Before(deadline) {
		time.Sleep(2 * time.Millisecond)
	}

	server.Stop()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("stream did not end on Stop")
	}
	if hub.Count() != 0 {
		t.Fatalf("viewer still registered after Stop")
	}
}
