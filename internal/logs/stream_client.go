package logs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"logwatch/internal/api"
)

// ErrAPIUnavailable reports that no server could be reached.
var ErrAPIUnavailable = errors.New("log API unavailable")

// Event is one decoded frame from the server's event stream.
type Event struct {
	Name  string
	Lines []string
}

// StreamClient talks to a running server's /health and /events endpoints.
type StreamClient struct {
	base *url.URL
	http *http.Client
}

// NewStreamClient resolves bind into a base URL. A wildcard host is replaced
// with loopback so a listen address can be used directly.
func NewStreamClient(bind string) (*StreamClient, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, nil
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, err
	}
	if host := base.Hostname(); host == "" || host == "0.0.0.0" || host == "::" {
		port := base.Port()
		if port == "" {
			base.Host = "127.0.0.1"
		} else {
			base.Host = net.JoinHostPort("127.0.0.1", port)
		}
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &StreamClient{
		base: base,
		// No timeout - follow mode blocks waiting for events until caller cancels.
		http: &http.Client{},
	}, nil
}

// Health fetches the server's health summary.
func (c *StreamClient) Health(ctx context.Context) (api.HealthResponse, error) {
	if c == nil {
		return api.HealthResponse{}, ErrAPIUnavailable
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	endpoint := c.base.ResolveReference(&url.URL{Path: "/health"})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return api.HealthResponse{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return api.HealthResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return api.HealthResponse{}, fmt.Errorf("health returned status %d", resp.StatusCode)
	}

	var payload api.HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return api.HealthResponse{}, err
	}
	return payload, nil
}

// Follow connects to the event stream and calls handle for each init and
// update frame until ctx is cancelled, the server closes the stream, or
// handle returns an error. Heartbeat comments are skipped.
func (c *StreamClient) Follow(ctx context.Context, handle func(Event) error) error {
	if c == nil {
		return ErrAPIUnavailable
	}
	endpoint := c.base.ResolveReference(&url.URL{Path: "/events"})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("events returned status %d", resp.StatusCode)
	}

	err = readEvents(bufio.NewScanner(resp.Body), handle)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func readEvents(scanner *bufio.Scanner, handle func(Event) error) error {
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var name string
	var data strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if name != "" || data.Len() > 0 {
				event, err := decodeEvent(name, data.String())
				if err != nil {
					return err
				}
				if err := handle(event); err != nil {
					return err
				}
			}
			name = ""
			data.Reset()
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		}
	}
	return scanner.Err()
}

func decodeEvent(name, data string) (Event, error) {
	if name == "" {
		name = "message"
	}
	event := Event{Name: name}
	if strings.TrimSpace(data) == "" {
		return event, nil
	}
	var payload api.LinesPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return Event{}, fmt.Errorf("decode %s event: %w", name, err)
	}
	event.Lines = payload.Lines
	return event, nil
}

// IsAPIUnavailable reports whether err means the server was not reachable,
// as opposed to a server that answered with an error.
func IsAPIUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.Is(err, ErrAPIUnavailable) || errors.As(err, &opErr)
}
