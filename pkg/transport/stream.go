package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// Event is a single named server-push message read from an event stream.
// Name defaults to "message" when the server sends no explicit event line.
type Event struct {
	Name string
	Data string
}

// EventStream consumes a server-sent-events style response body and delivers
// parsed events on a channel. The stream owns the underlying connection and
// releases it on Close or when the server ends the stream.
type EventStream struct {
	events    chan Event
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

// OpenEventStream opens a streaming GET connection to rawURL and starts
// reading events. rawURL is absolute; callers build it from BaseURL plus the
// realtime endpoint and query parameters.
func (c *Client) OpenEventStream(ctx context.Context, rawURL string) (*EventStream, error) {
	ctx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("transport: build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	for key, values := range c.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	// Streaming must not inherit the client-wide request timeout.
	httpClient := &http.Client{Transport: c.httpClient.Transport}

	resp, err := httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("transport: open stream: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp)
		resp.Body.Close()
		cancel()
		return nil, apiErr
	}

	stream := &EventStream{
		events: make(chan Event, 16),
		cancel: cancel,
	}

	go stream.readLoop(resp)

	return stream, nil
}

// Events returns the channel of parsed events. The channel is closed when the
// stream ends, whether by server close, read error, or Close.
func (s *EventStream) Events() <-chan Event {
	return s.events
}

// Err reports the terminal read error, if any, once Events is closed.
func (s *EventStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close terminates the stream and releases the underlying connection.
// It is safe to call multiple times and from any goroutine.
func (s *EventStream) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
	})
}

// readLoop parses the text/event-stream framing: "event:" lines name the
// next event, "data:" lines accumulate its payload, and a blank line
// dispatches it. Comment lines (leading colon) are keep-alives and ignored.
func (s *EventStream) readLoop(resp *http.Response) {
	defer close(s.events)
	defer resp.Body.Close()

	var (
		name    string
		data    []string
		scanner = bufio.NewScanner(resp.Body)
	)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			if len(data) > 0 {
				event := Event{Name: name, Data: strings.Join(data, "\n")}
				if event.Name == "" {
					event.Name = "message"
				}
				s.events <- event
			}
			name = ""
			data = data[:0]
		case strings.HasPrefix(line, ":"):
			// keep-alive comment
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		}
	}

	if err := scanner.Err(); err != nil && !isClosedError(err) {
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
	}
}

// isClosedError reports whether err is the expected result of cancelling the
// stream context rather than a genuine transport failure.
func isClosedError(err error) bool {
	return errors.Is(err, context.Canceled) ||
		strings.Contains(err.Error(), "context canceled") ||
		strings.Contains(err.Error(), "use of closed network connection")
}
