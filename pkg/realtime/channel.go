package realtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/basekit/pkg/transport"
)

// Channel is a named topic over which row-level change events are
// subscribed. It owns at most one active streaming connection at a time and
// reconnects with exponential backoff on stream failures.
//
// Every Unsubscribe and fresh Subscribe increments the channel's epoch
// counter. Delayed work (reconnect timers, in-flight connection attempts,
// event dispatch from a dying stream) captures the epoch it was started
// under and re-validates it before acting, so a torn-down channel can never
// be resurrected by a stale timer and no callback fires after Unsubscribe.
// Callbacks run outside the channel lock, so an Unsubscribe racing a
// delivery already in flight on another goroutine may still observe one
// final callback; after Unsubscribe returns and any such delivery completes,
// the channel is silent.
type Channel struct {
	name   string
	client *Client
	logger *slog.Logger

	mu             sync.Mutex
	state          State
	epoch          uint64
	attempts       int
	stream         Stream
	reconnectTimer *time.Timer
	ctx            context.Context
	subs           []*subscription
	statusFn       StatusCallback
}

func newChannel(name string, client *Client) *Channel {
	return &Channel{
		name:   name,
		client: client,
		logger: client.logger.With(slog.String("channel", name)),
		state:  StateIdle,
	}
}

// Name returns the channel's topic name.
func (ch *Channel) Name() string {
	return ch.name
}

// State returns the current connection state.
func (ch *Channel) State() State {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.state
}

// ReconnectAttempts returns the consecutive failure counter. It resets to
// zero on every successful stream open.
func (ch *Channel) ReconnectAttempts() int {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.attempts
}

// On registers interest in change events of the given type and returns the
// channel for chaining. For named channels the subscription is scoped to the
// channel's table; the wildcard channel receives events for all tables.
// Subscriptions may be added before or after Subscribe.
func (ch *Channel) On(event EventType, callback Callback) *Channel {
	table := ch.name
	if table == Wildcard {
		table = ""
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.subs = append(ch.subs, &subscription{
		event:    event,
		table:    table,
		callback: callback,
	})
	return ch
}

// Filter attaches a column-level refinement to the most recently registered
// subscription. Calling Filter before any On is a no-op. Filters are carried
// into the connection URL; they are not evaluated client-side.
func (ch *Channel) Filter(column, operator, value string) *Channel {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	if len(ch.subs) == 0 {
		return ch
	}
	last := ch.subs[len(ch.subs)-1]
	last.filters = append(last.filters, ColumnFilter{
		Column:   column,
		Operator: operator,
		Value:    value,
	})
	return ch
}

// Subscribe opens the streaming connection and begins delivering events to
// registered subscriptions. Status transitions are reported to statusFn
// (which may be nil). Subscribing an already subscribed channel re-reports
// SUBSCRIBED and is otherwise a no-op; subscribing while a connection
// attempt is pending is a no-op.
func (ch *Channel) Subscribe(ctx context.Context, statusFn StatusCallback) {
	ch.mu.Lock()
	switch ch.state {
	case StateSubscribed:
		ch.mu.Unlock()
		if statusFn != nil {
			statusFn(StatusSubscribed, nil)
		}
		return
	case StateConnecting, StateReconnecting:
		ch.mu.Unlock()
		return
	}

	if ctx == nil {
		ctx = context.Background()
	}

	ch.epoch++
	epoch := ch.epoch
	ch.ctx = ctx
	ch.statusFn = statusFn
	ch.attempts = 0
	ch.state = StateConnecting
	ch.mu.Unlock()

	ch.emit(epoch, StatusConnecting, nil)
	go ch.connect(ctx, epoch)
}

// Unsubscribe closes the active streaming connection, discards all
// subscriptions, and reports UNSUBSCRIBED. It is safe to call from any
// state, including while a reconnect delay is pending or before a connection
// was ever opened.
func (ch *Channel) Unsubscribe() {
	ch.mu.Lock()
	ch.epoch++
	if ch.reconnectTimer != nil {
		ch.reconnectTimer.Stop()
		ch.reconnectTimer = nil
	}
	stream := ch.stream
	ch.stream = nil
	ch.subs = nil
	ch.attempts = 0
	ch.state = StateIdle
	statusFn := ch.statusFn
	ch.statusFn = nil
	ch.mu.Unlock()

	if stream != nil {
		stream.Close()
	}
	if statusFn != nil {
		statusFn(StatusUnsubscribed, nil)
	}
}

// connect opens the stream and, on success, pumps events until it ends.
// Runs outside the channel lock.
func (ch *Channel) connect(ctx context.Context, epoch uint64) {
	stream, err := ch.client.opener.OpenEventStream(ctx, ch.client.streamURL(ch))
	if err != nil {
		ch.logger.DebugContext(ctx, "stream open failed", slog.Any("error", err))
		ch.handleFailure(epoch, err)
		return
	}

	ch.mu.Lock()
	if epoch != ch.epoch {
		// Unsubscribed (or re-subscribed) while the dial was in flight.
		ch.mu.Unlock()
		stream.Close()
		return
	}
	ch.stream = stream
	ch.state = StateSubscribed
	ch.attempts = 0
	ch.mu.Unlock()

	ch.emit(epoch, StatusSubscribed, nil)

	for event := range stream.Events() {
		ch.dispatch(epoch, event)
	}

	ch.handleFailure(epoch, ErrStreamEnded)
}

// dispatch normalizes a raw stream event and fans it out to matching
// subscriptions. Malformed bodies are logged and swallowed.
func (ch *Channel) dispatch(epoch uint64, event transport.Event) {
	var (
		payload Payload
		ok      bool
	)
	switch event.Name {
	case "insert", "update", "delete":
		payload, ok = normalizePayload(event.Name, event.Data)
	case "message":
		payload, ok = normalizePayload("", event.Data)
	default:
		return
	}
	if !ok {
		ch.logger.Debug("discarding malformed realtime payload")
		return
	}

	ch.mu.Lock()
	if epoch != ch.epoch {
		ch.mu.Unlock()
		return
	}
	matched := make([]Callback, 0, len(ch.subs))
	for _, sub := range ch.subs {
		if sub.matches(payload) {
			matched = append(matched, sub.callback)
		}
	}
	ch.mu.Unlock()

	for _, callback := range matched {
		callback(payload)
	}
}

// handleFailure drives the ERROR -> RECONNECTING -> CONNECTING loop, or the
// terminal transition to CLOSED once attempts are exhausted.
func (ch *Channel) handleFailure(epoch uint64, cause error) {
	ch.mu.Lock()
	if epoch != ch.epoch {
		ch.mu.Unlock()
		return
	}
	ch.stream = nil

	// A cancelled connection context means the caller is done with this
	// channel; retrying against it would never succeed.
	if ch.ctx != nil && ch.ctx.Err() != nil {
		ch.state = StateClosed
		ch.mu.Unlock()
		ch.emit(epoch, StatusClosed, nil)
		return
	}

	ch.attempts++
	if ch.attempts > ch.client.maxReconnects {
		ch.state = StateClosed
		ch.mu.Unlock()
		ch.emit(epoch, StatusChannelError, cause)
		ch.emit(epoch, StatusClosed, nil)
		return
	}

	delay := ch.client.backoff.NextInterval(ch.attempts)
	ch.state = StateReconnecting
	ctx := ch.ctx
	ch.reconnectTimer = time.AfterFunc(delay, func() {
		ch.mu.Lock()
		if epoch != ch.epoch || ch.state != StateReconnecting {
			ch.mu.Unlock()
			return
		}
		ch.state = StateConnecting
		ch.mu.Unlock()

		ch.emit(epoch, StatusConnecting, nil)
		ch.connect(ctx, epoch)
	})
	ch.mu.Unlock()

	ch.emit(epoch, StatusChannelError, cause)
	ch.emit(epoch, StatusReconnecting, nil)
}

// emit reports a status transition to the subscribe callback, skipping
// callbacks that belong to an older epoch.
func (ch *Channel) emit(epoch uint64, status Status, err error) {
	ch.mu.Lock()
	statusFn := ch.statusFn
	if epoch != ch.epoch {
		statusFn = nil
	}
	ch.mu.Unlock()

	if statusFn != nil {
		statusFn(status, err)
	}
}

// filterParams renders all column filters of the channel's subscriptions for
// URL construction.
func (ch *Channel) filterParams() []string {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	var params []string
	for _, sub := range ch.subs {
		for _, f := range sub.filters {
			params = append(params, f.Column+":"+f.Operator+":"+f.Value)
		}
	}
	return params
}
