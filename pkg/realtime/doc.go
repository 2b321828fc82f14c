// Package realtime implements push-based subscriptions to row-level change
// events.
//
// A Client is a registry of named channels; each Channel owns one streaming
// connection, a reconnect-with-backoff state machine, and an ordered list of
// subscriptions. Incoming server messages of either supported wire shape are
// normalized into a canonical Payload before dispatch.
//
// Basic usage:
//
//	rt := realtime.New(baseURL, realtime.NewTransportOpener(transportClient),
//		realtime.WithTokenFunc(manager.AccessToken),
//	)
//
//	orders := rt.Channel("orders").
//		On(realtime.EventInsert, func(p realtime.Payload) {
//			// handle new order row
//		})
//
//	orders.Subscribe(ctx, func(status realtime.Status, err error) {
//		// CONNECTING, SUBSCRIBED, CHANNEL_ERROR, RECONNECTING, CLOSED
//	})
//	defer orders.Unsubscribe()
//
// Reconnection is bounded: after the configured number of consecutive
// failures (default 10, delays doubling from 1s) the channel transitions to
// the terminal CLOSED state and stays there until Subscribe is called again.
package realtime
