// Package transport implements the HTTP and streaming access layer for the
// backend API.
//
// Client.Do handles the JSON request/response cycle: it attaches the bearer
// token supplied by the configured TokenFunc, encodes bodies, and converts
// every non-2xx response into a structured *APIError so callers never deal
// with raw HTTP status handling.
//
// Client.OpenEventStream opens a long-lived server-sent-events connection and
// exposes the parsed messages as a channel of Event values. The realtime
// layer builds on this to receive row-level change notifications.
package transport
