// Package retry provides backoff strategies for retrying failed operations.
//
// Strategies are value types that compute the delay before the next attempt,
// with attempt numbering starting at 1 for the first retry:
//
//	backoff := retry.Exponential{
//		InitialInterval: time.Second,
//		MaxInterval:     30 * time.Second,
//		Multiplier:      2,
//		JitterFactor:    0.1,
//	}
//
//	delay := backoff.NextInterval(attempt)
//
// The zero value of each strategy applies sensible defaults, so strategies
// can be embedded in configuration structs without explicit initialization.
package retry
