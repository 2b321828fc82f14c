package retry

import (
	"math"
	"math/rand"
	"time"
)

// Strategy defines the interface for calculating retry delays.
// Implementations should be safe for concurrent use.
type Strategy interface {
	// NextInterval returns the next backoff duration based on the attempt number.
	// Attempt starts at 1 for the first retry.
	NextInterval(attempt int) time.Duration
}

// Exponential implements exponential backoff with optional jitter.
// Jitter prevents thundering herd when multiple clients retry simultaneously;
// zero jitter keeps delays deterministic for callers that need exact schedules.
type Exponential struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	JitterFactor    float64
}

// NextInterval calculates the delay for the given attempt.
// Formula: min(InitialInterval * (Multiplier ^ (attempt-1)) * (1 ± JitterFactor), MaxInterval)
func (e Exponential) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	initial := e.InitialInterval
	if initial == 0 {
		initial = time.Second
	}

	multiplier := e.Multiplier
	if multiplier == 0 {
		multiplier = 2
	}

	interval := float64(initial) * math.Pow(multiplier, float64(attempt-1))

	if e.JitterFactor > 0 {
		// Random factor between (1-jitter) and (1+jitter)
		randomJitter := (rand.Float64()*2 - 1) * e.JitterFactor
		interval = interval * (1 + randomJitter)
	}

	if e.MaxInterval > 0 && interval > float64(e.MaxInterval) {
		interval = float64(e.MaxInterval)
	}

	return time.Duration(interval)
}

// Linear implements simple linear backoff without jitter.
type Linear struct {
	Interval    time.Duration
	MaxInterval time.Duration
}

// NextInterval returns linearly increasing delays.
// Formula: min(Interval * attempt, MaxInterval)
func (l Linear) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	interval := l.Interval
	if interval == 0 {
		interval = time.Second
	}

	result := interval * time.Duration(attempt)

	if l.MaxInterval > 0 && result > l.MaxInterval {
		result = l.MaxInterval
	}

	return result
}

// Constant returns the same delay for every attempt.
type Constant struct {
	Interval time.Duration
}

// NextInterval returns the fixed interval for any positive attempt.
func (c Constant) NextInterval(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	if c.Interval == 0 {
		return time.Second
	}
	return c.Interval
}
