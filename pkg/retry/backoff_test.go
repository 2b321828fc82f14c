package retry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/basekit/pkg/retry"
)

func TestExponential(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		backoff  retry.Exponential
		attempts []int
		want     []time.Duration
	}{
		{
			name: "default values",
			backoff: retry.Exponential{
				JitterFactor: 0, // Disable jitter for predictable testing
			},
			attempts: []int{1, 2, 3, 4, 5},
			want: []time.Duration{
				time.Second,      // 1s * 2^0
				2 * time.Second,  // 1s * 2^1
				4 * time.Second,  // 1s * 2^2
				8 * time.Second,  // 1s * 2^3
				16 * time.Second, // 1s * 2^4
			},
		},
		{
			name: "custom values with max cap",
			backoff: retry.Exponential{
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      3,
			},
			attempts: []int{1, 2, 3, 4},
			want: []time.Duration{
				500 * time.Millisecond,  // 500ms * 3^0
				1500 * time.Millisecond, // 500ms * 3^1
				4500 * time.Millisecond, // 500ms * 3^2
				5 * time.Second,         // Capped at max
			},
		},
		{
			name:     "zero attempt returns zero",
			backoff:  retry.Exponential{},
			attempts: []int{0, -1},
			want:     []time.Duration{0, 0},
		},
		{
			name: "no cap when max unset",
			backoff: retry.Exponential{
				InitialInterval: time.Second,
				Multiplier:      2,
			},
			attempts: []int{10},
			want:     []time.Duration{512 * time.Second}, // 1s * 2^9
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for i, attempt := range tt.attempts {
				assert.Equal(t, tt.want[i], tt.backoff.NextInterval(attempt), "attempt %d", attempt)
			}
		})
	}
}

func TestExponentialJitter(t *testing.T) {
	t.Parallel()

	backoff := retry.Exponential{
		InitialInterval: time.Second,
		Multiplier:      2,
		JitterFactor:    0.5,
	}

	for i := 0; i < 100; i++ {
		interval := backoff.NextInterval(3) // base 4s
		assert.GreaterOrEqual(t, interval, 2*time.Second)
		assert.LessOrEqual(t, interval, 6*time.Second)
	}
}

func TestLinear(t *testing.T) {
	t.Parallel()

	backoff := retry.Linear{
		Interval:    time.Second,
		MaxInterval: 3 * time.Second,
	}

	assert.Equal(t, time.Duration(0), backoff.NextInterval(0))
	assert.Equal(t, time.Second, backoff.NextInterval(1))
	assert.Equal(t, 2*time.Second, backoff.NextInterval(2))
	assert.Equal(t, 3*time.Second, backoff.NextInterval(3))
	assert.Equal(t, 3*time.Second, backoff.NextInterval(10)) // Capped
}

func TestConstant(t *testing.T) {
	t.Parallel()

	backoff := retry.Constant{Interval: 250 * time.Millisecond}
	assert.Equal(t, 250*time.Millisecond, backoff.NextInterval(1))
	assert.Equal(t, 250*time.Millisecond, backoff.NextInterval(7))
	assert.Equal(t, time.Second, retry.Constant{}.NextInterval(1))
}
