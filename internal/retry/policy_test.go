package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doccatalog/internal/config"
)

// TestDefaultPolicy verifies the baseline default values.
func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, config.RetryBackoffLinear, p.Mode)
	assert.Equal(t, 500*time.Millisecond, p.Initial)
	assert.Equal(t, 10*time.Second, p.Max)
	assert.Equal(t, 2, p.MaxRetries)
	require.NoError(t, p.Validate())
}

// TestNewPolicyOverrides checks override precedence and clamping when initial > max.
func TestNewPolicyOverrides(t *testing.T) {
	p := NewPolicy(config.RetryBackoffFixed, 5*time.Second, 2*time.Second, 5)
	assert.Equal(t, 2*time.Second, p.Initial, "initial clamped to max")
	assert.Equal(t, 2*time.Second, p.Max)
	assert.Equal(t, config.RetryBackoffFixed, p.Mode)
	assert.Equal(t, 5, p.MaxRetries)

	unknown := NewPolicy("zigzag", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), unknown)
}

func TestFromConfig(t *testing.T) {
	three := 3
	p := FromConfig(config.RetryConfig{
		MaxRetries:   &three,
		Backoff:      config.RetryBackoffExponential,
		InitialDelay: "100ms",
		MaxDelay:     "1s",
	})
	assert.Equal(t, Policy{Mode: config.RetryBackoffExponential, Initial: 100 * time.Millisecond, Max: time.Second, MaxRetries: 3}, p)

	assert.Equal(t, DefaultPolicy(), FromConfig(config.RetryConfig{InitialDelay: "later"}))
}

// TestDelayModes ensures fixed, linear, exponential behave and respect cap.
func TestDelayModes(t *testing.T) {
	fixed := NewPolicy(config.RetryBackoffFixed, 100*time.Millisecond, 500*time.Millisecond, 3)
	for i := 1; i <= 3; i++ {
		assert.Equal(t, 100*time.Millisecond, fixed.Delay(i), "fixed attempt %d", i)
	}

	tests := []struct {
		name   string
		policy Policy
		want   []time.Duration
	}{
		{
			name:   "linear",
			policy: NewPolicy(config.RetryBackoffLinear, 100*time.Millisecond, 250*time.Millisecond, 5),
			want:   []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 250 * time.Millisecond, 250 * time.Millisecond},
		},
		{
			name:   "exponential",
			policy: NewPolicy(config.RetryBackoffExponential, 50*time.Millisecond, 160*time.Millisecond, 5),
			want:   []time.Duration{50 * time.Millisecond, 100 * time.Millisecond, 160 * time.Millisecond, 160 * time.Millisecond},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, want := range tt.want {
				assert.Equal(t, want, tt.policy.Delay(i+1), "attempt %d", i+1)
			}
		})
	}
}

// TestDelayEdgeCases ensures non-positive attempts yield zero and large attempts stay capped.
func TestDelayEdgeCases(t *testing.T) {
	p := NewPolicy(config.RetryBackoffLinear, 10*time.Millisecond, 20*time.Millisecond, 1)
	assert.Zero(t, p.Delay(0))
	assert.Zero(t, p.Delay(-1))

	exp := NewPolicy(config.RetryBackoffExponential, time.Millisecond, time.Second, 100)
	assert.Equal(t, time.Second, exp.Delay(64))
}

func TestDo(t *testing.T) {
	fast := NewPolicy(config.RetryBackoffFixed, time.Millisecond, time.Millisecond, 3)
	transient := errors.New("connection reset")
	permanentErr := errors.New("repository not found")
	isPermanent := func(err error) bool { return errors.Is(err, permanentErr) }

	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		var retried []int
		err := fast.Do(context.Background(), isPermanent, func(attempt int, _ error) { retried = append(retried, attempt) }, func() error {
			calls++
			if calls < 3 {
				return transient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, retried)
	})

	t.Run("stops on permanent error", func(t *testing.T) {
		calls := 0
		err := fast.Do(context.Background(), isPermanent, nil, func() error {
			calls++
			return permanentErr
		})
		require.ErrorIs(t, err, permanentErr)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausts budget", func(t *testing.T) {
		calls := 0
		err := fast.Do(context.Background(), isPermanent, nil, func() error {
			calls++
			return transient
		})
		require.ErrorIs(t, err, transient)
		assert.Equal(t, 4, calls)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		slow := NewPolicy(config.RetryBackoffFixed, time.Hour, time.Hour, 3)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		err := slow.Do(ctx, nil, nil, func() error {
			calls++
			return transient
		})
		require.ErrorIs(t, err, transient)
		assert.Equal(t, 1, calls)
	})
}
