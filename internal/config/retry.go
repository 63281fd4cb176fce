package config

import (
	"time"

	"git.home.luguber.info/inful/doccatalog/internal/foundation/normalization"
)

// RetryBackoffMode enumerates supported backoff strategies for retries.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffNormalizer = normalization.NewNormalizer("retry backoff", map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
}, RetryBackoffLinear)

// NormalizeRetryBackoff converts arbitrary user input (case-insensitive) into a typed mode.
// Unknown input yields the linear default.
func NormalizeRetryBackoff(raw string) RetryBackoffMode {
	return retryBackoffNormalizer.Normalize(raw)
}

// RetryConfig controls retries of transient clone and fetch failures.
type RetryConfig struct {
	MaxRetries   *int             `yaml:"max_retries,omitempty"`
	Backoff      RetryBackoffMode `yaml:"backoff,omitempty"`
	InitialDelay string           `yaml:"initial_delay,omitempty"`
	MaxDelay     string           `yaml:"max_delay,omitempty"`
}

// Durations parses the configured delays. Empty values yield zero.
func (r RetryConfig) Durations() (initial, maxDelay time.Duration, err error) {
	if r.InitialDelay != "" {
		if initial, err = time.ParseDuration(r.InitialDelay); err != nil {
			return 0, 0, err
		}
	}
	if r.MaxDelay != "" {
		if maxDelay, err = time.ParseDuration(r.MaxDelay); err != nil {
			return 0, 0, err
		}
	}
	return initial, maxDelay, nil
}

// Retries returns the configured retry count, or -1 when unset.
func (r RetryConfig) Retries() int {
	if r.MaxRetries == nil {
		return -1
	}
	return *r.MaxRetries
}
