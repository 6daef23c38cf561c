// Package retry wraps delivery-side API calls that are worth repeating.
// The aggregation pipeline itself never retries.
package retry

import (
	"fmt"
	"time"
)

// Do runs fn up to attempts times with exponential backoff between
// tries (delay, 2*delay, 4*delay, ...).
func Do(attempts int, delay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt < attempts {
			time.Sleep(delay << (attempt - 1))
		}
	}

	return fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
