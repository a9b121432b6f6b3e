package retry

import (
	"context"
	"fmt"
	"time"
)

// ErrBudgetExhausted is returned by Poll when the predicate never reported
// done within the attempt budget. Callers wrap it with a domain error.
var ErrBudgetExhausted = fmt.Errorf("poll budget exhausted")

// Poll invokes the predicate at a fixed interval until it reports done,
// returns an error, or maxAttempts is reached. The predicate is invoked once
// immediately; the interval only spaces subsequent attempts. A predicate
// error aborts polling and is returned as-is.
func Poll(ctx context.Context, maxAttempts int, interval time.Duration, predicate func(ctx context.Context) (bool, error)) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("polling cancelled after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(interval):
			}
		}

		done, err := predicate(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}

	return fmt.Errorf("condition not met after %d attempts: %w", maxAttempts, ErrBudgetExhausted)
}
