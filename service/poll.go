package service

import (
	"context"
	"fmt"
	"time"
)

// PollSettings bounds a polling loop. MaxAttempts is the number of fetches
// allowed after the value that created the loop; CheckInterval is the pause
// between two non-terminal observations.
type PollSettings struct {
	CheckInterval time.Duration
	MaxAttempts   int

	// sleep is swapped out in tests to simulate time.
	sleep func(context.Context, time.Duration) error
}

// PollHooks lets callers report progress. Attempts are 1-indexed; OnAttempt
// fires for the first MaxAttempts observations starting with the initial one,
// OnWait fires right before each inter-attempt pause.
type PollHooks[T any] struct {
	OnAttempt func(attempt int, value T)
	OnWait    func(interval time.Duration)
}

// Wait drives fetch until done reports the current value terminal, starting
// with initial so a resource that is already terminal costs no sleep and no
// extra call. It returns the last observed value and whether done was
// reached; running out of attempts is a normal outcome, not an error. A fetch
// failure aborts the loop immediately.
func Wait[T any](ctx context.Context, initial T, fetch func(context.Context) (T, error), done func(T) bool, settings PollSettings, hooks PollHooks[T]) (T, bool, error) {
	sleep := settings.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	value := initial
	for fetched := 0; ; fetched++ {
		if hooks.OnAttempt != nil && fetched < settings.MaxAttempts {
			hooks.OnAttempt(fetched+1, value)
		}
		if done(value) {
			return value, true, nil
		}
		if fetched >= settings.MaxAttempts {
			return value, false, nil
		}
		if hooks.OnWait != nil {
			hooks.OnWait(settings.CheckInterval)
		}
		if err := sleep(ctx, settings.CheckInterval); err != nil {
			return value, false, err
		}
		next, err := fetch(ctx)
		if err != nil {
			return value, false, fmt.Errorf("fetch attempt %d: %w", fetched+1, err)
		}
		value = next
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
