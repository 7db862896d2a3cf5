package player

import (
	"context"
	"time"
)

// Countdown calls tick with seconds, seconds-1, ... 1, waiting step after
// each call. It returns early with the context error when ctx is done, so
// an interrupt lands between ticks instead of after the full delay.
func Countdown(ctx context.Context, seconds int, step time.Duration, tick func(remaining int)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := time.NewTimer(step)
	defer timer.Stop()
	for remaining := seconds; remaining > 0; remaining-- {
		if tick != nil {
			tick(remaining)
		}
		timer.Reset(step)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
