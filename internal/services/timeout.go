package services

import (
	"context"
	"fmt"
	"time"
)

// withTimeout runs fn in its own goroutine under a deadline of d and returns
// when fn finishes or ctx ends, whichever is first.
//
// On timeout fn is abandoned, not stopped: a collaborator that ignores ctx
// (GetTranscript, the PDF reader) keeps running until it returns on its own.
// Its result is then discarded into the buffered channel.
func withTimeout[T any](ctx context.Context, d time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	type result struct {
		val T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.val, r.err
	case <-ctx.Done():
		return zero, fmt.Errorf("timed out after %s: %w", d, ctx.Err())
	}
}
