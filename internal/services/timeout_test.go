package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeout_ReturnsResult(t *testing.T) {
	got, err := withTimeout(context.Background(), time.Second, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil || got != 42 {
		t.Errorf("Expected 42, nil; got %d, %v", got, err)
	}
}

func TestWithTimeout_CollaboratorIgnoringContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	start := time.Now()
	_, err := withTimeout(context.Background(), 20*time.Millisecond, func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Expected prompt return, took %v", elapsed)
	}
}

func TestWithTimeout_CallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := withTimeout(ctx, time.Minute, func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected canceled, got %v", err)
	}
}

func TestWithTimeout_AbandonedWorkFinishesOnItsOwn(t *testing.T) {
	release := make(chan struct{})
	finished := make(chan struct{})

	_, err := withTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) (int, error) {
		<-release
		defer close(finished)
		return 1, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}

	select {
	case <-finished:
		t.Fatal("Work should still be running after the deadline")
	default:
	}

	close(release)
	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Abandoned work did not finish after release")
	}
}
