package concurrent

import (
	"context"
	"testing"
	"time"
)

func TestApplyToEither_UsesFasterUpstream(t *testing.T) {
	fast := Completed(1)
	slowBlock := make(chan struct{})
	slow := Run(newGoExecutor(), func(ctx context.Context) (int, error) {
		<-slowBlock
		return 2, nil
	})
	defer close(slowBlock)

	c := ApplyToEitherAsyncOn(fast, slow, newGoExecutor(), func(v int) (int, error) {
		return v * 10, nil
	})
	val, err := c.Get()
	if err != nil || val != 10 {
		t.Fatalf("Get() = (%d, %v), want (10, nil)", val, err)
	}
}

func TestApplyToEither_CancelCancelsBothProducers(t *testing.T) {
	aStarted := make(chan struct{})
	bStarted := make(chan struct{})
	aBlock := make(chan struct{})
	bBlock := make(chan struct{})

	a := Run(newGoExecutor(), func(ctx context.Context) (int, error) {
		close(aStarted)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-aBlock:
			return 1, nil
		}
	})
	b := Run(newGoExecutor(), func(ctx context.Context) (int, error) {
		close(bStarted)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-bBlock:
			return 2, nil
		}
	})

	c := ApplyToEitherAsyncOn(a, b, newGoExecutor(), func(v int) (int, error) { return v, nil })
	<-aStarted
	<-bStarted

	if !c.Cancel(true) {
		t.Fatalf("Cancel() = false, want true")
	}
	time.Sleep(20 * time.Millisecond)

	if !a.IsCancelled() {
		t.Fatalf("a.IsCancelled() = false")
	}
	if !b.IsCancelled() {
		t.Fatalf("b.IsCancelled() = false")
	}
	close(aBlock)
	close(bBlock)
}

func TestRunAfterEither_IgnoresValues(t *testing.T) {
	a := Completed(1)
	bBlock := make(chan struct{})
	b := Run(newGoExecutor(), func(ctx context.Context) (int, error) {
		<-bBlock
		return 2, nil
	})
	defer close(bBlock)

	ran := false
	c := RunAfterEitherAsyncOn(a, b, newGoExecutor(), func() error {
		ran = true
		return nil
	})
	c.Get()
	if !ran {
		t.Fatalf("fn did not run")
	}
}
