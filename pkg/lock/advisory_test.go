package lock

import (
	"context"
	"testing"
	"time"

	apperrors "nailbook/pkg/errors"
)

func TestAcquireRelease(t *testing.T) {
	a := New()

	if err := a.Acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	a.Release()

	if err := a.Acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	a.Release()
}

func TestAcquireBusyOnTimeout(t *testing.T) {
	a := New()

	if err := a.Acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer a.Release()

	err := a.Acquire(context.Background(), 20*time.Millisecond)
	if err == nil {
		t.Fatal("expected busy error while lock is held")
	}
	if !apperrors.IsCode(err, apperrors.CodeBusy) {
		t.Errorf("expected code %s, got %v", apperrors.CodeBusy, err)
	}
}

func TestAcquireBusyOnCanceledContext(t *testing.T) {
	a := New()

	if err := a.Acquire(context.Background(), time.Second); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer a.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := a.Acquire(ctx, time.Minute); err == nil {
		t.Fatal("expected error on canceled context")
	}
}

func TestDoubleReleaseDoesNotBlock(t *testing.T) {
	a := New()

	done := make(chan struct{})
	go func() {
		a.Release()
		a.Release()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("double release blocked")
	}
}
