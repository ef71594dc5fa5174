package lock

import (
	"context"
	"time"

	apperrors "nailbook/pkg/errors"
)

// Advisory serializes every state-mutating action against the tabular store.
// Reads never take it; they may observe a torn view while a writer runs.
type Advisory struct {
	sem chan struct{}
}

func New() *Advisory {
	a := &Advisory{sem: make(chan struct{}, 1)}
	a.sem <- struct{}{}
	return a
}

// Acquire blocks for at most wait. On timeout it returns a busy error so the
// caller can fail fast instead of queueing indefinitely.
func (a *Advisory) Acquire(ctx context.Context, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-a.sem:
		return nil
	case <-timer.C:
		return apperrors.Busy()
	case <-ctx.Done():
		return apperrors.Busy()
	}
}

func (a *Advisory) Release() {
	select {
	case a.sem <- struct{}{}:
	default:
		// Release without a matching Acquire; ignore rather than block.
	}
}
