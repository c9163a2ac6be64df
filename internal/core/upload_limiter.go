package core

// upload_limiter.go bounds how many uploads are parsed at the same time.
// Parsing holds the whole file in memory, so the limiter is what keeps a
// burst of uploads from exhausting the process.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyUploads is returned when no parse slot frees up within the wait time.
var ErrTooManyUploads = errors.New("too many uploads in progress, please try again later")

// UploadLimiter is a counting semaphore with a bounded wait.
type UploadLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int32
}

// NewUploadLimiter allows at most maxConcurrent parses. Callers wait up to
// maxWait for a slot.
func NewUploadLimiter(maxConcurrent int, maxWait time.Duration) *UploadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &UploadLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. Every successful Acquire must be paired with Release.
func (l *UploadLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-timer.C:
		return ErrTooManyUploads
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (l *UploadLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of parses currently holding a slot.
func (l *UploadLimiter) Active() int { return int(l.active.Load()) }

// Capacity returns the maximum number of concurrent parses.
func (l *UploadLimiter) Capacity() int { return cap(l.slots) }

// WaitForDrain blocks until no parse holds a slot or ctx is done.
func (l *UploadLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
