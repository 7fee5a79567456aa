package core

// render_limiter.go bounds the number of PNG charts rasterized at once.
//
// Each render allocates a full-size RGBA image, so bursts of /chart requests
// are queued behind a semaphore. A request that cannot get a slot within
// maxWait fails with ErrTooManyRenders. WaitForDrain lets shutdown finish
// in-flight renders first.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyRenders is returned when all render slots stay occupied for
// longer than the limiter's wait time.
var ErrTooManyRenders = errors.New("too many concurrent renders, please try again later")

// DefaultMaxConcurrentRenders is the default limit for parallel renders.
const DefaultMaxConcurrentRenders = 4

// DefaultRenderWait is how long to wait for a slot before rejecting.
const DefaultRenderWait = 10 * time.Second

// RenderLimiter controls concurrent chart rendering using a semaphore.
type RenderLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewRenderLimiter creates a limiter that allows at most maxConcurrent
// simultaneous renders. Non-positive arguments select the defaults.
func NewRenderLimiter(maxConcurrent int, maxWait time.Duration) *RenderLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRenders
	}
	if maxWait <= 0 {
		maxWait = DefaultRenderWait
	}

	return &RenderLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a render slot.
// The caller MUST call Release() when the render completes (use defer).
func (l *RenderLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyRenders
	}
}

// TryAcquire attempts to acquire a slot without blocking.
func (l *RenderLimiter) TryAcquire() bool {
	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return true
	default:
		return false
	}
}

// Release releases a previously acquired slot.
// Must be called exactly once for each successful Acquire/TryAcquire.
func (l *RenderLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of renders in progress.
func (l *RenderLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *RenderLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until all active renders complete or ctx is done.
func (l *RenderLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RenderLimiterStatus is a snapshot of the limiter's state.
type RenderLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for the health endpoint.
func (l *RenderLimiter) Status() RenderLimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()

	return RenderLimiterStatus{
		Active:        active,
		Available:     l.Available(),
		MaxConcurrent: cap(l.semaphore),
	}
}
