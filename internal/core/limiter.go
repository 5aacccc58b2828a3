package core

// limiter.go bounds how many pastes and process requests run at once.
//
// Parsing and generating are CPU-bound and a single paste can be megabytes.
// The limiter is a semaphore: callers wait up to maxWait for a slot and get
// ErrBusy when none frees up. WaitForDrain lets shutdown finish in-flight
// work before the process exits.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrBusy is returned when every work slot stayed occupied for maxWait.
var ErrBusy = errors.New("too many concurrent requests")

// DefaultMaxConcurrent is the default number of work slots.
const DefaultMaxConcurrent = 8

// DefaultMaxWait is how long to wait for a slot before rejecting.
const DefaultMaxWait = 5 * time.Second

// Limiter restricts concurrent pipeline work to a fixed number of slots.
type Limiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewLimiter creates a limiter with maxConcurrent slots. Non-positive
// arguments use the defaults.
func NewLimiter(maxConcurrent int, maxWait time.Duration) *Limiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrent
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWait
	}
	return &Limiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. It returns ErrBusy when maxWait expires and the
// context error when ctx ends first. Every nil return must be paired with
// Release.
func (l *Limiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrBusy
	}
}

// TryAcquire takes a slot without waiting.
func (l *Limiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return true
	default:
		return false
	}
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *Limiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// Active returns the number of slots in use.
func (l *Limiter) Active() int { return int(l.active.Load()) }

// Capacity returns the total number of slots.
func (l *Limiter) Capacity() int { return cap(l.slots) }

// WaitForDrain blocks until no slot is in use or ctx is cancelled.
func (l *Limiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.Active() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
