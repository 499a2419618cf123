package pacing

import (
	"context"
	"time"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Pacer pauses for a fixed interval after every Nth item. It is a courtesy
// floor on top of whatever the HTTP client already does.
type Pacer struct {
	every    int
	interval time.Duration
	sleep    SleepFunc
}

// New creates a pacer. every <= 0 or interval <= 0 disables pausing.
func New(every int, interval time.Duration) *Pacer {
	return &Pacer{
		every:    every,
		interval: interval,
		sleep:    Sleep,
	}
}

// WithSleep swaps the sleep implementation (tests use a recorder).
func (p *Pacer) WithSleep(sleep SleepFunc) *Pacer {
	p.sleep = sleep
	return p
}

// Interval returns the configured pause length.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Due reports whether a pause follows the item with 1-based count n.
func (p *Pacer) Due(n int) bool {
	if p == nil || p.every <= 0 || p.interval <= 0 || n <= 0 {
		return false
	}
	return n%p.every == 0
}

// After pauses if count n is a multiple of the pacing period. It returns
// true when it actually paused.
func (p *Pacer) After(ctx context.Context, n int) (bool, error) {
	if !p.Due(n) {
		return false, nil
	}
	if err := p.sleep(ctx, p.interval); err != nil {
		return false, err
	}
	return true, nil
}
