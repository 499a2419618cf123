package pacing

import (
	"context"
	"testing"
	"time"
)

func TestPacer_PausesEveryNth(t *testing.T) {
	var slept []time.Duration
	p := New(5, time.Minute).WithSleep(func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	})

	var paused []int
	for n := 1; n <= 12; n++ {
		did, err := p.After(context.Background(), n)
		if err != nil {
			t.Fatalf("After(%d) returned error: %v", n, err)
		}
		if did {
			paused = append(paused, n)
		}
	}

	if len(paused) != 2 || paused[0] != 5 || paused[1] != 10 {
		t.Fatalf("Expected pauses after 5 and 10, got %v", paused)
	}
	for _, d := range slept {
		if d != time.Minute {
			t.Errorf("Expected 1m pause, got %s", d)
		}
	}
}

func TestPacer_Disabled(t *testing.T) {
	for _, p := range []*Pacer{New(0, time.Minute), New(5, 0), nil} {
		if p.Due(5) {
			t.Errorf("Expected disabled pacer not to be due")
		}
	}
}

func TestSleep_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); err == nil {
		t.Fatal("Expected context error, got nil")
	}
}
