package core

import (
	"testing"
	"time"
)

func TestFixedStepTicks(t *testing.T) {
	now := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return now }

	if fs.Step() != 100*time.Millisecond {
		t.Fatalf("Step = %v", fs.Step())
	}
	if n := fs.Ticks(); n != 0 {
		t.Fatalf("first call ticks = %d", n)
	}
	now = now.Add(250 * time.Millisecond)
	if n := fs.Ticks(); n != 2 {
		t.Fatalf("after 250ms ticks = %d, want 2", n)
	}
	now = now.Add(60 * time.Millisecond)
	if n := fs.Ticks(); n != 1 {
		t.Fatalf("leftover 50ms + 60ms ticks = %d, want 1", n)
	}
	fs.Reset()
	now = now.Add(time.Second)
	if n := fs.Ticks(); n != 0 {
		t.Fatalf("after Reset first call ticks = %d", n)
	}
	fs.SetTPS(0)
	if fs.Step() != time.Second/60 {
		t.Fatalf("SetTPS(0) step = %v", fs.Step())
	}
}
