package engine

import (
	"testing"
	"time"
)

func TestSystemClock(t *testing.T) {
	var clock SystemClock

	t1 := clock.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := clock.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
}

func TestManualClock(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewManualClock(startTime)

	if now := clock.Now(); !now.Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, now)
	}

	newTime := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	clock.Set(newTime)
	if now := clock.Now(); !now.Equal(newTime) {
		t.Errorf("Expected time to be %v after Set, got %v", newTime, now)
	}

	clock.Advance(50 * time.Millisecond)
	clock.Advance(25 * time.Millisecond)
	expected := newTime.Add(75 * time.Millisecond)
	if now := clock.Now(); !now.Equal(expected) {
		t.Errorf("Expected time to be %v after advances, got %v", expected, now)
	}
}
