package engine

import (
	"testing"
	"time"
)

func TestTickerAccumulates(t *testing.T) {
	tk := NewTicker(time.Second)

	frame := 16 * time.Millisecond
	fired := 0
	for i := 0; i < 125; i++ { // 2.0s of frames
		if tk.Advance(frame) {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("fired %d times over 2s, want 2", fired)
	}
	if tk.Fired() != 2 {
		t.Errorf("Fired() = %d, want 2", tk.Fired())
	}
}

func TestTickerLargeStepFiresOnce(t *testing.T) {
	tk := NewTicker(time.Second)
	if !tk.Advance(3500 * time.Millisecond) {
		t.Fatal("expected fire")
	}
	if got := tk.Remaining(); got != 500*time.Millisecond {
		t.Errorf("Remaining() = %v, want 500ms", got)
	}
	if tk.Advance(400 * time.Millisecond) {
		t.Error("fired before remainder elapsed")
	}
	if !tk.Advance(100 * time.Millisecond) {
		t.Error("expected fire once remainder elapsed")
	}
}

func TestTickerIgnoresNonPositive(t *testing.T) {
	tk := NewTicker(time.Second)
	if tk.Advance(0) || tk.Advance(-time.Hour) {
		t.Error("non-positive dt fired")
	}
	if tk.Remaining() != time.Second {
		t.Errorf("Remaining() = %v, want 1s", tk.Remaining())
	}

	tk.Advance(time.Second)
	tk.Reset()
	if tk.Fired() != 0 || tk.Remaining() != time.Second {
		t.Error("Reset did not clear state")
	}
}
