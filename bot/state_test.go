package bot

import (
	"testing"
	"time"

	"github.com/lixenwraith/gridbots/grid"
)

func TestAxialTargetResolve(t *testing.T) {
	origin := grid.Coordinate{X: 5, Y: 5}

	tests := []struct {
		name   string
		target AxialTarget
		want   grid.Coordinate
		dist   int
	}{
		{"x backwards", AlongX(2), grid.Coordinate{X: 2, Y: 5}, 3},
		{"x forwards", AlongX(9), grid.Coordinate{X: 9, Y: 5}, 4},
		{"y backwards", AlongY(0), grid.Coordinate{X: 5, Y: 0}, 5},
		{"y forwards", AlongY(7), grid.Coordinate{X: 5, Y: 7}, 2},
		{"same x", AlongX(5), origin, 0},
		{"same y", AlongY(5), origin, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.Resolve(origin); got != tt.want {
				t.Errorf("%v.Resolve(%v) = %v, want %v", tt.target, origin, got, tt.want)
			}
			if got := tt.target.Distance(origin); got != tt.dist {
				t.Errorf("%v.Distance(%v) = %d, want %d", tt.target, origin, got, tt.dist)
			}
		})
	}
}

func TestStateVariants(t *testing.T) {
	cell := grid.Coordinate{X: 1, Y: 2}
	idle := Idle(cell)
	if !idle.IsIdle() || idle.IsMoving() || idle.Kind() != KindIdle {
		t.Fatalf("Idle state reports kind %v", idle.Kind())
	}
	if c, ok := idle.Cell(); !ok || c != cell {
		t.Errorf("Idle.Cell() = %v, %v", c, ok)
	}
	if _, ok := idle.Move(); ok {
		t.Error("Idle.Move() reported ok")
	}

	m := Move{Origin: cell, Target: AlongY(8), StartTime: time.Second, Duration: 3 * time.Second}
	moving := Moving(m)
	if !moving.IsMoving() || moving.IsIdle() || moving.Kind() != KindMoving {
		t.Fatalf("Moving state reports kind %v", moving.Kind())
	}
	if got, ok := moving.Move(); !ok || got != m {
		t.Errorf("Moving.Move() = %v, %v", got, ok)
	}
	if _, ok := moving.Cell(); ok {
		t.Error("Moving.Cell() reported ok")
	}

	var zero State
	if zero.Kind() != KindInvalid {
		t.Errorf("zero State kind = %v, want Invalid", zero.Kind())
	}
}

func TestMoveEndAndDestination(t *testing.T) {
	m := Move{
		Origin:    grid.Coordinate{X: 5, Y: 5},
		Target:    AlongX(2),
		StartTime: 4 * time.Second,
		Duration:  1800 * time.Millisecond,
	}
	if m.End() != 5800*time.Millisecond {
		t.Errorf("End() = %v, want 5.8s", m.End())
	}
	if m.Destination() != (grid.Coordinate{X: 2, Y: 5}) {
		t.Errorf("Destination() = %v, want (2,5)", m.Destination())
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindIdle, "Idle"},
		{KindMoving, "Moving"},
		{KindInvalid, "Invalid"},
		{Kind(99), "Invalid"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
