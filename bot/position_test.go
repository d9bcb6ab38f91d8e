package bot

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/gridbots/grid"
)

func lifted(g grid.Config, c grid.Coordinate) mgl32.Vec3 {
	return g.ToWorldPosition(c).Add(mgl32.Vec3{0, Height, 0})
}

func TestPositionIdle(t *testing.T) {
	g := grid.New(10, 10)
	c := grid.Coordinate{X: 3, Y: 7}
	got := Position(g, Idle(c), 42*time.Second)
	if got != lifted(g, c) {
		t.Errorf("Position(Idle) = %v, want %v", got, lifted(g, c))
	}
}

func TestPositionWaitsAtOriginDuringDelay(t *testing.T) {
	g := grid.New(10, 10)
	m := Move{Origin: grid.Coordinate{X: 5, Y: 5}, Target: AlongX(2), StartTime: 10 * time.Second, Duration: 1800 * time.Millisecond}

	for _, now := range []time.Duration{0, 9 * time.Second, 10*time.Second - time.Millisecond, 10 * time.Second} {
		if got := Position(g, Moving(m), now); got != lifted(g, m.Origin) {
			t.Errorf("Position at %v = %v, want origin %v", now, got, lifted(g, m.Origin))
		}
	}
}

func TestPositionMidway(t *testing.T) {
	g := grid.New(10, 10)
	m := Move{Origin: grid.Coordinate{X: 0, Y: 0}, Target: AlongY(4), StartTime: 0, Duration: 4 * time.Second}

	got := Position(g, Moving(m), 500*time.Millisecond)
	origin, target := lifted(g, m.Origin), lifted(g, m.Destination())
	want := origin.Add(target.Sub(origin).Mul(0.5))
	if !got.ApproxEqual(want) {
		t.Errorf("Position at half a second = %v, want %v", got, want)
	}
}

// The rendered position reaches the destination after one second of travel
// regardless of the scheduled Duration, while the scheduler retires the move
// only after StartTime+Duration. Both sides of that gap are pinned here.
func TestPositionClampsAtOneSecondNotDuration(t *testing.T) {
	g := grid.New(10, 10)
	tick := 3 * time.Second
	m := Move{
		Origin:    grid.Coordinate{X: 5, Y: 5},
		Target:    AlongX(2),
		StartTime: tick,
		Duration:  1800 * time.Millisecond,
	}
	dest := lifted(g, grid.Coordinate{X: 2, Y: 5})

	t.Run("arrives visually after one second", func(t *testing.T) {
		got := Position(g, Moving(m), tick+time.Second)
		if got != dest {
			t.Errorf("Position at 1s = %v, want destination %v", got, dest)
		}
		if m.End() <= tick+time.Second {
			t.Fatalf("move should still be logically in progress at 1s, ends at %v", m.End())
		}
	})

	t.Run("holds destination past duration", func(t *testing.T) {
		got := Position(g, Moving(m), tick+2000*time.Millisecond)
		if got != dest {
			t.Errorf("Position at 2s = %v, want destination %v", got, dest)
		}
	})

	t.Run("short move still takes one second visually", func(t *testing.T) {
		short := m
		short.Duration = 200 * time.Millisecond
		got := Position(g, Moving(short), tick+500*time.Millisecond)
		if got == dest {
			t.Errorf("Position at 0.5s reached destination on a 200ms move; interpolation should track one second")
		}
	})
}

func TestPositionMonotonicAlongLine(t *testing.T) {
	g := grid.New(30, 30)
	m := Move{Origin: grid.Coordinate{X: 20, Y: 4}, Target: AlongX(11), StartTime: time.Second, Duration: 9 * 700 * time.Millisecond}
	origin, target := lifted(g, m.Origin), lifted(g, m.Destination())
	total := target.Sub(origin).Len()

	prev := float32(-1)
	for ms := 0; ms <= 3000; ms += 50 {
		now := time.Second + time.Duration(ms)*time.Millisecond
		p := Position(g, Moving(m), now)

		// Stays on the segment: distances to both ends sum to its length
		sum := p.Sub(origin).Len() + target.Sub(p).Len()
		if math.Abs(float64(sum-total)) > 1e-4 {
			t.Fatalf("at %v position %v left the segment", now, p)
		}
		// Z and Y never change on an X move
		if p.Z() != origin.Z() || p.Y() != origin.Y() {
			t.Fatalf("at %v off-axis drift: %v", now, p)
		}

		d := p.Sub(origin).Len()
		if d+1e-6 < prev {
			t.Fatalf("at %v travelled distance decreased: %g < %g", now, d, prev)
		}
		prev = d
	}
	if prev < total-1e-4 {
		t.Errorf("final travelled %g, want %g", prev, total)
	}
}

func TestProgress(t *testing.T) {
	m := Move{StartTime: 2 * time.Second, Duration: 10 * time.Second}
	tests := []struct {
		now  time.Duration
		want float32
	}{
		{0, 0},
		{2 * time.Second, 0},
		{2250 * time.Millisecond, 0.25},
		{2500 * time.Millisecond, 0.5},
		{3 * time.Second, 1},
		{20 * time.Second, 1},
	}
	for _, tt := range tests {
		if got := Progress(m, tt.now); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("Progress(now=%v) = %g, want %g", tt.now, got, tt.want)
		}
	}
}
