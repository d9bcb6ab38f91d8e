package bot

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/gridbots/grid"
)

// Height is the vertical offset a bot sits above the grid plane
const Height float32 = 0.35

// TravelTime is the elapsed time after which the rendered position reaches the destination
// Independent of Move.Duration: a bot can visually arrive well before the scheduler retires its move
const TravelTime = time.Second

// Position evaluates the render position of a bot in state s at time now
// Pure; called once per frame per bot
func Position(g grid.Config, s State, now time.Duration) mgl32.Vec3 {
	lift := mgl32.Vec3{0, Height, 0}

	switch s.kind {
	case KindIdle:
		return g.ToWorldPosition(s.cell).Add(lift)
	case KindMoving:
		origin := g.ToWorldPosition(s.move.Origin)
		if now < s.move.StartTime {
			return origin.Add(lift)
		}
		target := g.ToWorldPosition(s.move.Destination())
		t := Progress(s.move, now)
		if t >= 1 {
			return target.Add(lift)
		}
		return lerp(origin, target, t).Add(lift)
	default:
		return lift
	}
}

// Progress is the interpolation fraction of m at now, in [0, 1]
func Progress(m Move, now time.Duration) float32 {
	if now <= m.StartTime {
		return 0
	}
	elapsed := now - m.StartTime
	if elapsed >= TravelTime {
		return 1
	}
	return float32(elapsed.Seconds() / TravelTime.Seconds())
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
