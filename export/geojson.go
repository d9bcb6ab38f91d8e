// Package export streams simulation frames as newline-delimited GeoJSON
//
// Each line is a FeatureCollection on the world x/z plane: one Point feature per bot,
// keyed by bot index, plus a grid outline polygon on the first frame. External viewers
// consume it without linking the engine.
package export

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/lixenwraith/gridbots/bot"
	"github.com/lixenwraith/gridbots/engine"
	"github.com/lixenwraith/gridbots/grid"
)

// FeatureKind distinguishes bot points from the grid outline
const (
	KindBot  = "bot"
	KindGrid = "grid"
)

type Writer struct {
	w      io.Writer
	grid   grid.Config
	bounds orb.Bound
	frames int
}

func NewWriter(w io.Writer, g grid.Config) *Writer {
	return &Writer{w: w, grid: g, bounds: g.WorldBounds()}
}

// Frames returns how many frames were written
func (fw *Writer) Frames() int { return fw.frames }

// WriteFrame encodes f as one GeoJSON line
func (fw *Writer) WriteFrame(f *engine.Frame, last engine.TickStats) error {
	fc := Collection(fw.grid, f)
	fc.BBox = geojson.NewBBox(fw.bounds)
	fc.ExtraMembers = geojson.Properties{
		"frame": fw.frames,
		"t_ms":  f.Now.Milliseconds(),
		"tick":  last.Tick,
	}
	if fw.frames == 0 {
		outline := geojson.NewFeature(fw.bounds.ToPolygon())
		outline.Properties["kind"] = KindGrid
		outline.Properties["columns"] = fw.grid.Columns
		outline.Properties["rows"] = fw.grid.Rows
		fc.Features = append([]*geojson.Feature{outline}, fc.Features...)
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", fw.frames, err)
	}
	data = append(data, '\n')
	if _, err := fw.w.Write(data); err != nil {
		return fmt.Errorf("write frame %d: %w", fw.frames, err)
	}
	fw.frames++
	return nil
}

// Collection converts a frame to bot point features
func Collection(g grid.Config, f *engine.Frame) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i, p := range f.Positions {
		st := f.States[i]
		feat := geojson.NewFeature(orb.Point{float64(p.X()), float64(p.Z())})
		feat.ID = i
		feat.Properties["kind"] = KindBot
		feat.Properties["state"] = st.Kind().String()
		feat.Properties["height"] = p.Y()

		if c, ok := st.Cell(); ok {
			feat.Properties["cell"] = []int{c.X, c.Y}
		}
		if m, ok := st.Move(); ok {
			dst := m.Destination()
			feat.Properties["origin"] = []int{m.Origin.X, m.Origin.Y}
			feat.Properties["destination"] = []int{dst.X, dst.Y}
			feat.Properties["start_ms"] = m.StartTime.Milliseconds()
			feat.Properties["duration_ms"] = m.Duration.Milliseconds()
			feat.Properties["progress"] = bot.Progress(m, f.Now)
		}
		fc.Append(feat)
	}
	return fc
}
