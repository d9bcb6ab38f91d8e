package grid

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/paulmach/orb"
)

// Default cell geometry in world units
const (
	CellWidth   float32 = 0.5
	CellDepth   float32 = 0.5
	TrackWidth  float32 = 0.05
	TrackHeight float32 = 0.025
)

// Axis selects one of the two grid dimensions
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	default:
		return "Unknown"
	}
}

// Coordinate is a discrete grid cell
type Coordinate struct {
	X, Y int
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Ordinate returns the component of c along axis
func (c Coordinate) Ordinate(axis Axis) int {
	if axis == AxisX {
		return c.X
	}
	return c.Y
}

// Config describes grid dimensions and cell geometry
// Created once at startup and treated as read-only afterwards
type Config struct {
	Columns     int
	Rows        int
	CellWidth   float32
	CellDepth   float32
	TrackWidth  float32
	TrackHeight float32
}

// New returns a grid of the given size with default cell geometry
func New(columns, rows int) Config {
	return Config{
		Columns:     columns,
		Rows:        rows,
		CellWidth:   CellWidth,
		CellDepth:   CellDepth,
		TrackWidth:  TrackWidth,
		TrackHeight: TrackHeight,
	}
}

// Validate rejects degenerate dimensions and geometry
func (g Config) Validate() error {
	var errs []error
	if g.Columns < 1 {
		errs = append(errs, fmt.Errorf("columns must be >= 1, got %d", g.Columns))
	}
	if g.Rows < 1 {
		errs = append(errs, fmt.Errorf("rows must be >= 1, got %d", g.Rows))
	}
	if g.CellWidth <= 0 || g.CellDepth <= 0 {
		errs = append(errs, fmt.Errorf("cell size must be positive, got %gx%g", g.CellWidth, g.CellDepth))
	}
	if g.TrackWidth < 0 {
		errs = append(errs, fmt.Errorf("track width must be >= 0, got %g", g.TrackWidth))
	}
	return errors.Join(errs...)
}

// Extent returns the number of cells along axis
func (g Config) Extent(axis Axis) int {
	if axis == AxisX {
		return g.Columns
	}
	return g.Rows
}

// Contains reports whether c lies within grid bounds
func (g Config) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X < g.Columns && c.Y >= 0 && c.Y < g.Rows
}

// ToWorldPosition returns the world-space center of cell c on the grid plane
// Grid columns map to world X, rows to world Z
func (g Config) ToWorldPosition(c Coordinate) mgl32.Vec3 {
	xOffset := g.TrackWidth/2 + g.CellWidth/2
	zOffset := g.TrackWidth/2 + g.CellDepth/2
	return mgl32.Vec3{
		xOffset + float32(c.X)*g.CellWidth,
		0,
		zOffset + float32(c.Y)*g.CellDepth,
	}
}

// WorldBounds returns the planar x/z footprint of the whole grid including tracks
func (g Config) WorldBounds() orb.Bound {
	return orb.Bound{
		Min: orb.Point{0, 0},
		Max: orb.Point{
			float64(float32(g.Columns)*g.CellWidth + g.TrackWidth),
			float64(float32(g.Rows)*g.CellDepth + g.TrackWidth),
		},
	}
}

// CellAt maps a world x/z position back to fractional cell coordinates
// Inverse of ToWorldPosition for cell centers
func (g Config) CellAt(p mgl32.Vec3) (float32, float32) {
	xOffset := g.TrackWidth/2 + g.CellWidth/2
	zOffset := g.TrackWidth/2 + g.CellDepth/2
	return (p.X() - xOffset) / g.CellWidth, (p.Z() - zOffset) / g.CellDepth
}
