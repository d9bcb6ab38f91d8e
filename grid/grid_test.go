package grid

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestToWorldPosition(t *testing.T) {
	g := New(10, 10)

	tests := []struct {
		name string
		cell Coordinate
		want mgl32.Vec3
	}{
		{"origin", Coordinate{0, 0}, mgl32.Vec3{0.275, 0, 0.275}},
		{"x only", Coordinate{2, 0}, mgl32.Vec3{1.275, 0, 0.275}},
		{"y only", Coordinate{0, 3}, mgl32.Vec3{0.275, 0, 1.775}},
		{"far corner", Coordinate{9, 9}, mgl32.Vec3{4.775, 0, 4.775}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.ToWorldPosition(tt.cell)
			for i := 0; i < 3; i++ {
				if !approx(got[i], tt.want[i]) {
					t.Errorf("ToWorldPosition(%v) = %v, want %v", tt.cell, got, tt.want)
					break
				}
			}
		})
	}
}

func TestCellAtInvertsWorldPosition(t *testing.T) {
	g := New(7, 5)
	for x := 0; x < g.Columns; x++ {
		for y := 0; y < g.Rows; y++ {
			fx, fy := g.CellAt(g.ToWorldPosition(Coordinate{x, y}))
			if !approx(fx, float32(x)) || !approx(fy, float32(y)) {
				t.Errorf("CellAt(ToWorldPosition(%d,%d)) = (%g,%g)", x, y, fx, fy)
			}
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", New(100, 100), false},
		{"single cell", New(1, 1), false},
		{"zero columns", New(0, 10), true},
		{"zero rows", New(10, 0), true},
		{"negative", New(-1, -1), true},
		{"zero cell width", Config{Columns: 1, Rows: 1, CellDepth: 1}, true},
		{"negative track", Config{Columns: 1, Rows: 1, CellWidth: 1, CellDepth: 1, TrackWidth: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContainsAndExtent(t *testing.T) {
	g := New(4, 3)
	if g.Extent(AxisX) != 4 || g.Extent(AxisY) != 3 {
		t.Errorf("Extent = (%d,%d), want (4,3)", g.Extent(AxisX), g.Extent(AxisY))
	}
	if !g.Contains(Coordinate{3, 2}) {
		t.Error("expected (3,2) inside 4x3 grid")
	}
	if g.Contains(Coordinate{4, 0}) || g.Contains(Coordinate{0, 3}) || g.Contains(Coordinate{-1, 0}) {
		t.Error("expected out-of-range cells to be rejected")
	}
}

func TestWorldBounds(t *testing.T) {
	g := New(10, 4)
	b := g.WorldBounds()
	if b.Min[0] != 0 || b.Min[1] != 0 {
		t.Errorf("bounds min = %v, want origin", b.Min)
	}
	if !approx(float32(b.Max[0]), 5.05) || !approx(float32(b.Max[1]), 2.05) {
		t.Errorf("bounds max = %v, want [5.05 2.05]", b.Max)
	}
	for x := 0; x < g.Columns; x++ {
		p := g.ToWorldPosition(Coordinate{x, g.Rows - 1})
		if float64(p.X()) > b.Max[0] || float64(p.Z()) > b.Max[1] {
			t.Errorf("cell center %v outside bounds %v", p, b)
		}
	}
}
