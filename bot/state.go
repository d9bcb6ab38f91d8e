// Package bot defines the per-bot movement state machine
//
// Each bot is either Idle on a cell or Moving along a single axis. Transitions are
// driven by the engine scheduler only; this package holds the value types and the
// pure position evaluator.
package bot

import (
	"fmt"
	"time"

	"github.com/lixenwraith/gridbots/grid"
)

// AxialTarget moves a cell along one axis, leaving the other ordinate untouched
type AxialTarget struct {
	Axis     grid.Axis
	Ordinate int
}

// AlongX targets column x
func AlongX(x int) AxialTarget {
	return AxialTarget{Axis: grid.AxisX, Ordinate: x}
}

// AlongY targets row y
func AlongY(y int) AxialTarget {
	return AxialTarget{Axis: grid.AxisY, Ordinate: y}
}

// Resolve applies the axial change to origin
func (t AxialTarget) Resolve(origin grid.Coordinate) grid.Coordinate {
	if t.Axis == grid.AxisX {
		return grid.Coordinate{X: t.Ordinate, Y: origin.Y}
	}
	return grid.Coordinate{X: origin.X, Y: t.Ordinate}
}

// Distance is the cell count between origin and target along the target axis
func (t AxialTarget) Distance(origin grid.Coordinate) int {
	d := t.Ordinate - origin.Ordinate(t.Axis)
	if d < 0 {
		return -d
	}
	return d
}

func (t AxialTarget) String() string {
	return fmt.Sprintf("Along%s(%d)", t.Axis, t.Ordinate)
}

// Move is a scheduled single-axis relocation
// Times are offsets from simulation start
type Move struct {
	Origin    grid.Coordinate
	Target    AxialTarget
	StartTime time.Duration
	Duration  time.Duration
}

// End is the time after which the move counts as complete
func (m Move) End() time.Duration {
	return m.StartTime + m.Duration
}

// Destination is the cell the bot occupies once the move completes
func (m Move) Destination() grid.Coordinate {
	return m.Target.Resolve(m.Origin)
}

// Kind discriminates State variants
type Kind uint8

const (
	KindInvalid Kind = iota
	KindIdle
	KindMoving
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "Idle"
	case KindMoving:
		return "Moving"
	default:
		return "Invalid"
	}
}

// State is the single mutable piece of per-bot data
// Build with Idle or Moving; the zero value is KindInvalid and never produced by the engine
type State struct {
	kind Kind
	cell grid.Coordinate
	move Move
}

// Idle returns a bot resting on cell
func Idle(cell grid.Coordinate) State {
	return State{kind: KindIdle, cell: cell}
}

// Moving returns a bot executing m
func Moving(m Move) State {
	return State{kind: KindMoving, move: m}
}

func (s State) Kind() Kind { return s.kind }

func (s State) IsIdle() bool { return s.kind == KindIdle }

func (s State) IsMoving() bool { return s.kind == KindMoving }

// Cell returns the resting cell, ok is false unless Idle
func (s State) Cell() (grid.Coordinate, bool) {
	return s.cell, s.kind == KindIdle
}

// Move returns the active move, ok is false unless Moving
func (s State) Move() (Move, bool) {
	return s.move, s.kind == KindMoving
}

func (s State) String() string {
	switch s.kind {
	case KindIdle:
		return fmt.Sprintf("Idle%v", s.cell)
	case KindMoving:
		return fmt.Sprintf("Moving{%v -> %v start=%v dur=%v}", s.move.Origin, s.move.Target, s.move.StartTime, s.move.Duration)
	default:
		return "Invalid"
	}
}
