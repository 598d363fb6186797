// Package busters plays CodeBusters: teams of busters roam a fogged map,
// trap ghosts, carry them home and stun each other.
package busters

import (
	"fmt"
	"math"
)

const (
	FogRadius     = 2200
	MoveDistance  = 800
	MinBustRadius = 900
	MaxBustRadius = 1760
	BaseRadius    = 1600
	ReturnCoord   = 1130
	MapWidth      = 16000
	MapHeight     = 9000
	StunRadius    = 1760
	StunCooldown  = 20
)

type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) String() string { return fmt.Sprintf("%d %d", p.X, p.Y) }

// Distance is the euclidean distance rounded up, as the referee measures it.
func Distance(a, b Point) int {
	dx, dy := float64(a.X-b.X), float64(a.Y-b.Y)
	return int(math.Ceil(math.Sqrt(dx*dx + dy*dy)))
}

type Vector struct {
	X, Y float64
}

func VectorOf(p Point) Vector { return Vector{float64(p.X), float64(p.Y)} }

func (v Vector) Add(w Vector) Vector    { return Vector{v.X + w.X, v.Y + w.Y} }
func (v Vector) Sub(w Vector) Vector    { return Vector{v.X - w.X, v.Y - w.Y} }
func (v Vector) Scale(k float64) Vector { return Vector{v.X * k, v.Y * k} }
func (v Vector) Length() float64        { return math.Hypot(v.X, v.Y) }

// Normalized returns the unit vector of v, or the zero vector when v is zero.
func (v Vector) Normalized() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Scale(1 / l)
}

// Point rounds v half up to map coordinates.
func (v Vector) Point() Point {
	return Point{int(v.X + 0.5), int(v.Y + 0.5)}
}
