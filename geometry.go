package reactiontime

import "math"

type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Bounds is the playable area, anchored at the origin.
type Bounds struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

func (b Bounds) Center() Point {
	return Point{X: b.Width / 2, Y: b.Height / 2}
}

// Rect is a square target with its top-left corner at (X, Y).
type Rect struct {
	X    float64
	Y    float64
	Size float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Size && p.Y >= r.Y && p.Y <= r.Y+r.Size
}

// placeTarget puts a target at distance from origin along angle (radians),
// clamped so the whole square stays inside b.
func placeTarget(origin Point, distance, angle, size float64, b Bounds) Rect {
	x := origin.X + distance*math.Cos(angle)
	y := origin.Y + distance*math.Sin(angle)
	return Rect{
		X:    clamp(x, 0, b.Width-size),
		Y:    clamp(y, 0, b.Height-size),
		Size: size,
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}
