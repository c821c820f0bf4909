package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var ErrMalformedGeometry = errors.New("malformed geometry")

type MalformedError struct {
	Ring   int
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: ring %d: %s", ErrMalformedGeometry, e.Ring, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedGeometry
}

// Shape is a validated geometry prepared for repeated containment tests.
type Shape struct {
	kind  Kind
	geom  orb.Geometry
	bound orb.Bound
	area  float64
}

func Compile(g Geometry) (Shape, error) {
	if err := Validate(g); err != nil {
		return Shape{}, err
	}
	return newShape(g), nil
}

func (s Shape) Kind() Kind { return s.kind }

func (s Shape) Bound() orb.Bound { return s.bound }

func (s Shape) Area() float64 { return s.area }

// Contains reports whether p is inside or on the boundary of the shape.
func (s Shape) Contains(p Point) bool {
	pt := p.orb()
	if !s.bound.Contains(pt) {
		return false
	}
	switch g := s.geom.(type) {
	case orb.Polygon:
		return planar.PolygonContains(g, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(g, pt)
	default:
		return false
	}
}

// Validate rejects empty geometries, degenerate rings and self-intersecting rings.
func Validate(g Geometry) error {
	if g.kind == 0 || len(g.rings) == 0 {
		return &MalformedError{Ring: 0, Reason: "no rings"}
	}
	for i, r := range g.rings {
		if err := validateRing(r); err != "" {
			return &MalformedError{Ring: i, Reason: err}
		}
	}
	return nil
}

func validateRing(r Ring) string {
	n := len(r)
	if n < 3 {
		return "fewer than 3 vertices"
	}
	for i := range r {
		if r[i] == r[(i+1)%n] {
			return "repeated vertex"
		}
	}
	if r.area2() == 0 {
		return "zero area"
	}
	for i := 0; i < n; i++ {
		a, b := r[i], r[(i+1)%n]
		for j := i + 1; j < n; j++ {
			c, d := r[j], r[(j+1)%n]
			switch {
			case j == i+1:
				if backtracks(a, b, d) {
					return "edge folds back on itself"
				}
			case i == 0 && j == n-1:
				if backtracks(c, a, b) {
					return "edge folds back on itself"
				}
			default:
				if segmentsIntersect(a, b, c, d) {
					return "self-intersection"
				}
			}
		}
	}
	return ""
}

func cross(o, a, b Vertex) int64 {
	return int64(a.X-o.X)*int64(b.Y-o.Y) - int64(a.Y-o.Y)*int64(b.X-o.X)
}

// backtracks reports whether the path a->b->c reverses direction along one line.
func backtracks(a, b, c Vertex) bool {
	if cross(a, b, c) != 0 {
		return false
	}
	dot := int64(b.X-a.X)*int64(c.X-b.X) + int64(b.Y-a.Y)*int64(c.Y-b.Y)
	return dot < 0
}

func sign(v int64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func onSegment(a, b, p Vertex) bool {
	return min(a.X, b.X) <= p.X && p.X <= max(a.X, b.X) &&
		min(a.Y, b.Y) <= p.Y && p.Y <= max(a.Y, b.Y)
}

func segmentsIntersect(a, b, c, d Vertex) bool {
	d1 := sign(cross(c, d, a))
	d2 := sign(cross(c, d, b))
	d3 := sign(cross(a, b, c))
	d4 := sign(cross(a, b, d))
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}
