package geo

import (
	"slices"

	"github.com/paulmach/orb"
)

// IntersectionArea returns area(a ∩ b). It is exact for rectilinear geometries:
// every cell of the merged coordinate grid is either fully inside or fully
// outside each operand, so one center test per cell decides it.
func IntersectionArea(a, b Geometry) float64 {
	ab, bb := a.Bound(), b.Bound()
	minX, minY := max(ab.Min.X(), bb.Min.X()), max(ab.Min.Y(), bb.Min.Y())
	maxX, maxY := min(ab.Max.X(), bb.Max.X()), min(ab.Max.Y(), bb.Max.Y())
	if minX >= maxX || minY >= maxY {
		return 0
	}

	clip := orb.Bound{Min: orb.Point{minX, minY}, Max: orb.Point{maxX, maxY}}
	xs, ys := gridLines(clip, a, b)
	sa, sb := newShape(a), newShape(b)

	var area float64
	for i := 0; i+1 < len(xs); i++ {
		for j := 0; j+1 < len(ys); j++ {
			center := Point{X: (xs[i] + xs[i+1]) / 2, Y: (ys[j] + ys[j+1]) / 2}
			if sa.Contains(center) && sb.Contains(center) {
				area += (xs[i+1] - xs[i]) * (ys[j+1] - ys[j])
			}
		}
	}
	return area
}

func newShape(g Geometry) Shape {
	return Shape{kind: g.kind, geom: g.Orb(), bound: g.Bound(), area: g.Area()}
}

func gridLines(clip orb.Bound, gs ...Geometry) ([]float64, []float64) {
	xs := []float64{clip.Min.X(), clip.Max.X()}
	ys := []float64{clip.Min.Y(), clip.Max.Y()}
	for _, g := range gs {
		for _, r := range g.rings {
			for _, v := range r {
				x, y := float64(v.X), float64(v.Y)
				if x > clip.Min.X() && x < clip.Max.X() {
					xs = append(xs, x)
				}
				if y > clip.Min.Y() && y < clip.Max.Y() {
					ys = append(ys, y)
				}
			}
		}
	}
	slices.Sort(xs)
	slices.Sort(ys)
	return slices.Compact(xs), slices.Compact(ys)
}
