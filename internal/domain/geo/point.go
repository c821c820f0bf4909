package geo

import "github.com/paulmach/orb"

// DisplayOffset is the translation between the map widget's coordinates and
// the game's internal coordinates. Both the rebuild and every query must use it.
const DisplayOffset = 3000

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Vertex struct {
	X int
	Y int
}

// Rect is an axis-aligned rectangle; NewRect normalizes the corners.
type Rect struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

func NewRect(x1, y1, x2, y2 int) Rect {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Rect{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
}

func (r Rect) Empty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

func (r Rect) Area() int64 {
	if r.Empty() {
		return 0
	}
	return int64(r.MaxX-r.MinX) * int64(r.MaxY-r.MinY)
}

func FromDisplay(p Point) Point {
	return Point{X: p.X - DisplayOffset, Y: DisplayOffset - p.Y}
}

func ToDisplay(p Point) Point {
	return Point{X: p.X + DisplayOffset, Y: DisplayOffset - p.Y}
}

func VertexToDisplay(v Vertex) Vertex {
	return Vertex{X: v.X + DisplayOffset, Y: DisplayOffset - v.Y}
}

func (p Point) orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

func (v Vertex) orb() orb.Point {
	return orb.Point{float64(v.X), float64(v.Y)}
}
