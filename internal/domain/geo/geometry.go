package geo

import (
	"encoding/json"
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// Ring is a closed polygon boundary. The closing vertex is implied, never stored.
type Ring []Vertex

type Kind uint8

const (
	KindSimple Kind = iota + 1
	KindMulti
)

func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "polygon"
	case KindMulti:
		return "multipolygon"
	default:
		return "empty"
	}
}

// Geometry is either a single ring (Simple) or several disjoint rings (Multi).
type Geometry struct {
	kind  Kind
	rings []Ring
}

func Simple(r Ring) Geometry {
	return Geometry{kind: KindSimple, rings: []Ring{r}}
}

func Multi(rings ...Ring) Geometry {
	return Geometry{kind: KindMulti, rings: rings}
}

func (g Geometry) Kind() Kind { return g.kind }

func (g Geometry) IsZero() bool { return g.kind == 0 }

func (g Geometry) Rings() []Ring { return g.rings }

// Area returns the enclosed area; rings are assumed disjoint.
func (g Geometry) Area() float64 {
	var twice int64
	for _, r := range g.rings {
		a := r.area2()
		if a < 0 {
			a = -a
		}
		twice += a
	}
	return float64(twice) / 2
}

func (g Geometry) Bound() orb.Bound {
	var b orb.Bound
	first := true
	for _, r := range g.rings {
		for _, v := range r {
			if first {
				b = orb.Bound{Min: v.orb(), Max: v.orb()}
				first = false
				continue
			}
			b = b.Extend(v.orb())
		}
	}
	return b
}

// Map returns a copy with fn applied to every vertex.
func (g Geometry) Map(fn func(Vertex) Vertex) Geometry {
	out := Geometry{kind: g.kind, rings: make([]Ring, len(g.rings))}
	for i, r := range g.rings {
		nr := make(Ring, len(r))
		for j, v := range r {
			nr[j] = fn(v)
		}
		out.rings[i] = nr
	}
	return out
}

func (g Geometry) Equal(o Geometry) bool {
	if g.kind != o.kind || len(g.rings) != len(o.rings) {
		return false
	}
	for i := range g.rings {
		if len(g.rings[i]) != len(o.rings[i]) {
			return false
		}
		for j := range g.rings[i] {
			if g.rings[i][j] != o.rings[i][j] {
				return false
			}
		}
	}
	return true
}

// Orb converts to orb.Polygon for Simple and orb.MultiPolygon for Multi, closing every ring.
func (g Geometry) Orb() orb.Geometry {
	switch g.kind {
	case KindSimple:
		return orb.Polygon{g.rings[0].orb()}
	case KindMulti:
		mp := make(orb.MultiPolygon, 0, len(g.rings))
		for _, r := range g.rings {
			mp = append(mp, orb.Polygon{r.orb()})
		}
		return mp
	default:
		return nil
	}
}

func (r Ring) orb() orb.Ring {
	out := make(orb.Ring, 0, len(r)+1)
	for _, v := range r {
		out = append(out, v.orb())
	}
	if len(r) > 0 {
		out = append(out, r[0].orb())
	}
	return out
}

// area2 is twice the signed area; positive for counter-clockwise rings.
func (r Ring) area2() int64 {
	var s int64
	for i := range r {
		j := (i + 1) % len(r)
		s += int64(r[i].X)*int64(r[j].Y) - int64(r[j].X)*int64(r[i].Y)
	}
	return s
}

var ErrInvalidPoints = errors.New("invalid points json")

func (g Geometry) MarshalJSON() ([]byte, error) {
	switch g.kind {
	case KindSimple:
		return json.Marshal(g.rings[0].pairs())
	case KindMulti:
		out := make([][][2]int, 0, len(g.rings))
		for _, r := range g.rings {
			out = append(out, r.pairs())
		}
		return json.Marshal(out)
	default:
		return []byte("null"), nil
	}
}

func (g *Geometry) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = Geometry{}
		return nil
	}
	var simple [][]float64
	if err := json.Unmarshal(data, &simple); err == nil {
		r, err := ringFromPairs(simple)
		if err != nil {
			return err
		}
		*g = Simple(r)
		return nil
	}
	var multi [][][]float64
	if err := json.Unmarshal(data, &multi); err != nil {
		return ErrInvalidPoints
	}
	rings := make([]Ring, 0, len(multi))
	for _, pairs := range multi {
		r, err := ringFromPairs(pairs)
		if err != nil {
			return err
		}
		rings = append(rings, r)
	}
	*g = Multi(rings...)
	return nil
}

func (r Ring) pairs() [][2]int {
	out := make([][2]int, len(r))
	for i, v := range r {
		out[i] = [2]int{v.X, v.Y}
	}
	return out
}

func ringFromPairs(pairs [][]float64) (Ring, error) {
	r := make(Ring, 0, len(pairs))
	for _, p := range pairs {
		if len(p) != 2 {
			return nil, ErrInvalidPoints
		}
		r = append(r, Vertex{X: int(math.Trunc(p[0])), Y: int(math.Trunc(p[1]))})
	}
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	return r, nil
}
