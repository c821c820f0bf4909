package zone

import (
	"errors"
	"slices"
	"sort"

	"mapapylife/internal/domain/geo"
)

var errUnionTrace = errors.New("union boundary trace failed")

// grid is a compressed coordinate grid padded by one empty cell on every side.
// Cell (i, j) with 1 <= i <= len(xs)-1 spans xs[i-1]..xs[i].
type grid struct {
	xs, ys []int
	w, h   int
}

func newGrid(rects []geo.Rect) grid {
	xs := make([]int, 0, 2*len(rects))
	ys := make([]int, 0, 2*len(rects))
	for _, r := range rects {
		xs = append(xs, r.MinX, r.MaxX)
		ys = append(ys, r.MinY, r.MaxY)
	}
	slices.Sort(xs)
	slices.Sort(ys)
	xs, ys = slices.Compact(xs), slices.Compact(ys)
	return grid{xs: xs, ys: ys, w: len(xs) + 1, h: len(ys) + 1}
}

func (g grid) idx(i, j int) int { return j*g.w + i }

// span returns the padded cell range covered by r along one axis.
func span(lines []int, lo, hi int) (int, int) {
	return sort.SearchInts(lines, lo) + 1, sort.SearchInts(lines, hi)
}

// Union merges axis-aligned rectangles into the exterior rings of their
// 4-connected regions, in order of each region's first contributing rectangle.
// Rings are counter-clockwise, start at the smallest (x, y) vertex and carry
// no collinear vertices. Holes are filled and regions lying inside a hole are
// absorbed. Empty rectangles are ignored.
func Union(rects []geo.Rect) ([]geo.Ring, error) {
	live := make([]geo.Rect, 0, len(rects))
	for _, r := range rects {
		if !r.Empty() {
			live = append(live, r)
		}
	}
	if len(live) == 0 {
		return nil, nil
	}

	g := newGrid(live)
	covered := make([]bool, g.w*g.h)
	seeds := make([]int, 0, len(live))
	for _, r := range live {
		i0, i1 := span(g.xs, r.MinX, r.MaxX)
		j0, j1 := span(g.ys, r.MinY, r.MaxY)
		for j := j0; j <= j1; j++ {
			for i := i0; i <= i1; i++ {
				covered[g.idx(i, j)] = true
			}
		}
		seeds = append(seeds, g.idx(i0, j0))
	}

	label := make([]int, g.w*g.h)
	for i := range label {
		label[i] = -1
	}
	var roots []int
	for _, s := range seeds {
		if label[s] >= 0 {
			continue
		}
		k := len(roots)
		g.flood(s, func(c int) bool { return covered[c] && label[c] < 0 }, func(c int) { label[c] = k })
		roots = append(roots, s)
	}

	outside := make([][]bool, len(roots))
	for k := range roots {
		out := make([]bool, g.w*g.h)
		g.flood(0, func(c int) bool { return label[c] != k && !out[c] }, func(c int) { out[c] = true })
		outside[k] = out
	}

	rings := make([]geo.Ring, 0, len(roots))
	for k, s := range roots {
		if enclosed(outside, k, s) {
			continue
		}
		out := outside[k]
		ring, err := g.trace(func(c int) bool { return !out[c] })
		if err != nil {
			return nil, err
		}
		rings = append(rings, ring)
	}
	return rings, nil
}

// enclosed reports whether region k lies in a filled hole of another region.
func enclosed(outside [][]bool, k, seed int) bool {
	for m := range outside {
		if m != k && !outside[m][seed] {
			return true
		}
	}
	return false
}

// flood visits the 4-connected cells reachable from start for which ok holds.
func (g grid) flood(start int, ok func(int) bool, visit func(int)) {
	if !ok(start) {
		return
	}
	visit(start)
	stack := []int{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j := c%g.w, c/g.w
		for _, n := range [4][2]int{{i - 1, j}, {i + 1, j}, {i, j - 1}, {i, j + 1}} {
			if n[0] < 0 || n[1] < 0 || n[0] >= g.w || n[1] >= g.h {
				continue
			}
			nc := g.idx(n[0], n[1])
			if ok(nc) {
				visit(nc)
				stack = append(stack, nc)
			}
		}
	}
}

type gridVertex struct{ i, j int }

// trace walks the boundary of the filled region with the interior on the left.
// Vertex (i, j) sits at (xs[i], ys[j]); cell (i, j) has corners (i-1, j-1) and (i, j).
func (g grid) trace(filled func(int) bool) (geo.Ring, error) {
	next := make(map[gridVertex]gridVertex)
	add := func(from, to gridVertex) bool {
		if _, dup := next[from]; dup {
			return false
		}
		next[from] = to
		return true
	}
	for j := 1; j < g.h-1; j++ {
		for i := 1; i < g.w-1; i++ {
			if !filled(g.idx(i, j)) {
				continue
			}
			ok := true
			if !filled(g.idx(i, j-1)) {
				ok = ok && add(gridVertex{i - 1, j - 1}, gridVertex{i, j - 1})
			}
			if !filled(g.idx(i+1, j)) {
				ok = ok && add(gridVertex{i, j - 1}, gridVertex{i, j})
			}
			if !filled(g.idx(i, j+1)) {
				ok = ok && add(gridVertex{i, j}, gridVertex{i - 1, j})
			}
			if !filled(g.idx(i-1, j)) {
				ok = ok && add(gridVertex{i - 1, j}, gridVertex{i - 1, j - 1})
			}
			if !ok {
				return nil, errUnionTrace
			}
		}
	}
	if len(next) == 0 {
		return nil, errUnionTrace
	}

	var start gridVertex
	first := true
	for v := range next {
		if first || v.i < start.i || (v.i == start.i && v.j < start.j) {
			start, first = v, false
		}
	}

	path := make([]gridVertex, 0, len(next))
	for cur := start; ; {
		path = append(path, cur)
		nv, ok := next[cur]
		if !ok {
			return nil, errUnionTrace
		}
		cur = nv
		if cur == start {
			break
		}
		if len(path) > len(next) {
			return nil, errUnionTrace
		}
	}
	if len(path) != len(next) {
		return nil, errUnionTrace
	}

	ring := make(geo.Ring, 0, len(path))
	n := len(path)
	for k, v := range path {
		prev, nxt := path[(k+n-1)%n], path[(k+1)%n]
		if (prev.i == v.i && v.i == nxt.i) || (prev.j == v.j && v.j == nxt.j) {
			continue
		}
		ring = append(ring, geo.Vertex{X: g.xs[v.i], Y: g.ys[v.j]})
	}
	return ring, nil
}
