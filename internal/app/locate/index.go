package locate

import (
	"fmt"
	"sort"

	"github.com/dhconnelly/rtreego"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/zone"
)

type MalformedZoneError struct {
	ZoneID int
	Err    error
}

func (e *MalformedZoneError) Error() string {
	return fmt.Sprintf("zone %d: %v", e.ZoneID, e.Err)
}

func (e *MalformedZoneError) Unwrap() error {
	return e.Err
}

type entry struct {
	zone   zone.Zone
	shape  geo.Shape
	bounds rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.bounds }

// Index answers point lookups over a fixed set of zones. It is immutable and
// safe for concurrent use.
type Index struct {
	byID     map[int]*entry
	children map[int][]*entry
	tree     *rtreego.Rtree
	top      int
}

// NewIndex compiles every zone geometry. Any malformed geometry fails the
// whole index with a MalformedZoneError.
func NewIndex(zones []zone.Zone) (*Index, error) {
	idx := &Index{
		byID:     make(map[int]*entry, len(zones)),
		children: make(map[int][]*entry),
		tree:     rtreego.NewTree(2, 25, 50),
	}
	for _, z := range zones {
		shape, err := geo.Compile(z.Geometry)
		if err != nil {
			return nil, &MalformedZoneError{ZoneID: z.ID, Err: err}
		}
		b := shape.Bound()
		rect, err := rtreego.NewRect(
			rtreego.Point{b.Min.X(), b.Min.Y()},
			[]float64{b.Max.X() - b.Min.X(), b.Max.Y() - b.Min.Y()},
		)
		if err != nil {
			return nil, &MalformedZoneError{ZoneID: z.ID, Err: fmt.Errorf("%w: %v", geo.ErrMalformedGeometry, err)}
		}
		idx.byID[z.ID] = &entry{zone: z, shape: shape, bounds: rect}
	}
	for _, e := range idx.byID {
		if e.zone.RootID == nil {
			idx.tree.Insert(e)
			idx.top++
			continue
		}
		idx.children[*e.zone.RootID] = append(idx.children[*e.zone.RootID], e)
	}
	for _, kids := range idx.children {
		sortEntries(kids)
	}
	return idx, nil
}

func sortEntries(es []*entry) {
	sort.Slice(es, func(i, j int) bool { return es[i].zone.ID < es[j].zone.ID })
}

func (idx *Index) Len() int { return len(idx.byID) }

// Zone returns the indexed zone with the given id.
func (idx *Index) Zone(id int) (zone.Zone, bool) {
	e, ok := idx.byID[id]
	if !ok {
		return zone.Zone{}, false
	}
	return e.zone, true
}

// Locate returns the child zone containing p, or its top-level zone when no
// child does. Points on an edge count as inside.
func (idx *Index) Locate(p geo.Point) (zone.Zone, error) {
	z, _, err := idx.Resolve(p)
	return z, err
}

// Resolve is Locate that also returns the top-level zone the result belongs
// to. For a point in no child zone both values are the same zone.
func (idx *Index) Resolve(p geo.Point) (zone.Zone, zone.Zone, error) {
	city, ok := idx.topLevel(p)
	if !ok {
		return zone.Zone{}, zone.Zone{}, ports.ErrNotFound
	}
	for _, child := range idx.children[city.zone.ID] {
		if child.shape.Contains(p) {
			return child.zone, city.zone, nil
		}
	}
	return city.zone, city.zone, nil
}

func (idx *Index) topLevel(p geo.Point) (*entry, bool) {
	if idx.top == 0 {
		return nil, false
	}
	hits := idx.tree.SearchIntersect(rtreego.Point{p.X, p.Y}.ToRect(0.01))
	candidates := make([]*entry, 0, len(hits))
	for _, h := range hits {
		candidates = append(candidates, h.(*entry))
	}
	sortEntries(candidates)
	for _, c := range candidates {
		if c.shape.Contains(p) {
			return c, true
		}
	}
	return nil, false
}
