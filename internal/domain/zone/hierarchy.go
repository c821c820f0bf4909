package zone

import (
	"sort"

	"mapapylife/internal/domain/geo"
)

const DefaultThreshold = 0.5

// Hierarchy configures root assignment. Cities are exempt from it; Exceptions
// map a zone id straight to its root id.
type Hierarchy struct {
	CityIDs    map[int]struct{}
	Exceptions map[int]int
	Threshold  float64
}

func (h Hierarchy) IsCity(id int) bool {
	_, ok := h.CityIDs[id]
	return ok
}

func (h Hierarchy) threshold() float64 {
	if h.Threshold <= 0 {
		return DefaultThreshold
	}
	return h.Threshold
}

// CityIDs returns the ids of the zones whose name is one of names.
func CityIDs(zones []Zone, names []string) map[int]struct{} {
	want := make(map[string]struct{}, len(names))
	for _, n := range names {
		want[n] = struct{}{}
	}
	ids := make(map[int]struct{})
	for _, z := range zones {
		if _, ok := want[z.Name]; ok {
			ids[z.ID] = struct{}{}
		}
	}
	return ids
}

// AmbiguousParent records a zone that overlapped more than one city above the
// threshold. Chosen is the lowest city id.
type AmbiguousParent struct {
	ZoneID     int
	Chosen     int
	Candidates []int
}

type Resolution struct {
	Ambiguous  []AmbiguousParent
	Orphans    []int
	Exceptions []int
}

// AssignRoots sets RootID on every zone in place. A candidate takes the first
// city, by ascending id, that covers more than the threshold share of its area.
func AssignRoots(zones []Zone, h Hierarchy) (Resolution, error) {
	byID := make(map[int]int, len(zones))
	for i, z := range zones {
		byID[z.ID] = i
	}
	exceptionIDs := make([]int, 0, len(h.Exceptions))
	for zid := range h.Exceptions {
		exceptionIDs = append(exceptionIDs, zid)
	}
	sort.Ints(exceptionIDs)
	for _, zid := range exceptionIDs {
		root := h.Exceptions[zid]
		if h.IsCity(zid) {
			continue
		}
		if _, ok := byID[root]; !ok || !h.IsCity(root) {
			return Resolution{}, &InvalidExceptionError{ZoneID: zid, RootID: root}
		}
	}

	order := make([]int, len(zones))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return zones[order[a]].ID < zones[order[b]].ID })

	var cities []int
	for _, i := range order {
		if h.IsCity(zones[i].ID) {
			cities = append(cities, i)
		}
	}

	var res Resolution
	limit := h.threshold()
	for _, i := range order {
		z := &zones[i]
		if h.IsCity(z.ID) {
			z.RootID = nil
			continue
		}
		if root, ok := h.Exceptions[z.ID]; ok {
			r := root
			z.RootID = &r
			res.Exceptions = append(res.Exceptions, z.ID)
			continue
		}

		z.RootID = nil
		area := z.Geometry.Area()
		if area <= 0 {
			res.Orphans = append(res.Orphans, z.ID)
			continue
		}
		var matches []int
		for _, ci := range cities {
			c := zones[ci]
			inter := geo.IntersectionArea(z.Geometry, c.Geometry)
			if inter > 0 && inter/area > limit {
				matches = append(matches, c.ID)
			}
		}
		if len(matches) == 0 {
			res.Orphans = append(res.Orphans, z.ID)
			continue
		}
		root := matches[0]
		z.RootID = &root
		if len(matches) > 1 {
			res.Ambiguous = append(res.Ambiguous, AmbiguousParent{ZoneID: z.ID, Chosen: root, Candidates: matches})
		}
	}
	return res, nil
}
