package zone

import (
	"errors"
	"testing"

	"mapapylife/internal/domain/geo"
)

func rect(x1, y1, x2, y2 int) geo.Geometry {
	return geo.Simple(geo.Ring{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}, {X: x1, Y: y2}})
}

func cities(ids ...int) map[int]struct{} {
	out := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func rootOf(t *testing.T, zones []Zone, id int) *int {
	t.Helper()
	for _, z := range zones {
		if z.ID == id {
			return z.RootID
		}
	}
	t.Fatalf("zone %d not found", id)
	return nil
}

func TestAssignRootsMajorityOverlap(t *testing.T) {
	cases := []struct {
		name  string
		split int
		want  int
	}{
		{"sixty percent in first city", 6, 1},
		{"forty percent in first city", 4, 2},
	}
	for _, tc := range cases {
		zones := []Zone{
			{ID: 10, Name: "Z", Geometry: rect(0, 0, 10, 10)},
			{ID: 2, Name: "B", Geometry: rect(tc.split, -50, 100, 50)},
			{ID: 1, Name: "A", Geometry: rect(-100, -50, tc.split, 50)},
		}
		res, err := AssignRoots(zones, Hierarchy{CityIDs: cities(1, 2)})
		if err != nil {
			t.Fatalf("%s: assign: %v", tc.name, err)
		}
		got := rootOf(t, zones, 10)
		if got == nil || *got != tc.want {
			t.Fatalf("%s: expected root %d, got %v", tc.name, tc.want, got)
		}
		if len(res.Ambiguous) != 0 || len(res.Orphans) != 0 {
			t.Fatalf("%s: unexpected resolution %+v", tc.name, res)
		}
	}
}

func TestAssignRootsHalfIsNotEnough(t *testing.T) {
	zones := []Zone{
		{ID: 1, Name: "A", Geometry: rect(-100, -50, 5, 50)},
		{ID: 2, Name: "B", Geometry: rect(5, -50, 100, 50)},
		{ID: 3, Name: "Z", Geometry: rect(0, 0, 10, 10)},
	}
	res, err := AssignRoots(zones, Hierarchy{CityIDs: cities(1, 2), Threshold: DefaultThreshold})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if rootOf(t, zones, 3) != nil {
		t.Fatalf("expected exact half split to leave zone orphaned")
	}
	if len(res.Orphans) != 1 || res.Orphans[0] != 3 {
		t.Fatalf("expected orphan 3, got %v", res.Orphans)
	}
}

func TestAssignRootsAmbiguousPicksLowestCity(t *testing.T) {
	zones := []Zone{
		{ID: 7, Name: "B", Geometry: rect(-100, -100, 100, 100)},
		{ID: 4, Name: "A", Geometry: rect(-50, -50, 50, 50)},
		{ID: 20, Name: "Z", Geometry: rect(0, 0, 10, 10)},
	}
	res, err := AssignRoots(zones, Hierarchy{CityIDs: cities(4, 7)})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got := rootOf(t, zones, 20); got == nil || *got != 4 {
		t.Fatalf("expected root 4, got %v", got)
	}
	if len(res.Ambiguous) != 1 {
		t.Fatalf("expected one ambiguous zone, got %+v", res.Ambiguous)
	}
	amb := res.Ambiguous[0]
	if amb.ZoneID != 20 || amb.Chosen != 4 || len(amb.Candidates) != 2 || amb.Candidates[1] != 7 {
		t.Fatalf("unexpected ambiguity report %+v", amb)
	}
}

func TestAssignRootsExceptionTakesPrecedence(t *testing.T) {
	zones := []Zone{
		{ID: 90, Name: "Los Santos", Geometry: rect(1000, 1000, 2000, 2000)},
		{ID: 5, Name: "Red County", Geometry: rect(-100, -100, 100, 100)},
		{ID: 102, Name: "Z", Geometry: rect(0, 0, 10, 10)},
	}
	h := Hierarchy{CityIDs: cities(5, 90), Exceptions: map[int]int{102: 90}}
	res, err := AssignRoots(zones, h)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if got := rootOf(t, zones, 102); got == nil || *got != 90 {
		t.Fatalf("expected exception root 90, got %v", got)
	}
	if len(res.Exceptions) != 1 || res.Exceptions[0] != 102 {
		t.Fatalf("expected exception to be reported, got %v", res.Exceptions)
	}
}

func TestAssignRootsInvalidException(t *testing.T) {
	zones := []Zone{
		{ID: 1, Name: "A", Geometry: rect(0, 0, 10, 10)},
		{ID: 2, Name: "Z", Geometry: rect(0, 0, 1, 1)},
		{ID: 3, Name: "Y", Geometry: rect(0, 0, 1, 1)},
	}
	_, err := AssignRoots(zones, Hierarchy{CityIDs: cities(1), Exceptions: map[int]int{2: 3}})
	var inv *InvalidExceptionError
	if !errors.As(err, &inv) || inv.ZoneID != 2 || inv.RootID != 3 {
		t.Fatalf("expected invalid exception 2->3, got %v", err)
	}
	if !errors.Is(err, ErrInvalidException) {
		t.Fatalf("expected ErrInvalidException, got %v", err)
	}
}

func TestAssignRootsDepthAtMostTwo(t *testing.T) {
	preset := 99
	zones := []Zone{
		{ID: 1, Name: "City", Geometry: rect(0, 0, 100, 100), RootID: &preset},
		{ID: 2, Name: "Big", Geometry: rect(0, 0, 60, 60)},
		{ID: 3, Name: "Small", Geometry: rect(10, 10, 20, 20)},
		{ID: 4, Name: "Far", Geometry: rect(500, 500, 510, 510)},
	}
	res, err := AssignRoots(zones, Hierarchy{CityIDs: cities(1)})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	byID := make(map[int]Zone)
	for _, z := range zones {
		byID[z.ID] = z
	}
	for _, z := range zones {
		if z.RootID == nil {
			continue
		}
		root, ok := byID[*z.RootID]
		if !ok || root.RootID != nil {
			t.Fatalf("zone %d has root %d which is not top level", z.ID, *z.RootID)
		}
	}
	if byID[1].RootID != nil {
		t.Fatalf("expected city root to be cleared")
	}
	if got := byID[3].RootID; got == nil || *got != 1 {
		t.Fatalf("expected small zone under the city, got %v", got)
	}
	if len(res.Orphans) != 1 || res.Orphans[0] != 4 {
		t.Fatalf("expected far zone to be orphaned, got %v", res.Orphans)
	}
}

func TestAssignRootsIsDeterministic(t *testing.T) {
	build := func() []Zone {
		return []Zone{
			{ID: 3, Name: "C", Geometry: rect(0, 0, 50, 50)},
			{ID: 1, Name: "A", Geometry: rect(0, 0, 50, 50)},
			{ID: 8, Name: "Z", Geometry: rect(1, 1, 2, 2)},
		}
	}
	h := Hierarchy{CityIDs: cities(1, 3)}
	a, b := build(), build()
	if _, err := AssignRoots(a, h); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if _, err := AssignRoots(b, h); err != nil {
		t.Fatalf("assign: %v", err)
	}
	ra, rb := rootOf(t, a, 8), rootOf(t, b, 8)
	if ra == nil || rb == nil || *ra != *rb || *ra != 1 {
		t.Fatalf("expected stable root 1, got %v and %v", ra, rb)
	}
}

func TestCityIDs(t *testing.T) {
	zones := []Zone{{ID: 1, Name: "Los Santos"}, {ID: 2, Name: "Idlewood"}, {ID: 3, Name: "San Fierro"}}
	ids := CityIDs(zones, []string{"Los Santos", "San Fierro", "Nowhere"})
	if len(ids) != 2 {
		t.Fatalf("expected 2 city ids, got %v", ids)
	}
	if _, ok := ids[2]; ok {
		t.Fatalf("did not expect Idlewood to be a city")
	}
}
