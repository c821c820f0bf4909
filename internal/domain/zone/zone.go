package zone

import (
	"errors"
	"fmt"
	"sort"

	"mapapylife/internal/domain/geo"
)

// Zone is a named region of the map. Cities and orphans have a nil RootID.
type Zone struct {
	ID          int
	Name        string
	Description string
	Geometry    geo.Geometry
	RootID      *int
}

func (z Zone) IsTopLevel() bool { return z.RootID == nil }

// Entry is one row of the zone catalog (zonenames.txt).
type Entry struct {
	ID          int
	Name        string
	Description string
}

// Fragment is one raw rectangle of the MTA zone table.
type Fragment struct {
	Zone string
	Rect geo.Rect
}

var (
	ErrMissingGeometry  = errors.New("zone has no geometry")
	ErrInvalidException = errors.New("invalid hierarchy exception")
	ErrDuplicateEntry   = errors.New("duplicate catalog entry")
)

type MissingGeometryError struct {
	Zone string
}

func (e *MissingGeometryError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMissingGeometry, e.Zone)
}

func (e *MissingGeometryError) Unwrap() error {
	return ErrMissingGeometry
}

type InvalidExceptionError struct {
	ZoneID int
	RootID int
}

func (e *InvalidExceptionError) Error() string {
	return fmt.Sprintf("%s: zone %d -> %d is not a city", ErrInvalidException, e.ZoneID, e.RootID)
}

func (e *InvalidExceptionError) Unwrap() error {
	return ErrInvalidException
}

// Assemble pairs catalog entries with built geometries, sorted by id.
// Entries without a geometry fail with MissingGeometryError.
func Assemble(catalog []Entry, geoms map[string]geo.Geometry) ([]Zone, error) {
	seen := make(map[int]struct{}, len(catalog))
	out := make([]Zone, 0, len(catalog))
	for _, e := range catalog {
		if _, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateEntry, e.ID)
		}
		seen[e.ID] = struct{}{}
		g, ok := geoms[e.Name]
		if !ok || g.IsZero() {
			return nil, &MissingGeometryError{Zone: e.Name}
		}
		out = append(out, Zone{ID: e.ID, Name: e.Name, Description: e.Description, Geometry: g})
	}
	SortByID(out)
	return out, nil
}

// SortByID orders zones by ascending id in place.
func SortByID(zones []Zone) {
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
}
