package mta

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/zone"
)

const sample = `// Zones
SZone CZoneNames::ZoneInfo[] = {
    {-2353, 2275, 0, -2153, 2475, 200, "Bayside Marina"},
    {1812, -1852, -89, 1971, -1742, 110, "Idlewood"}, {9, 9, 9, 9, 9, 9, "Ignored"}
    {1951, -1742, -89, 2124, -1602, 110, "Idlewood"},
    {44, 44, 0, 55, 55, 0, "Atlantis"},
};
`

type catalog []zone.Entry

func (c catalog) Catalog(context.Context) ([]zone.Entry, error) { return c, nil }

func TestParseFragments(t *testing.T) {
	frags, err := ParseFragments([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(frags) != 4 {
		t.Fatalf("expected 4 fragments, got %d: %+v", len(frags), frags)
	}
	if frags[0].Zone != "Bayside Marina" || frags[0].Rect != geo.NewRect(-2353, 2275, -2153, 2475) {
		t.Fatalf("unexpected first fragment %+v", frags[0])
	}
	if frags[1].Zone != "Idlewood" || frags[1].Rect != (geo.Rect{MinX: 1812, MinY: -1852, MaxX: 1971, MaxY: -1742}) {
		t.Fatalf("unexpected second fragment %+v", frags[1])
	}
	if _, err := ParseFragments([]byte("nothing here")); !errors.Is(err, ErrNoFragments) {
		t.Fatalf("expected ErrNoFragments, got %v", err)
	}
}

func TestSource_FileSkipsUnknownZones(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CZoneNames.cpp")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	s := &Source{
		Catalogs: catalog{{ID: 1, Name: "Bayside Marina"}, {ID: 2, Name: "Idlewood"}},
		File:     path,
	}
	frags, err := s.Fragments(context.Background())
	if err != nil {
		t.Fatalf("fragments: %v", err)
	}
	if len(frags) != 3 {
		t.Fatalf("expected 3 known fragments, got %+v", frags)
	}
	for _, f := range frags {
		if f.Zone == "Atlantis" {
			t.Fatalf("expected unknown zone to be skipped")
		}
	}
	entries, err := s.Catalog(context.Background())
	if err != nil || len(entries) != 2 {
		t.Fatalf("unexpected catalog %+v err=%v", entries, err)
	}
}

func TestSource_DownloadsTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sample))
	}))
	defer srv.Close()

	s := &Source{Catalogs: catalog{{ID: 2, Name: "Idlewood"}}, URL: srv.URL}
	frags, err := s.Fragments(context.Background())
	if err != nil {
		t.Fatalf("fragments: %v", err)
	}
	if len(frags) != 2 {
		t.Fatalf("expected 2 Idlewood fragments, got %+v", frags)
	}
}
