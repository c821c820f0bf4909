package mta

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mapapylife/internal/adapter/fetch"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/zone"
)

const DefaultURL = "https://github.com/multitheftauto/mtasa-blue/raw/master/Shared/mods/deathmatch/logic/CZoneNames.cpp"

// {x1, y1, z1, x2, y2, z2, "Name"}; the z values are ignored.
var zoneRow = regexp.MustCompile(`\{(-?\d+), (-?\d+), (?:-?\d+), (-?\d+), (-?\d+), (?:-?\d+), "(.*?)"\}`)

var ErrNoFragments = errors.New("no zone fragments found")

type CatalogReader interface {
	Catalog(ctx context.Context) ([]zone.Entry, error)
}

// Source reads zone rectangles from the MTA CZoneNames.cpp table. File takes
// precedence over URL when both are set.
type Source struct {
	Catalogs CatalogReader
	URL      string
	File     string
	Client   *client.Client
}

var _ ports.ZoneSource = (*Source)(nil)

func (s *Source) Catalog(ctx context.Context) ([]zone.Entry, error) {
	return s.Catalogs.Catalog(ctx)
}

// Fragments returns every rectangle whose name is in the catalog. Rectangles
// naming an unknown zone are skipped.
func (s *Source) Fragments(ctx context.Context) ([]zone.Fragment, error) {
	raw, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	frags, err := ParseFragments(raw)
	if err != nil {
		return nil, err
	}
	entries, err := s.Catalogs.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		known[e.Name] = struct{}{}
	}

	out := frags[:0]
	warned := map[string]struct{}{}
	for _, f := range frags {
		if _, ok := known[f.Zone]; !ok {
			if _, seen := warned[f.Zone]; !seen {
				warned[f.Zone] = struct{}{}
				hlog.CtxWarnf(ctx, "mta: skipping rectangles of unknown zone %q", f.Zone)
			}
			continue
		}
		out = append(out, f)
	}
	hlog.CtxInfof(ctx, "mta: loaded %d zone rectangles", len(out))
	return out, nil
}

func (s *Source) load(ctx context.Context) ([]byte, error) {
	if s.File != "" {
		return os.ReadFile(s.File)
	}
	url := s.URL
	if url == "" {
		url = DefaultURL
	}
	c := s.Client
	if c == nil {
		var err error
		if c, err = fetch.NewClient(0); err != nil {
			return nil, err
		}
		s.Client = c
	}
	hlog.CtxInfof(ctx, "mta: downloading zone table from %s", url)
	return fetch.Get(ctx, c, url, nil)
}

// ParseFragments extracts the first zone row of each line, in file order.
func ParseFragments(src []byte) ([]zone.Fragment, error) {
	var out []zone.Fragment
	for _, line := range bytes.Split(src, []byte("\n")) {
		m := zoneRow.FindSubmatch(line)
		if m == nil {
			continue
		}
		var c [4]int
		for i := range c {
			v, err := strconv.Atoi(string(m[i+1]))
			if err != nil {
				return nil, fmt.Errorf("parse zone row %q: %w", line, err)
			}
			c[i] = v
		}
		out = append(out, zone.Fragment{Zone: string(m[5]), Rect: geo.NewRect(c[0], c[1], c[2], c[3])})
	}
	if len(out) == 0 {
		return nil, ErrNoFragments
	}
	return out, nil
}
