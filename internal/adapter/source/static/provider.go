package staticsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"
	"mapapylife/internal/domain/zone"
)

const (
	DefaultCatalogFile = "zonenames.txt"
	DefaultBlipsFile   = "blips.txt"
)

var (
	ErrInvalidDataPath = errors.New("invalid data filepath")
	ErrMalformedLine   = errors.New("malformed data line")
)

// Provider reads the zone catalog and map blips from a data directory.
type Provider struct {
	Root        string
	CatalogFile string
	BlipsFile   string
}

var _ ports.BlipSource = Provider{}

func (p Provider) Catalog(_ context.Context) ([]zone.Entry, error) {
	b, err := p.read(p.CatalogFile, DefaultCatalogFile)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(b)
}

func (p Provider) Blips(_ context.Context) ([]world.Blip, error) {
	b, err := p.read(p.BlipsFile, DefaultBlipsFile)
	if err != nil {
		return nil, err
	}
	return ParseBlips(b)
}

func (p Provider) read(name, fallback string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		name = fallback
	}
	path, err := secureJoin(p.Root, name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// ParseCatalog parses "id,name,description" lines. The description keeps any
// further commas.
func ParseCatalog(b []byte) ([]zone.Entry, error) {
	var out []zone.Entry
	err := eachLine(b, func(n int, line string) error {
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			return lineError(n, line)
		}
		id, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil || id <= 0 {
			return lineError(n, line)
		}
		name := strings.TrimSpace(parts[1])
		if name == "" {
			return lineError(n, line)
		}
		out = append(out, zone.Entry{ID: id, Name: name, Description: strings.TrimSpace(parts[2])})
		return nil
	})
	return out, err
}

// ParseBlips parses "x,y,name,icon" lines.
func ParseBlips(b []byte) ([]world.Blip, error) {
	var out []world.Blip
	err := eachLine(b, func(n int, line string) error {
		parts := strings.Split(line, ",")
		if len(parts) != 4 {
			return lineError(n, line)
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errX != nil || errY != nil {
			return lineError(n, line)
		}
		blip := world.Blip{X: x, Y: y, Name: strings.TrimSpace(parts[2]), Icon: strings.TrimSpace(parts[3])}
		if err := blip.Validate(); err != nil {
			return lineError(n, line)
		}
		out = append(out, blip)
		return nil
	})
	return out, err
}

// eachLine skips blank lines and '#' comments.
func eachLine(b []byte, fn func(n int, line string) error) error {
	sc := bufio.NewScanner(bytes.NewReader(b))
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	return sc.Err()
}

func lineError(n int, line string) error {
	return fmt.Errorf("%w: line %d: %q", ErrMalformedLine, n, line)
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidDataPath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidDataPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidDataPath
	}
	return target, nil
}
