package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

//go:embed hierarchy.yaml
var defaultHierarchy []byte

// Hierarchy is the city table used when assigning zones to cities.
type Hierarchy struct {
	CityNames  []string    `yaml:"city_names"`
	Exceptions map[int]int `yaml:"exceptions"`
	Threshold  float64     `yaml:"threshold"`
}

// LoadHierarchy reads path, or the built-in table when path is empty.
func LoadHierarchy(path string) (Hierarchy, error) {
	b := defaultHierarchy
	if strings.TrimSpace(path) != "" {
		var err error
		if b, err = os.ReadFile(path); err != nil {
			return Hierarchy{}, fmt.Errorf("read hierarchy config: %w", err)
		}
	}
	return ParseHierarchy(b)
}

func ParseHierarchy(b []byte) (Hierarchy, error) {
	var h Hierarchy
	if err := yaml.Unmarshal(b, &h); err != nil {
		return Hierarchy{}, fmt.Errorf("%w: hierarchy: %v", ErrInvalidConfig, err)
	}
	if err := h.Validate(); err != nil {
		return Hierarchy{}, err
	}
	return h, nil
}

func (h Hierarchy) Validate() error {
	if len(h.CityNames) == 0 {
		return fmt.Errorf("%w: hierarchy needs at least one city", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(h.CityNames))
	for _, name := range h.CityNames {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty city name", ErrInvalidConfig)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate city %q", ErrInvalidConfig, name)
		}
		seen[name] = struct{}{}
	}
	if h.Threshold < 0 || h.Threshold >= 1 {
		return fmt.Errorf("%w: threshold %v outside [0, 1)", ErrInvalidConfig, h.Threshold)
	}
	return nil
}
