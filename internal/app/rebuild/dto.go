package rebuild

import (
	"mapapylife/internal/app/locate"
	"mapapylife/internal/domain/zone"
)

// Hierarchy names the city zones and the fixed root overrides.
type Hierarchy struct {
	CityNames  []string
	Exceptions map[int]int
	Threshold  float64
}

type Request struct {
	SkipBlips bool
}

type Response struct {
	RunID      string
	Zones      []zone.Zone
	Resolution zone.Resolution
	Blips      int
	Index      *locate.Index
}
