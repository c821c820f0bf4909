package points

import (
	"time"

	"github.com/paulmach/orb/geojson"

	"mapapylife/internal/domain/geo"
)

type ZonesRequest struct {
	Raw bool
}

type ZoneView struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Points      geo.Geometry `json:"points"`
}

type ZonesResponse struct {
	Data []ZoneView `json:"data"`
}

type GeoJSONResponse struct {
	Collection *geojson.FeatureCollection
}

type HousesRequest struct {
	Raw          bool
	UpdatedSince *time.Time
}

type HouseView struct {
	ID         int        `json:"id"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Title      string     `json:"title"`
	Location   string     `json:"location"`
	Owner      *string    `json:"owner"`
	Price      *float64   `json:"price"`
	Expires    *time.Time `json:"expires"`
	LastUpdate time.Time  `json:"last_update"`
}

type HousesResponse struct {
	Data       []HouseView `json:"data"`
	LastUpdate *time.Time  `json:"last_update"`
}

type HouseRequest struct {
	ID int
}

type BlipsRequest struct {
	Raw bool
}

type BlipView struct {
	ID   int     `json:"id"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Name string  `json:"name"`
	Icon string  `json:"icon"`
}

type BlipsResponse struct {
	Data []BlipView `json:"data"`
}
