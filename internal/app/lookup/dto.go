package lookup

type Request struct {
	X   float64
	Y   float64
	Raw bool
}

// Response names the zone and its city. A top-level zone has a nil ZoneName
// and its own name as CityName.
type Response struct {
	ZoneID   int     `json:"-"`
	ZoneName *string `json:"zone_name"`
	CityName *string `json:"city_name"`
}
