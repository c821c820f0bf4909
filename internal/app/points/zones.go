package points

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
)

type ZonesUseCase struct {
	Zones ports.ZoneRepository
}

func (u ZonesUseCase) Execute(ctx context.Context, req ZonesRequest) (ZonesResponse, error) {
	zones, err := u.Zones.ListAll(ctx)
	if err != nil {
		return ZonesResponse{}, err
	}
	data := make([]ZoneView, 0, len(zones))
	for _, z := range zones {
		g := z.Geometry
		if !req.Raw {
			g = g.Map(geo.VertexToDisplay)
		}
		data = append(data, ZoneView{ID: z.ID, Name: z.Name, Description: z.Description, Points: g})
	}
	return ZonesResponse{Data: data}, nil
}

// GeoJSONUseCase exports every zone as a feature in internal coordinates.
type GeoJSONUseCase struct {
	Zones ports.ZoneRepository
}

func (u GeoJSONUseCase) Execute(ctx context.Context) (GeoJSONResponse, error) {
	zones, err := u.Zones.ListAll(ctx)
	if err != nil {
		return GeoJSONResponse{}, err
	}
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		if z.Geometry.IsZero() {
			continue
		}
		f := geojson.NewFeature(z.Geometry.Orb())
		f.ID = z.ID
		f.Properties["name"] = z.Name
		f.Properties["description"] = z.Description
		if z.RootID != nil {
			f.Properties["root_id"] = *z.RootID
		} else {
			f.Properties["root_id"] = nil
		}
		fc.Append(f)
	}
	return GeoJSONResponse{Collection: fc}, nil
}
