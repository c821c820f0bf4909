package points

import (
	"context"
	"errors"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid points request")

type HousesUseCase struct {
	Houses  ports.HouseRepository
	Zones   ports.ZoneRepository
	Players ports.PlayerRepository
}

func (u HousesUseCase) Execute(ctx context.Context, req HousesRequest) (HousesResponse, error) {
	houses, err := u.Houses.List(ctx, ports.HouseFilter{UpdatedSince: req.UpdatedSince})
	if err != nil {
		return HousesResponse{}, err
	}
	views, err := u.views(ctx, houses, req.Raw)
	if err != nil {
		return HousesResponse{}, err
	}
	resp := HousesResponse{Data: views}
	for _, h := range houses {
		if resp.LastUpdate == nil || h.LastUpdate.After(*resp.LastUpdate) {
			last := h.LastUpdate
			resp.LastUpdate = &last
		}
	}
	return resp, nil
}

// HouseUseCase returns a single house in display coordinates.
type HouseUseCase struct {
	Houses  ports.HouseRepository
	Zones   ports.ZoneRepository
	Players ports.PlayerRepository
}

func (u HouseUseCase) Execute(ctx context.Context, req HouseRequest) (HouseView, error) {
	if req.ID <= 0 {
		return HouseView{}, ErrInvalidRequest
	}
	h, err := u.Houses.GetByID(ctx, req.ID)
	if err != nil {
		return HouseView{}, err
	}
	views, err := HousesUseCase(u).views(ctx, []world.House{h}, false)
	if err != nil {
		return HouseView{}, err
	}
	return views[0], nil
}

func (u HousesUseCase) views(ctx context.Context, houses []world.House, raw bool) ([]HouseView, error) {
	zoneIDs := make([]int, 0, len(houses))
	playerIDs := make([]int, 0, len(houses))
	for _, h := range houses {
		zoneIDs = append(zoneIDs, h.LocationID)
		if h.OwnerID != nil {
			playerIDs = append(playerIDs, *h.OwnerID)
		}
	}

	locations := make(map[int]string)
	if len(zoneIDs) > 0 {
		zones, err := u.Zones.ListByIDs(ctx, unique(zoneIDs))
		if err != nil {
			return nil, err
		}
		for _, z := range zones {
			locations[z.ID] = z.Name
		}
	}
	logins := make(map[int]string)
	if len(playerIDs) > 0 {
		players, err := u.Players.ListByIDs(ctx, unique(playerIDs))
		if err != nil {
			return nil, err
		}
		for _, p := range players {
			logins[p.ID] = p.Login
		}
	}

	out := make([]HouseView, 0, len(houses))
	for _, h := range houses {
		p := geo.Point{X: h.X, Y: h.Y}
		if !raw {
			p = geo.ToDisplay(p)
		}
		v := HouseView{
			ID:         h.ID,
			X:          p.X,
			Y:          p.Y,
			Title:      h.Name,
			Location:   locations[h.LocationID],
			Price:      h.Price,
			Expires:    h.Expires,
			LastUpdate: h.LastUpdate,
		}
		if h.OwnerID != nil {
			if login, ok := logins[*h.OwnerID]; ok {
				v.Owner = &login
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func unique(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
