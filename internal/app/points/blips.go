package points

import (
	"context"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
)

type BlipsUseCase struct {
	Blips ports.BlipRepository
}

func (u BlipsUseCase) Execute(ctx context.Context, req BlipsRequest) (BlipsResponse, error) {
	blips, err := u.Blips.List(ctx)
	if err != nil {
		return BlipsResponse{}, err
	}
	data := make([]BlipView, 0, len(blips))
	for _, b := range blips {
		p := geo.Point{X: b.X, Y: b.Y}
		if !req.Raw {
			p = geo.ToDisplay(p)
		}
		data = append(data, BlipView{ID: b.ID, X: p.X, Y: p.Y, Name: b.Name, Icon: b.Icon})
	}
	return BlipsResponse{Data: data}, nil
}
