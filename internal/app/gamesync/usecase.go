package gamesync

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/world"
)

var ErrUnknownJob = errors.New("unknown sync job")

// UseCase pulls records from the game API and upserts the ones that changed.
type UseCase struct {
	API           ports.GameAPI
	Houses        ports.HouseRepository
	Players       ports.PlayerRepository
	Organizations ports.OrganizationRepository
	Locator       ports.ZoneLocator
	Now           func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if !req.Job.Valid() {
		return Response{}, fmt.Errorf("%w: %q", ErrUnknownJob, req.Job)
	}
	start := u.now()
	hlog.CtxInfof(ctx, "job %q started at %s", req.Job, start.Format(time.RFC3339))

	var (
		resp Response
		err  error
	)
	switch req.Job {
	case JobHouses:
		resp, err = u.syncHouses(ctx)
	case JobPlayers:
		resp, err = u.syncPlayers(ctx)
	case JobOrganizations:
		resp, err = u.syncOrganizations(ctx)
	}
	if err != nil {
		return Response{}, err
	}
	resp.Job = req.Job
	resp.Elapsed = u.now().Sub(start)
	hlog.CtxInfof(ctx, "job %q finished in %.2fs: fetched=%d created=%d updated=%d skipped=%d",
		req.Job, resp.Elapsed.Seconds(), resp.Fetched, resp.Created, resp.Updated, resp.Skipped)
	return resp, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func (u UseCase) syncHouses(ctx context.Context) (Response, error) {
	current, err := u.Houses.List(ctx, ports.HouseFilter{})
	if err != nil {
		return Response{}, fmt.Errorf("list houses: %w", err)
	}
	byID := make(map[int]world.House, len(current))
	for _, h := range current {
		byID[h.ID] = h
	}
	players, err := u.Players.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list players: %w", err)
	}
	knownPlayers := make(map[int]bool, len(players))
	for _, p := range players {
		knownPlayers[p.ID] = true
	}
	orgs, err := u.Organizations.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list organizations: %w", err)
	}
	knownOrgs := make(map[int]bool, len(orgs))
	for _, o := range orgs {
		knownOrgs[o.ID] = true
	}

	hlog.CtxInfof(ctx, "pulling houses from API")
	listed, err := u.API.Houses(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("fetch houses: %w", err)
	}

	resp := Response{Fetched: len(listed)}
	now := u.now()
	var updates []world.House
	for _, ah := range listed {
		if ah.OwnerID != nil && !knownPlayers[*ah.OwnerID] {
			if err := u.pullPlayer(ctx, *ah.OwnerID); err != nil {
				return Response{}, err
			}
			knownPlayers[*ah.OwnerID] = true
		}
		if ah.OrganizationID != nil && !knownOrgs[*ah.OrganizationID] {
			if err := u.pullOrganization(ctx, *ah.OrganizationID); err != nil {
				return Response{}, err
			}
			knownOrgs[*ah.OrganizationID] = true
		}

		old, exists := byID[ah.ID]
		next := world.House{
			ID:             ah.ID,
			X:              old.X,
			Y:              old.Y,
			Name:           ah.Title,
			LocationID:     old.LocationID,
			OwnerID:        ah.OwnerID,
			OrganizationID: ah.OrganizationID,
			Price:          ah.Price,
			Expires:        ah.Expires,
			LastUpdate:     now,
		}
		if exists {
			if old.SameListing(next) {
				continue
			}
			updates = append(updates, next)
			resp.Updated++
			continue
		}

		hlog.CtxWarnf(ctx, "house %q with ID %d does not exist in database", ah.Title, ah.ID)
		z, err := u.Locator.Locate(ctx, ah.Position)
		if errors.Is(err, ports.ErrNotFound) {
			hlog.CtxWarnf(ctx, "house %d at (%v, %v) is outside every zone, skipping", ah.ID, ah.Position.X, ah.Position.Y)
			resp.Skipped++
			continue
		}
		if err != nil {
			return Response{}, fmt.Errorf("locate house %d: %w", ah.ID, err)
		}
		next.X, next.Y, next.LocationID = ah.Position.X, ah.Position.Y, z.ID
		updates = append(updates, next)
		resp.Created++
	}

	if err := u.logAndUpsert(ctx, "house", len(updates), func() error { return u.Houses.Upsert(ctx, updates) }); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (u UseCase) pullPlayer(ctx context.Context, id int) error {
	hlog.CtxInfof(ctx, "player with ID %d not found in database, pulling from API", id)
	p, err := u.API.Player(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch player %d: %w", id, err)
	}
	if err := u.Players.Upsert(ctx, []world.Player{p}); err != nil {
		return fmt.Errorf("store player %d: %w", id, err)
	}
	return nil
}

func (u UseCase) pullOrganization(ctx context.Context, id int) error {
	hlog.CtxInfof(ctx, "organization with ID %d not found in database, pulling from API", id)
	o, err := u.API.Organization(ctx, id)
	if err != nil {
		return fmt.Errorf("fetch organization %d: %w", id, err)
	}
	if err := u.Organizations.Upsert(ctx, []world.Organization{o}); err != nil {
		return fmt.Errorf("store organization %d: %w", id, err)
	}
	return nil
}

func (u UseCase) syncPlayers(ctx context.Context) (Response, error) {
	current, err := u.Players.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list players: %w", err)
	}
	byID := make(map[int]world.Player, len(current))
	for _, p := range current {
		byID[p.ID] = p
	}
	hlog.CtxInfof(ctx, "pulling players from API")
	listed, err := u.API.Players(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("fetch players: %w", err)
	}
	resp := Response{Fetched: len(listed)}
	var updates []world.Player
	for _, p := range listed {
		old, ok := byID[p.ID]
		switch {
		case !ok:
			hlog.CtxWarnf(ctx, "player %q with ID %d does not exist in database", p.Login, p.ID)
			resp.Created++
		case old.Same(p):
			continue
		default:
			resp.Updated++
		}
		updates = append(updates, p)
	}
	if err := u.logAndUpsert(ctx, "player", len(updates), func() error { return u.Players.Upsert(ctx, updates) }); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (u UseCase) syncOrganizations(ctx context.Context) (Response, error) {
	current, err := u.Organizations.List(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("list organizations: %w", err)
	}
	byID := make(map[int]world.Organization, len(current))
	for _, o := range current {
		byID[o.ID] = o
	}
	hlog.CtxInfof(ctx, "pulling organizations from API")
	listed, err := u.API.Organizations(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("fetch organizations: %w", err)
	}
	resp := Response{Fetched: len(listed)}
	var updates []world.Organization
	for _, o := range listed {
		old, ok := byID[o.ID]
		switch {
		case !ok:
			hlog.CtxWarnf(ctx, "organization %q with ID %d does not exist in database", o.Name, o.ID)
			resp.Created++
		case old.Same(o):
			continue
		default:
			resp.Updated++
		}
		updates = append(updates, o)
	}
	if err := u.logAndUpsert(ctx, "organization", len(updates), func() error { return u.Organizations.Upsert(ctx, updates) }); err != nil {
		return Response{}, err
	}
	return resp, nil
}

func (u UseCase) logAndUpsert(ctx context.Context, kind string, n int, upsert func() error) error {
	if n == 0 {
		hlog.CtxInfof(ctx, "everything up-to-date, nothing to do")
		return nil
	}
	hlog.CtxInfof(ctx, "found %d %s(s) to be updated", n, kind)
	if err := upsert(); err != nil {
		return fmt.Errorf("upsert %ss: %w", kind, err)
	}
	return nil
}
