package memory

import (
	"maps"
	"slices"
	"sync"

	"mapapylife/internal/domain/world"
	"mapapylife/internal/domain/zone"
)

type Store struct {
	mu      sync.RWMutex
	zones   map[int]zone.Zone
	houses  map[int]world.House
	blips   []world.Blip
	players map[int]world.Player
	orgs    map[int]world.Organization
}

func NewStore() *Store {
	return &Store{
		zones:   make(map[int]zone.Zone),
		houses:  make(map[int]world.House),
		players: make(map[int]world.Player),
		orgs:    make(map[int]world.Organization),
	}
}

type snapshot struct {
	zones   map[int]zone.Zone
	houses  map[int]world.House
	blips   []world.Blip
	players map[int]world.Player
	orgs    map[int]world.Organization
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		zones:   maps.Clone(s.zones),
		houses:  maps.Clone(s.houses),
		blips:   slices.Clone(s.blips),
		players: maps.Clone(s.players),
		orgs:    maps.Clone(s.orgs),
	}
}

func (s *Store) restore(snap snapshot) {
	s.zones = snap.zones
	s.houses = snap.houses
	s.blips = snap.blips
	s.players = snap.players
	s.orgs = snap.orgs
}

func (s *Store) SeedZones(zones ...zone.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, z := range zones {
		s.zones[z.ID] = cloneZone(z)
	}
}

func (s *Store) SeedPlayers(players ...world.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		s.players[p.ID] = p
	}
}

func (s *Store) SeedOrganizations(orgs ...world.Organization) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orgs {
		s.orgs[o.ID] = o
	}
}

func (s *Store) SeedHouses(houses ...world.House) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range houses {
		s.houses[h.ID] = h
	}
}

func cloneZone(z zone.Zone) zone.Zone {
	if z.RootID != nil {
		root := *z.RootID
		z.RootID = &root
	}
	return z
}
