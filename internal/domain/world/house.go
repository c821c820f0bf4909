package world

import (
	"errors"
	"time"
)

var ErrInvalidRecord = errors.New("invalid world record")

// House is a purchasable property. X and Y are internal game coordinates.
type House struct {
	ID             int
	X              float64
	Y              float64
	Name           string
	LocationID     int
	OwnerID        *int
	OrganizationID *int
	Price          *float64
	Expires        *time.Time
	LastUpdate     time.Time
}

func (h House) Validate() error {
	if h.ID <= 0 || h.Name == "" {
		return ErrInvalidRecord
	}
	return nil
}

// SameListing reports whether the fields the game API owns are unchanged.
// Position and location are set once when the house is first stored.
func (h House) SameListing(o House) bool {
	return h.Name == o.Name &&
		equalPtr(h.OwnerID, o.OwnerID) &&
		equalPtr(h.OrganizationID, o.OrganizationID) &&
		equalPtr(h.Price, o.Price) &&
		equalTime(h.Expires, o.Expires)
}

// Blip is a map marker loaded from blips.txt.
type Blip struct {
	ID   int
	X    float64
	Y    float64
	Name string
	Icon string
}

func (b Blip) Validate() error {
	if b.Name == "" || b.Icon == "" {
		return ErrInvalidRecord
	}
	return nil
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
