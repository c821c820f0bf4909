package world

import (
	"testing"
	"time"
)

func TestHouseSameListing(t *testing.T) {
	owner, other := 7, 8
	price := 1500.0
	expires := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	base := House{ID: 1, Name: "Villa", OwnerID: &owner, Price: &price, Expires: &expires}

	same := base
	sameExpires := expires.In(time.FixedZone("CET", 3600))
	same.Expires = &sameExpires
	same.X, same.Y, same.LocationID = 10, 20, 3
	if !base.SameListing(same) {
		t.Fatalf("expected listing to be unchanged")
	}

	changed := base
	changed.OwnerID = &other
	if base.SameListing(changed) {
		t.Fatalf("expected owner change to be detected")
	}

	cleared := base
	cleared.Price = nil
	if base.SameListing(cleared) {
		t.Fatalf("expected cleared price to be detected")
	}
}

func TestRecordValidity(t *testing.T) {
	if err := (House{ID: 1, Name: "Villa"}).Validate(); err != nil {
		t.Fatalf("expected valid house, got %v", err)
	}
	if err := (House{ID: 0, Name: "Villa"}).Validate(); err == nil {
		t.Fatalf("expected invalid house")
	}
	if err := (Blip{Name: "Bank"}).Validate(); err == nil {
		t.Fatalf("expected blip without icon to be invalid")
	}
	if err := (Player{ID: 1, Login: "averyveryverylongplayerlogin"}).Validate(); err == nil {
		t.Fatalf("expected overlong login to be invalid")
	}
}

func TestPlayerAndOrganizationSame(t *testing.T) {
	reg := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	p := Player{ID: 1, Login: "neo", Registered: reg, LastOnline: reg}
	q := p
	q.LastOnline = reg.Add(time.Hour)
	if p.Same(q) {
		t.Fatalf("expected last online change to be detected")
	}

	logo := "https://example.com/logo.png"
	o := Organization{ID: 1, Name: "Org", Tag: "ORG", Registered: reg}
	withLogo := o
	withLogo.LogoURL = &logo
	if o.Same(withLogo) {
		t.Fatalf("expected logo change to be detected")
	}
	if !o.Same(o) {
		t.Fatalf("expected organization to equal itself")
	}
}
