package world

import "time"

type Player struct {
	ID         int
	Login      string
	Premium    *time.Time
	Registered time.Time
	LastOnline time.Time
}

func (p Player) Validate() error {
	if p.ID <= 0 || p.Login == "" || len(p.Login) > 22 {
		return ErrInvalidRecord
	}
	return nil
}

func (p Player) Same(o Player) bool {
	return p.Login == o.Login &&
		equalTime(p.Premium, o.Premium) &&
		p.Registered.Equal(o.Registered) &&
		p.LastOnline.Equal(o.LastOnline)
}

type Organization struct {
	ID         int
	Name       string
	Tag        string
	LogoURL    *string
	Registered time.Time
}

func (o Organization) Validate() error {
	if o.ID <= 0 || o.Name == "" {
		return ErrInvalidRecord
	}
	return nil
}

func (o Organization) Same(x Organization) bool {
	return o.Name == x.Name &&
		o.Tag == x.Tag &&
		equalPtr(o.LogoURL, x.LogoURL) &&
		o.Registered.Equal(x.Registered)
}
