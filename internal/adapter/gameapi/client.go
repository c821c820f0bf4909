package gameapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"

	"mapapylife/internal/adapter/fetch"
	"mapapylife/internal/app/ports"
	"mapapylife/internal/domain/geo"
	"mapapylife/internal/domain/world"
)

const DefaultBaseURL = "https://api.pylife.pl/v1"

// Client talks to the Pylife game API. House positions are already in
// internal coordinates.
type Client struct {
	BaseURL   string
	AuthToken string
	HTTP      *client.Client
}

var _ ports.GameAPI = (*Client)(nil)

func New(baseURL, token string, timeout time.Duration) (*Client, error) {
	c, err := fetch.NewClient(timeout)
	if err != nil {
		return nil, err
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), AuthToken: token, HTTP: c}, nil
}

type houseJSON struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Position struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"position"`
	Owner        *int       `json:"owner"`
	Organization *int       `json:"organization"`
	Price        *float64   `json:"price"`
	Expires      *time.Time `json:"expires"`
}

type playerJSON struct {
	ID         int        `json:"id"`
	Login      string     `json:"login"`
	Premium    *time.Time `json:"premium"`
	Registered time.Time  `json:"registered"`
	LastOnline time.Time  `json:"last_online"`
}

type organizationJSON struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Tag        string    `json:"tag"`
	Logo       *string   `json:"logo"`
	Registered time.Time `json:"registered"`
}

func (c *Client) Houses(ctx context.Context) ([]ports.APIHouse, error) {
	var rows []houseJSON
	if err := c.get(ctx, "/houses", &rows); err != nil {
		return nil, err
	}
	out := make([]ports.APIHouse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ports.APIHouse{
			ID:             r.ID,
			Title:          r.Title,
			Position:       geo.Point{X: r.Position.X, Y: r.Position.Y},
			OwnerID:        r.Owner,
			OrganizationID: r.Organization,
			Price:          r.Price,
			Expires:        r.Expires,
		})
	}
	return out, nil
}

func (c *Client) Players(ctx context.Context) ([]world.Player, error) {
	var rows []playerJSON
	if err := c.get(ctx, "/players", &rows); err != nil {
		return nil, err
	}
	out := make([]world.Player, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.player())
	}
	return out, nil
}

func (c *Client) Player(ctx context.Context, id int) (world.Player, error) {
	var row playerJSON
	if err := c.get(ctx, "/players/"+strconv.Itoa(id), &row); err != nil {
		return world.Player{}, err
	}
	return row.player(), nil
}

func (c *Client) Organizations(ctx context.Context) ([]world.Organization, error) {
	var rows []organizationJSON
	if err := c.get(ctx, "/organizations", &rows); err != nil {
		return nil, err
	}
	out := make([]world.Organization, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.organization())
	}
	return out, nil
}

func (c *Client) Organization(ctx context.Context, id int) (world.Organization, error) {
	var row organizationJSON
	if err := c.get(ctx, "/organizations/"+strconv.Itoa(id), &row); err != nil {
		return world.Organization{}, err
	}
	return row.organization(), nil
}

func (r playerJSON) player() world.Player {
	return world.Player{ID: r.ID, Login: r.Login, Premium: r.Premium, Registered: r.Registered, LastOnline: r.LastOnline}
}

func (r organizationJSON) organization() world.Organization {
	return world.Organization{ID: r.ID, Name: r.Name, Tag: r.Tag, LogoURL: r.Logo, Registered: r.Registered}
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	headers := map[string]string{"Accept": "application/json"}
	if c.AuthToken != "" {
		headers["Authorization"] = "Bearer " + c.AuthToken
	}
	body, err := fetch.Get(ctx, c.HTTP, c.BaseURL+path, headers)
	if err != nil {
		var status *fetch.StatusError
		if errors.As(err, &status) && status.Code == http.StatusNotFound {
			return fmt.Errorf("game api %s: %w", path, ports.ErrNotFound)
		}
		return fmt.Errorf("game api %s: %w", path, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode game api %s: %w", path, err)
	}
	return nil
}
