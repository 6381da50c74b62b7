// Package feed is the client for the popmap event REST API.
//
// The backend serializes coordinates as decimal strings ("38.9325") and
// timestamps as RFC 3339; Event mirrors those wire shapes exactly and
// offers typed accessors on top.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/phanxgames/meridian"
)

// Event is one event record. MapData returns a lightweight subset of its
// fields (id, business name, title, coordinates, times); the full record
// comes from Events and Active.
type Event struct {
	ID           int    `json:"id"`
	Business     int    `json:"business,omitempty"`
	BusinessName string `json:"business_name"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Address      string `json:"address,omitempty"`
	Category     string `json:"category,omitempty"`

	// Latitude and Longitude are decimal strings as serialized by the
	// backend; use LngLat for the parsed coordinate.
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`

	StartDatetime time.Time `json:"start_datetime"`
	EndDatetime   time.Time `json:"end_datetime"`

	Status string `json:"status,omitempty"`
}

// Event status values as the backend reports them.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// LngLat parses the record's decimal-string coordinates.
func (e Event) LngLat() (meridian.LngLat, error) {
	lat, err := strconv.ParseFloat(e.Latitude, 64)
	if err != nil {
		return meridian.LngLat{}, fmt.Errorf("event %d: parse latitude %q: %w", e.ID, e.Latitude, err)
	}
	lng, err := strconv.ParseFloat(e.Longitude, 64)
	if err != nil {
		return meridian.LngLat{}, fmt.Errorf("event %d: parse longitude %q: %w", e.ID, e.Longitude, err)
	}
	return meridian.LngLat{Lng: lng, Lat: lat}, nil
}

// Active reports whether the event is approved and not yet over at t.
func (e Event) Active(t time.Time) bool {
	return e.Status == StatusApproved && !e.EndDatetime.Before(t)
}

// Business is one business record.
type Business struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	ContactPhone string    `json:"contact_phone,omitempty"`
	Website      string    `json:"website,omitempty"`
	IsVerified   bool      `json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

// Client talks to the popmap API. The zero value is not usable; set
// BaseURL.
type Client struct {
	// BaseURL is the API root, e.g. "https://example.com/api".
	BaseURL string
	// HTTPClient is the transport. Nil means http.DefaultClient.
	HTTPClient *http.Client
}

// MapData fetches the lightweight marker records for the map.
func (c *Client) MapData(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := c.get(ctx, "/events/map_data/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Active fetches only active and upcoming events.
func (c *Client) Active(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := c.get(ctx, "/events/active/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Events fetches the full event list.
func (c *Client) Events(ctx context.Context) ([]Event, error) {
	var out []Event
	if err := c.get(ctx, "/events/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Businesses fetches the business list.
func (c *Client) Businesses(ctx context.Context) ([]Business, error) {
	var out []Business
	if err := c.get(ctx, "/businesses/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get performs one GET and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	u, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return fmt.Errorf("feed: join %q: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("feed: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("feed: GET %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("feed: GET %s: %s", u, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("feed: read %s: %w", u, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("feed: decode %s: %w", u, err)
	}
	return nil
}
