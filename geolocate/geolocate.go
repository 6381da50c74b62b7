// Package geolocate resolves the user's approximate position.
//
// Locators never fail hard: a lookup that errors or times out returns the
// configured fallback coordinate together with a human-readable message in
// Result.Err. Callers branch on Err being empty, not on an error value.
package geolocate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/phanxgames/meridian"
)

// Result is the outcome of a location lookup. LngLat is always usable: the
// resolved position when Err is empty, the locator's fallback otherwise.
type Result struct {
	LngLat meridian.LngLat
	Err    string
}

// Locator resolves a position. Implementations must not block beyond their
// own timeout and must never panic or return a hard failure.
type Locator interface {
	Locate(ctx context.Context) Result
}

// Fixed always returns the same result. Used in tests and for configured
// default locations.
type Fixed struct {
	Result Result
}

// Locate returns the fixed result.
func (f Fixed) Locate(context.Context) Result { return f.Result }

// DefaultEndpoint is the IP geolocation service IPLocator queries when no
// URL is configured. It returns {"lat": .., "lon": ..} JSON.
const DefaultEndpoint = "http://ip-api.com/json/"

const defaultTimeout = 5 * time.Second

// IPLocator queries an IP-geolocation HTTP endpoint. The zero value is not
// usable; set at least Fallback.
type IPLocator struct {
	// URL is the endpoint. Empty means DefaultEndpoint.
	URL string
	// Client is the HTTP client. Nil means http.DefaultClient.
	Client *http.Client
	// Fallback is returned with an error message when the lookup fails.
	Fallback meridian.LngLat
	// Timeout bounds the whole lookup. Zero means 5 seconds.
	Timeout time.Duration
}

type ipResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Locate queries the endpoint. Any failure — transport, non-200 status,
// bad body, service-reported error — yields the fallback coordinate and a
// message, never a hard failure.
func (l *IPLocator) Locate(ctx context.Context) Result {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := l.URL
	if url == "" {
		url = DefaultEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return l.fallback(fmt.Sprintf("locate: %v", err))
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return l.fallback(fmt.Sprintf("locate: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return l.fallback(fmt.Sprintf("locate: %s returned %s", url, resp.Status))
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return l.fallback(fmt.Sprintf("locate: read response: %v", err))
	}
	var ip ipResponse
	if err := json.Unmarshal(body, &ip); err != nil {
		return l.fallback(fmt.Sprintf("locate: parse response: %v", err))
	}
	if ip.Status != "" && ip.Status != "success" {
		msg := ip.Message
		if msg == "" {
			msg = ip.Status
		}
		return l.fallback("locate: " + msg)
	}
	return Result{LngLat: meridian.LngLat{Lng: ip.Lon, Lat: ip.Lat}}
}

func (l *IPLocator) fallback(msg string) Result {
	return Result{LngLat: l.Fallback, Err: msg}
}
