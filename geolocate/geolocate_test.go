package geolocate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/phanxgames/meridian"
)

var fallback = meridian.LngLat{Lng: -77.03, Lat: 38.9}

func TestIPLocatorSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success", "lat": 38.9325, "lon": -77.0312}`))
	}))
	defer srv.Close()

	l := &IPLocator{URL: srv.URL, Fallback: fallback}
	res := l.Locate(context.Background())
	if res.Err != "" {
		t.Fatalf("unexpected error %q", res.Err)
	}
	if res.LngLat != (meridian.LngLat{Lng: -77.0312, Lat: 38.9325}) {
		t.Errorf("position = %v", res.LngLat)
	}
}

func TestIPLocatorServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "fail", "message": "private range"}`))
	}))
	defer srv.Close()

	l := &IPLocator{URL: srv.URL, Fallback: fallback}
	res := l.Locate(context.Background())
	if res.Err == "" || !strings.Contains(res.Err, "private range") {
		t.Errorf("err = %q, want the service message", res.Err)
	}
	if res.LngLat != fallback {
		t.Errorf("position = %v, want the fallback", res.LngLat)
	}
}

func TestIPLocatorNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	l := &IPLocator{URL: srv.URL, Fallback: fallback}
	res := l.Locate(context.Background())
	if res.Err == "" {
		t.Error("no error for a 429 response")
	}
	if res.LngLat != fallback {
		t.Errorf("position = %v, want the fallback", res.LngLat)
	}
}

func TestIPLocatorBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	l := &IPLocator{URL: srv.URL, Fallback: fallback}
	res := l.Locate(context.Background())
	if res.Err == "" {
		t.Error("no error for a non-JSON body")
	}
	if res.LngLat != fallback {
		t.Errorf("position = %v, want the fallback", res.LngLat)
	}
}

func TestIPLocatorTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	l := &IPLocator{URL: srv.URL, Fallback: fallback, Timeout: 20 * time.Millisecond}
	res := l.Locate(context.Background())
	if res.Err == "" {
		t.Error("no error after the timeout")
	}
	if res.LngLat != fallback {
		t.Errorf("position = %v, want the fallback", res.LngLat)
	}
}

func TestFixed(t *testing.T) {
	want := Result{LngLat: meridian.LngLat{Lng: 1, Lat: 2}, Err: "canned"}
	if got := (Fixed{Result: want}).Locate(context.Background()); got != want {
		t.Errorf("Locate = %v, want %v", got, want)
	}
}
