package meridian

import "math"

// Web Mercator projection. World coordinates are pixels on a square world
// plane whose side is worldSize(zoom): at zoom 0 the whole world spans one
// 512px tile, and each zoom level doubles it.

const (
	tileSize = 512.0

	// maxLatitude is the Web Mercator latitude limit. Latitudes beyond it
	// are clamped before projection.
	maxLatitude = 85.051129

	minZoom = 0.0
	maxZoom = 22.0
)

// worldSize returns the side length in pixels of the world plane at the
// given zoom level.
func worldSize(zoom float64) float64 {
	return tileSize * math.Exp2(zoom)
}

// project converts a geographic coordinate to world-plane pixels at the
// given zoom level.
func project(ll LngLat, zoom float64) Point {
	size := worldSize(zoom)
	lat := clampLat(ll.Lat)
	x := (ll.Lng + 180) / 360 * size
	y := (1 - math.Log(math.Tan(math.Pi/4+lat*math.Pi/360))/math.Pi) / 2 * size
	return Point{X: x, Y: y}
}

// unproject converts world-plane pixels back to a geographic coordinate at
// the given zoom level.
func unproject(p Point, zoom float64) LngLat {
	size := worldSize(zoom)
	lng := p.X/size*360 - 180
	lat := math.Atan(math.Sinh(math.Pi*(1-2*p.Y/size))) * 180 / math.Pi
	return LngLat{Lng: lng, Lat: lat}
}

// clampLat restricts a latitude to the projectable Web Mercator range.
func clampLat(lat float64) float64 {
	if lat > maxLatitude {
		return maxLatitude
	}
	if lat < -maxLatitude {
		return -maxLatitude
	}
	return lat
}

// wrapLng normalizes a longitude into [-180, 180).
func wrapLng(lng float64) float64 {
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}

// clampZoom restricts a zoom level to the supported range.
func clampZoom(zoom float64) float64 {
	if zoom < minZoom {
		return minZoom
	}
	if zoom > maxZoom {
		return maxZoom
	}
	return zoom
}

// metersPerPixel returns the ground resolution at the given latitude and
// zoom level. Used by the debug overlay's scale readout.
func metersPerPixel(lat float64, zoom float64) float64 {
	const earthCircumference = 40075016.686
	return earthCircumference * math.Cos(clampLat(lat)*math.Pi/180) / worldSize(zoom)
}
