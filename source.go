package meridian

// Source holds named line geometry that layers render. The source object is
// created once per id and persists until removed; updating a route means
// replacing the source data in place, never tearing the source down.
type Source struct {
	id   string
	data []LngLat
	rev  int
	m    *Map
}

// NewSource creates an empty detached source. The id must be unique on the
// map the source is added to; geometry arrives through SetData.
func NewSource(id string) *Source {
	return &Source{id: id}
}

// ID returns the source id.
func (s *Source) ID() string { return s.id }

// SetData replaces the source geometry. Layers referencing the source pick
// up the new coordinates on the next frame. An empty or single-point slice
// clears the geometry without removing the source.
func (s *Source) SetData(coords []LngLat) {
	s.data = s.data[:0]
	for _, ll := range coords {
		s.data = append(s.data, LngLat{Lng: wrapLng(ll.Lng), Lat: clampLat(ll.Lat)})
	}
	s.rev++
}

// Data returns a copy of the source geometry.
func (s *Source) Data() []LngLat {
	out := make([]LngLat, len(s.data))
	copy(out, s.data)
	return out
}

// Revision reports how many times SetData has replaced the geometry.
// Render caches key on it.
func (s *Source) Revision() int { return s.rev }
