package meridian

import "testing"

func TestSourceSetDataNormalizesAndBumpsRevision(t *testing.T) {
	s := NewSource("r")
	if s.ID() != "r" {
		t.Errorf("ID = %q, want %q", s.ID(), "r")
	}
	if s.Revision() != 0 {
		t.Errorf("Revision = %d, want 0", s.Revision())
	}

	s.SetData([]LngLat{{190, 90}, {0, 0}})
	if s.Revision() != 1 {
		t.Errorf("Revision = %d, want 1", s.Revision())
	}
	data := s.Data()
	if len(data) != 2 {
		t.Fatalf("len(Data) = %d, want 2", len(data))
	}
	assertNear(t, "Lng", data[0].Lng, -170, 1e-9)
	assertNear(t, "Lat", data[0].Lat, maxLatitude, 1e-9)

	s.SetData(nil)
	if s.Revision() != 2 {
		t.Errorf("Revision = %d after clear, want 2", s.Revision())
	}
	if len(s.Data()) != 0 {
		t.Error("Data not cleared")
	}
}

func TestSourceDataReturnsCopy(t *testing.T) {
	s := NewSource("r")
	s.SetData([]LngLat{{1, 1}, {2, 2}})
	out := s.Data()
	out[0] = LngLat{99, 99}
	if s.Data()[0] == (LngLat{99, 99}) {
		t.Error("Data() exposes internal storage")
	}
}
