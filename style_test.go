package meridian

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"#ff0000", Color{1, 0, 0, 1}},
		{"#00ff00", Color{0, 1, 0, 1}},
		{"#0000FF", Color{0, 0, 1, 1}},
		{"#ffffff80", Color{1, 1, 1, 128.0 / 255}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorErrors(t *testing.T) {
	bad := []string{"", "fff", "#", "#ff", "#fffff", "#ggg", "#zzzzzz", "#fffffffff"}
	for _, in := range bad {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) = nil error", in)
		}
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{1, 0, 0, 1}, "#ff0000"},
		{Color{0, 0, 0, 1}, "#000000"},
		{Color{1, 1, 1, 0.5}, "#ffffff80"},
	}
	for _, tt := range tests {
		if got := tt.c.Hex(); got != tt.want {
			t.Errorf("Hex() = %q, want %q", got, tt.want)
		}
		parsed, err := ParseColor(tt.want)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.want, err)
		}
		if parsed.Hex() != tt.want {
			t.Errorf("round trip of %q = %q", tt.want, parsed.Hex())
		}
	}
}

func TestLoadStylePartialInheritsFromLight(t *testing.T) {
	s, err := LoadStyle([]byte(`{"name": "custom", "background": "#102030"}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "custom" {
		t.Errorf("Name = %q, want %q", s.Name, "custom")
	}
	want, _ := ParseColor("#102030")
	if s.Background != want {
		t.Errorf("Background = %v, want %v", s.Background, want)
	}
	// Unspecified fields fall back to the light style.
	if s.Marker != StyleLight.Marker {
		t.Errorf("Marker = %v, want StyleLight's %v", s.Marker, StyleLight.Marker)
	}
	if s.PopupBackground != StyleLight.PopupBackground {
		t.Error("PopupBackground did not inherit from StyleLight")
	}
}

func TestLoadStyleRequiresName(t *testing.T) {
	if _, err := LoadStyle([]byte(`{"background": "#102030"}`)); err == nil {
		t.Error("LoadStyle without a name = nil error")
	}
}

func TestLoadStyleRejectsBadInput(t *testing.T) {
	if _, err := LoadStyle([]byte(`{not json`)); err == nil {
		t.Error("LoadStyle with invalid JSON = nil error")
	}
	if _, err := LoadStyle([]byte(`{"name": "x", "background": "red"}`)); err == nil {
		t.Error("LoadStyle with a non-hex color = nil error")
	}
}

func TestLoadStyleDoesNotMutateBuiltins(t *testing.T) {
	before := *StyleLight
	_, err := LoadStyle([]byte(`{"name": "custom", "marker": "#ff0000"}`))
	if err != nil {
		t.Fatal(err)
	}
	if *StyleLight != before {
		t.Error("LoadStyle mutated StyleLight")
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	got := c.toRGBA()
	if got.R != 128 || got.G != 64 || got.B != 0 || got.A != 128 {
		t.Errorf("toRGBA = %v, want premultiplied {128 64 0 128}", got)
	}
}

func TestColorWithAlpha(t *testing.T) {
	c := Color{1, 1, 1, 0.8}
	got := c.withAlpha(0.5)
	assertNear(t, "A", got.A, 0.4, 1e-9)
	if got.R != 1 {
		t.Error("withAlpha changed a channel other than alpha")
	}
}
