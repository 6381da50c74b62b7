package meridian

// Palette maps category names to marker dot colors. Lookups are
// case-sensitive; unknown names fall back to the Default color, or the
// style's marker color when Default is unset (zero alpha).
type Palette struct {
	Colors  map[string]Color
	Default Color
}

// Color resolves a category name against the palette. The returned bool
// reports whether the name was found (the fallback is still returned when
// it was not).
func (p Palette) Color(name string) (Color, bool) {
	if c, ok := p.Colors[name]; ok {
		return c, true
	}
	return p.Default, false
}

// CategoryPalette colors markers by the event feed's predefined business
// categories.
var CategoryPalette = Palette{
	Colors: map[string]Color{
		"Matcha":          {0.35, 0.62, 0.30, 1},
		"Coffee":          {0.45, 0.30, 0.20, 1},
		"Baked Goods":     {0.85, 0.60, 0.25, 1},
		"Tea":             {0.70, 0.45, 0.55, 1},
		"Food Truck":      {0.85, 0.35, 0.25, 1},
		"Farmer's Market": {0.30, 0.55, 0.35, 1},
		"Organic":         {0.40, 0.65, 0.45, 1},
		"Artisan":         {0.50, 0.40, 0.70, 1},
	},
	Default: Color{0.20, 0.45, 0.90, 1},
}
