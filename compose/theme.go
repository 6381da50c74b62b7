package compose

import "github.com/phanxgames/meridian"

// Scheme is a resolved presentation scheme.
type Scheme uint8

const (
	SchemeLight Scheme = iota
	SchemeDark
)

// Mode selects how the scheme is chosen.
type Mode uint8

const (
	// ModeSystem follows the Theme's System hook.
	ModeSystem Mode = iota
	ModeLight
	ModeDark
)

// Theme decides which style a MapView applies. The zero value follows the
// system preference and uses the built-in light and dark styles.
type Theme struct {
	Mode Mode
	// Light and Dark override the built-in style per scheme. Nil keeps
	// meridian.StyleLight / meridian.StyleDark.
	Light *meridian.Style
	Dark  *meridian.Style
	// System reports the platform's preferred scheme for ModeSystem. Nil
	// defaults to SchemeLight.
	System func() Scheme
}

// Resolve returns the scheme the mode selects.
func (t Theme) Resolve() Scheme {
	switch t.Mode {
	case ModeLight:
		return SchemeLight
	case ModeDark:
		return SchemeDark
	}
	if t.System != nil {
		return t.System()
	}
	return SchemeLight
}

// Style returns the style document for the resolved scheme.
func (t Theme) Style() *meridian.Style {
	if t.Resolve() == SchemeDark {
		if t.Dark != nil {
			return t.Dark
		}
		return meridian.StyleDark
	}
	if t.Light != nil {
		return t.Light
	}
	return meridian.StyleLight
}
