// style/tokens.go

// Package style holds the process-wide token tables that turn symbolic style
// names from documents into concrete layout and visual values. Every lookup is
// total: unknown or empty tokens resolve to the documented default.
package style

import (
	"image/color"

	"github.com/waozixyz/kryon-sdui/schema"
)

// Spacing tokens.
const (
	SpacingSmall  float32 = 8
	SpacingMedium float32 = 16
	SpacingLarge  float32 = 24
)

// Fixed metrics shared by the factories and the layout pass.
const (
	MinTapHeight       float32 = 44
	InputHeight        float32 = 40
	ImplicitInset      float32 = SpacingSmall
	CardCornerRadius   float32 = 8
	ControlRadius      float32 = 8
	InputRadius        float32 = 4
	DisabledOpacity    float32 = 0.5
	DefaultImageHeight float32 = 160
	LineHeightFactor   float32 = 1.25
)

// Palette.
var (
	Primary    = color.RGBA{R: 0, G: 122, B: 255, A: 255}
	Secondary  = color.RGBA{R: 142, G: 142, B: 147, A: 255}
	Background = color.RGBA{R: 242, G: 242, B: 247, A: 255}
	Error      = color.RGBA{R: 255, G: 59, B: 48, A: 255}

	White     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Ink       = color.RGBA{R: 28, G: 28, B: 30, A: 255}
	Separator = color.RGBA{R: 209, G: 209, B: 214, A: 255}
	Clear     = color.RGBA{}
)

var spacingTable = map[string]float32{
	"small":  SpacingSmall,
	"medium": SpacingMedium,
	"large":  SpacingLarge,
}

var colorTable = map[string]color.RGBA{
	"primary":    Primary,
	"secondary":  Secondary,
	"background": Background,
	"error":      Error,
}

// Spacing resolves a spacing token; the default is medium.
func Spacing(token string) float32 {
	if v, ok := spacingTable[token]; ok {
		return v
	}
	return SpacingMedium
}

// Color resolves a color token. ok is false for unknown tokens.
func Color(token string) (c color.RGBA, ok bool) {
	c, ok = colorTable[token]
	return c, ok
}

// ColorOr resolves a color token, falling back to def.
func ColorOr(token string, def color.RGBA) color.RGBA {
	if c, ok := colorTable[token]; ok {
		return c
	}
	return def
}

// Resolved is the per-node style derived from content tokens at render time.
type Resolved struct {
	Spacing    float32
	Background color.RGBA
	Font       Font
}

// Resolve derives the spacing, background and font of a node's content.
// The font role is read from Content.Style, which only labels interpret as a
// font role; other kinds get the body font.
func Resolve(c schema.Content) Resolved {
	return Resolved{
		Spacing:    Spacing(c.Spacing),
		Background: ColorOr(c.BackgroundColor, Clear),
		Font:       FontFor(c.Style),
	}
}
