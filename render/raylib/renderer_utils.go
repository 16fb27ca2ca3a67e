// render/raylib/renderer_utils.go
package raylib

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/waozixyz/kryon-sdui/render"
	"github.com/waozixyz/kryon-sdui/style"
)

const (
	inputPadding      = 10.0
	roundedSegments   = 8
	minDrawnFontPixel = 1.0
)

var (
	focusColor       = style.Primary
	placeholderColor = style.Secondary
)

// toColor converts a palette color to Raylib, applying an opacity.
func toColor(c color.RGBA, alpha float32) rl.Color {
	a := float32(c.A) * alpha
	return rl.NewColor(c.R, c.G, c.B, uint8(math.Round(float64(a))))
}

func measureText(text string, font style.Font) float32 {
	return float32(rl.MeasureText(text, int32(font.Size)))
}

func scaledFontSize(size, scale float32) int32 {
	return int32(math.Max(minDrawnFontPixel, math.Round(float64(size*scale))))
}

// drawText draws single-line text. Raylib's default font has no bold face,
// so bold is faked with a one pixel offset.
func drawText(text string, x, y, fontSize int32, bold bool, c rl.Color) {
	if text == "" {
		return
	}
	rl.DrawText(text, x, y, fontSize, c)
	if bold {
		rl.DrawText(text, x+1, y, fontSize, c)
	}
}

func drawRoundedRect(rec rl.Rectangle, radius float32, c rl.Color) {
	if c.A == 0 || rec.Width <= 0 || rec.Height <= 0 {
		return
	}
	if radius <= 0 {
		rl.DrawRectangleRec(rec, c)
		return
	}
	shortest := math32Min(rec.Width, rec.Height)
	roundness := math32Min(1, 2*radius/shortest)
	rl.DrawRectangleRounded(rec, roundness, roundedSegments, c)
}

func drawBorders(x, y, w, h, top, right, bottom, left int, color rl.Color) {
	if color.A == 0 {
		return
	}
	if top > 0 {
		rl.DrawRectangle(int32(x), int32(y), int32(w), int32(top), color)
	}
	if bottom > 0 {
		rl.DrawRectangle(int32(x), int32(y+h-bottom), int32(w), int32(bottom), color)
	}
	sideY := y + top
	sideH := h - top - bottom
	if sideH > 0 {
		if left > 0 {
			rl.DrawRectangle(int32(x), int32(sideY), int32(left), int32(sideH), color)
		}
		if right > 0 {
			rl.DrawRectangle(int32(x+w-right), int32(sideY), int32(right), int32(sideH), color)
		}
	}
}

func logElementTree(el *render.Element, depth int, prefix string) {
	if el == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	parentKey := "-"
	if el.Parent != nil {
		parentKey = el.Parent.Key
	}

	log.Printf(
		"DEBUG %s%s Key='%s' Name='%s' Kind=%s Implicit:%t Children:%d Parent:%s Vis:%t",
		indent, prefix, el.Key, el.SourceName, el.Kind, el.Implicit, len(el.Children), parentKey, el.IsVisible,
	)

	for i, child := range el.Children {
		logElementTree(child, depth+1, fmt.Sprintf("Child[%d]", i))
	}
}

// --- Math Utilities ---

func math32Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func math32Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
