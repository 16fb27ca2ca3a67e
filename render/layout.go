// render/layout.go
package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/waozixyz/kryon-sdui/schema"
	"github.com/waozixyz/kryon-sdui/style"
)

// Measurer reports the drawn width of text in a font.
type Measurer interface {
	MeasureText(text string, font style.Font) float32
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string, font style.Font) float32

func (f MeasureFunc) MeasureText(text string, font style.Font) float32 { return f(text, font) }

// cellAdvance is the average glyph advance as a fraction of the font size.
const cellAdvance = 0.55

// CellMeasurer estimates widths from terminal cell counts, so wide runes take
// two cells. It needs no window and is the default.
type CellMeasurer struct{}

func (CellMeasurer) MeasureText(text string, font style.Font) float32 {
	return float32(runewidth.StringWidth(text)) * font.Size * cellAdvance
}

// PerformLayout positions root in the given rectangle and lays out the tree
// below it. Children of an element are placed along its axis inside its
// inset, separated by its spacing, and fill the cross axis. Hidden elements
// take no space.
func PerformLayout(root *Element, x, y, w, h float32, m Measurer) {
	if root == nil {
		return
	}
	if m == nil {
		m = CellMeasurer{}
	}
	setFrame(root, x, y, w, h)
	layoutChildren(root, m)
}

func setFrame(el *Element, x, y, w, h float32) {
	el.RenderX, el.RenderY = x, y
	el.RenderW, el.RenderH = max(0, w), max(0, h)
}

func layoutChildren(el *Element, m Measurer) {
	if len(el.Children) == 0 {
		return
	}
	inX, inY := el.RenderX+el.Inset, el.RenderY+el.Inset
	inW, inH := max(0, el.RenderW-2*el.Inset), max(0, el.RenderH-2*el.Inset)

	visible := make([]*Element, 0, len(el.Children))
	for _, c := range el.Children {
		if c.IsVisible {
			visible = append(visible, c)
			continue
		}
		setFrame(c, inX, inY, 0, 0)
		collapse(c)
	}
	if len(visible) == 0 {
		return
	}

	gaps := el.Spacing * float32(len(visible)-1)
	if el.Axis == AxisHorizontal {
		cw := max(0, (inW-gaps)/float32(len(visible)))
		cx := inX
		for _, c := range visible {
			setFrame(c, cx, inY, cw, inH)
			layoutChildren(c, m)
			cx += cw + el.Spacing
		}
		return
	}
	cy := inY
	for _, c := range visible {
		ch := Measure(c, inW, m)
		setFrame(c, inX, cy, inW, ch)
		layoutChildren(c, m)
		cy += ch + el.Spacing
	}
}

// collapse zeroes the frames of a hidden subtree.
func collapse(el *Element) {
	for _, c := range el.Children {
		setFrame(c, el.RenderX, el.RenderY, 0, 0)
		collapse(c)
	}
}

// Measure returns the height el needs at the given width.
func Measure(el *Element, width float32, m Measurer) float32 {
	if el == nil || !el.IsVisible {
		return 0
	}
	if m == nil {
		m = CellMeasurer{}
	}
	own := intrinsicHeight(el, width, m)
	if len(el.Children) == 0 {
		return own
	}
	inner := max(0, width-2*el.Inset)
	return max(own, 2*el.Inset+childrenExtent(el, inner, m))
}

func intrinsicHeight(el *Element, width float32, m Measurer) float32 {
	switch el.Kind {
	case schema.KindLabel:
		return float32(len(WrapText(el.Text, el.Font, width, m))) * el.Font.LineHeight()
	case schema.KindButton:
		return max(el.MinHeight, el.Font.LineHeight()+style.SpacingMedium)
	case schema.KindImage:
		if el.Image != nil {
			b := el.Image.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 && width > 0 {
				return width * float32(b.Dy()) / float32(b.Dx())
			}
		}
	}
	return el.MinHeight
}

func childrenExtent(el *Element, width float32, m Measurer) float32 {
	var visible []*Element
	for _, c := range el.Children {
		if c.IsVisible {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		return 0
	}
	gaps := el.Spacing * float32(len(visible)-1)
	if el.Axis == AxisHorizontal {
		cw := max(0, (width-gaps)/float32(len(visible)))
		var tallest float32
		for _, c := range visible {
			tallest = max(tallest, Measure(c, cw, m))
		}
		return tallest
	}
	total := gaps
	for _, c := range visible {
		total += Measure(c, width, m)
	}
	return total
}

// WrapText breaks text into lines no wider than width, splitting at spaces
// and at explicit newlines. A word wider than width gets a line of its own.
// Empty text has no lines.
func WrapText(text string, font style.Font, width float32, m Measurer) []string {
	if text == "" {
		return nil
	}
	if m == nil {
		m = CellMeasurer{}
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 || width <= 0 {
			lines = append(lines, para)
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if m.MeasureText(candidate, font) <= width {
				line = candidate
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}
