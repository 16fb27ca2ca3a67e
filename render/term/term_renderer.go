// render/term/term_renderer.go

// Package term draws element trees in a terminal using tcell. Layout runs in
// the same logical units as the windowed backend; each terminal cell covers a
// fixed logical area.
package term

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/waozixyz/kryon-sdui/render"
	"github.com/waozixyz/kryon-sdui/schema"
	"github.com/waozixyz/kryon-sdui/style"
)

// Logical size of one terminal cell.
const (
	CellWidth  float32 = 9
	CellHeight float32 = 22
)

// TermRenderer implements render.Renderer on a tcell screen.
type TermRenderer struct {
	screen tcell.Screen
	events chan tcell.Event
	focus  render.Focus
	config render.WindowConfig
	quit   bool

	// buttons held at the last mouse event; a tap needs a fresh press.
	buttons tcell.ButtonMask
}

// Option configures a TermRenderer.
type Option func(*TermRenderer)

// WithScreen draws on s instead of the controlling terminal.
func WithScreen(s tcell.Screen) Option {
	return func(r *TermRenderer) { r.screen = s }
}

// NewTermRenderer returns a renderer for the controlling terminal.
func NewTermRenderer(opts ...Option) *TermRenderer {
	r := &TermRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Measurer measures text in cells scaled to logical units.
func Measurer() render.Measurer {
	return render.MeasureFunc(func(text string, _ style.Font) float32 {
		return float32(runewidth.StringWidth(text)) * CellWidth
	})
}

func (r *TermRenderer) Init(config render.WindowConfig) error {
	r.config = config
	if r.screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("TermRenderer Init: %w", err)
		}
		r.screen = s
	}
	if err := r.screen.Init(); err != nil {
		return fmt.Errorf("TermRenderer Init: %w", err)
	}
	r.screen.EnableMouse()
	r.screen.SetStyle(tcell.StyleDefault.Background(toColor(config.DefaultBg)).Foreground(toColor(style.Ink)))

	r.events = make(chan tcell.Event, 100)
	go func(s tcell.Screen, out chan<- tcell.Event) {
		defer close(out)
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			out <- ev
		}
	}(r.screen, r.events)

	cols, rows := r.screen.Size()
	log.Printf("TermRenderer Init: %dx%d cells. Title: '%s'.", cols, rows, config.Title)
	return nil
}

func (r *TermRenderer) BeginFrame() {
	r.screen.Clear()
	r.screen.HideCursor()
}

func (r *TermRenderer) EndFrame() {
	r.screen.Show()
}

func (r *TermRenderer) ShouldClose() bool { return r.quit }

func (r *TermRenderer) Cleanup() {
	if r.screen != nil {
		r.screen.Fini()
	}
}

// RenderFrame lays out root over the whole screen and draws it.
func (r *TermRenderer) RenderFrame(root *render.Element) {
	if root == nil {
		return
	}
	render.PollImages(root)
	cols, rows := r.screen.Size()
	render.PerformLayout(root, 0, 0, float32(cols)*CellWidth, float32(rows)*CellHeight, Measurer())
	r.draw(root)
}

// PollEvents drains pending terminal events without blocking.
func (r *TermRenderer) PollEvents(root *render.Element) {
	for {
		select {
		case ev, ok := <-r.events:
			if !ok {
				r.quit = true
				return
			}
			r.handleEvent(root, ev)
		default:
			return
		}
	}
}

func (r *TermRenderer) handleEvent(root *render.Element, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		r.handleKey(root, ev)
	case *tcell.EventMouse:
		prev := r.buttons
		r.buttons = ev.Buttons()
		if r.buttons&tcell.ButtonPrimary == 0 || prev&tcell.ButtonPrimary != 0 {
			return
		}
		x, y := ev.Position()
		hit := render.HitTest(root, (float32(x)+0.5)*CellWidth, (float32(y)+0.5)*CellHeight)
		r.focus.Set(hit)
		if hit != nil && hit.Kind == schema.KindButton {
			hit.Tap()
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
}

func (r *TermRenderer) handleKey(root *render.Element, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		r.quit = true
	case tcell.KeyTab:
		r.focus.Next(root)
	case tcell.KeyBacktab:
		r.focus.Prev(root)
	case tcell.KeyEnter:
		r.focus.Activate()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		r.focus.Backspace()
	case tcell.KeyRune:
		r.focus.Type(ev.Rune())
	}
}

// cellRect converts an element frame to cell coordinates. Elements with any
// height get at least one row.
func cellRect(el *render.Element) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(float64(el.RenderX / CellWidth)))
	y0 = int(math.Round(float64(el.RenderY / CellHeight)))
	x1 = int(math.Round(float64((el.RenderX + el.RenderW) / CellWidth)))
	y1 = int(math.Round(float64((el.RenderY + el.RenderH) / CellHeight)))
	if y1 == y0 && el.RenderH > 0 {
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func (r *TermRenderer) draw(el *render.Element) {
	if !el.IsVisible {
		return
	}
	x0, y0, x1, y1 := cellRect(el)
	if x1 > x0 && y1 > y0 {
		r.drawElement(el, x0, y0, x1, y1)
	}
	for _, c := range el.Children {
		r.draw(c)
	}
}

func (r *TermRenderer) drawElement(el *render.Element, x0, y0, x1, y1 int) {
	base := r.baseStyle(el)
	if el.BgColor.A > 0 {
		r.fill(x0, y0, x1, y1, base)
	}
	mid := y0 + (y1-y0-1)/2

	switch {
	case el.Placeholder:
		r.text(x0, y0, x1, "?"+el.SourceName, base.Foreground(toColor(style.Error)))

	case el.Kind == schema.KindCard:
		if el.BorderWidth > 0 && x1-x0 >= 2 && y1-y0 >= 2 {
			r.box(x0, y0, x1, y1, base.Foreground(toColor(el.BorderColor)))
		}

	case el.Kind == schema.KindLabel:
		st := base.Foreground(toColor(el.FgColor)).Bold(el.Font.Bold)
		lines := render.WrapText(el.Text, el.Font, float32(x1-x0)*CellWidth, Measurer())
		for i, line := range lines {
			if y0+i >= y1 {
				break
			}
			r.text(x0, y0+i, x1, line, st)
		}

	case el.Kind == schema.KindButton:
		label := "[ " + el.Text + " ]"
		st := base.Foreground(toColor(el.FgColor)).Bold(true).Reverse(el.Focused)
		x := x0 + (x1-x0-runewidth.StringWidth(label))/2
		r.text(max(x0, x), mid, x1, label, st)

	case el.Kind == schema.KindTextInput:
		text, isPlaceholder := el.DisplayText()
		fg := el.FgColor
		if isPlaceholder {
			fg = style.Secondary
		}
		st := base.Foreground(toColor(fg)).Underline(true)
		r.fill(x0, mid, x1, mid+1, st)
		end := r.text(x0+1, mid, x1, text, st)
		if el.Focused {
			if isPlaceholder {
				end = x0 + 1
			}
			r.screen.ShowCursor(end, mid)
		}

	case el.Kind == schema.KindImage:
		label := "[image]"
		switch {
		case el.Image != nil:
			b := el.Image.Bounds()
			label = fmt.Sprintf("[image %dx%d]", b.Dx(), b.Dy())
		case el.ImageErr != nil:
			label = "[image unavailable]"
		}
		x := x0 + (x1-x0-len(label))/2
		r.text(max(x0, x), mid, x1, label, base.Foreground(toColor(style.Secondary)))
	}
}

func (r *TermRenderer) baseStyle(el *render.Element) tcell.Style {
	st := tcell.StyleDefault.Background(toColor(r.config.DefaultBg))
	for e := el; e != nil; e = e.Parent {
		if e.BgColor.A > 0 {
			st = st.Background(toColor(e.BgColor))
			break
		}
	}
	return st.Dim(el.EffectiveOpacity() < 1)
}

func (r *TermRenderer) fill(x0, y0, x1, y1 int, st tcell.Style) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

// text draws s from x up to maxX and returns the column after the last
// drawn rune.
func (r *TermRenderer) text(x, y, maxX int, s string, st tcell.Style) int {
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		r.screen.SetContent(x, y, ch, nil, st)
		x += w
	}
	return x
}

func (r *TermRenderer) box(x0, y0, x1, y1 int, st tcell.Style) {
	for x := x0 + 1; x < x1-1; x++ {
		r.screen.SetContent(x, y0, '─', nil, st)
		r.screen.SetContent(x, y1-1, '─', nil, st)
	}
	for y := y0 + 1; y < y1-1; y++ {
		r.screen.SetContent(x0, y, '│', nil, st)
		r.screen.SetContent(x1-1, y, '│', nil, st)
	}
	r.screen.SetContent(x0, y0, '╭', nil, st)
	r.screen.SetContent(x1-1, y0, '╮', nil, st)
	r.screen.SetContent(x0, y1-1, '╰', nil, st)
	r.screen.SetContent(x1-1, y1-1, '╯', nil, st)
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
