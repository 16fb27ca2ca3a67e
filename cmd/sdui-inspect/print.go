// cmd/sdui-inspect/print.go
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/waozixyz/kryon-sdui/render"
)

var (
	kindStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	frameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	warnStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

type printer struct {
	w      io.Writer
	styled bool
	err    error
}

func newPrinter(w io.Writer, styled bool) *printer {
	return &printer{w: w, styled: styled}
}

func (p *printer) paint(st lipgloss.Style, s string) string {
	if !p.styled {
		return s
	}
	return st.Render(s)
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// tree writes one line per element, indented by depth.
func (p *printer) tree(root *render.Element) {
	if root == nil {
		p.printf("%s\n", p.paint(warnStyle, "(empty document)"))
		return
	}
	p.element(root, 0)
}

func (p *printer) element(el *render.Element, depth int) {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	if el.Placeholder {
		b.WriteString(p.paint(warnStyle, "?"+el.SourceName))
	} else {
		b.WriteString(p.paint(kindStyle, el.Kind.String()))
	}
	b.WriteString(" ")
	b.WriteString(p.paint(keyStyle, el.Key))
	b.WriteString(" ")
	b.WriteString(p.paint(frameStyle, fmt.Sprintf("[%g,%g %gx%g]", el.RenderX, el.RenderY, el.RenderW, el.RenderH)))
	if text, isPlaceholder := el.DisplayText(); text != "" {
		if isPlaceholder {
			text = "(" + text + ")"
		}
		b.WriteString(" ")
		b.WriteString(p.paint(textStyle, fmt.Sprintf("%q", text)))
	}
	if flags := elementFlags(el); len(flags) > 0 {
		b.WriteString(" ")
		b.WriteString(p.paint(flagStyle, strings.Join(flags, ",")))
	}
	p.printf("%s\n", b.String())
	for _, c := range el.Children {
		p.element(c, depth+1)
	}
}

func elementFlags(el *render.Element) []string {
	var flags []string
	if !el.IsVisible {
		flags = append(flags, "hidden")
	}
	if el.Disabled {
		flags = append(flags, "disabled")
	}
	if el.IsInteractive {
		flags = append(flags, "interactive")
	}
	if el.Implicit {
		flags = append(flags, "implicit")
	}
	if el.Secure {
		flags = append(flags, "secure")
	}
	if el.Action != nil {
		flags = append(flags, "action="+el.Action.Context)
	}
	if el.ImageSource != "" {
		flags = append(flags, "image="+el.ImageSource)
	}
	return flags
}

// summary writes element counts and the keys handlers can bind to.
func (p *printer) summary(root *render.Element, m *render.Mapper) {
	p.printf("\n%s\n", p.paint(headerStyle, "Summary"))
	p.printf("elements: %d\n", root.Count())
	keys := make([]string, 0)
	for _, el := range render.Interactive(root) {
		keys = append(keys, el.Key)
	}
	p.printf("interactive: %s\n", strings.Join(keys, " "))
	p.printf("handlers: %d\n", m.Handlers().Len())
}
