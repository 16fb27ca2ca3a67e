// render/factories.go
package render

import (
	"context"
	"log"

	"github.com/waozixyz/kryon-sdui/schema"
	"github.com/waozixyz/kryon-sdui/style"
)

// Env is what factories may use besides the node itself.
type Env struct {
	Images ImageLoader
	Logger *log.Logger

	ctx context.Context
}

func (env *Env) context() context.Context {
	if env == nil || env.ctx == nil {
		return context.Background()
	}
	return env.ctx
}

// Factory builds the element for one node kind. rs is the node's resolved
// style; children are the already rendered children, wrapped in an implicit
// stack for kinds that are not containers.
type Factory func(env *Env, n *schema.Node, rs style.Resolved, children []*Element) *Element

// Factories maps every known kind to its factory.
type Factories map[schema.Kind]Factory

// DefaultFactories returns a fresh table with the built-in factory of every
// known kind.
func DefaultFactories() Factories {
	return Factories{
		schema.KindContent:   buildContent,
		schema.KindStack:     buildStack,
		schema.KindLabel:     buildLabel,
		schema.KindButton:    buildButton,
		schema.KindTextInput: buildTextInput,
		schema.KindCard:      buildCard,
		schema.KindImage:     buildImage,
	}
}

// Register replaces the factory used for kind. Unknown kinds always render as
// placeholders and cannot be overridden.
func (f Factories) Register(kind schema.Kind, factory Factory) {
	if kind == schema.KindUnknown || factory == nil {
		log.Printf("WARN Factories.Register: ignoring factory for kind %q", kind)
		return
	}
	if _, exists := f[kind]; exists {
		log.Printf("INFO Factories.Register: overriding factory for %q", kind)
	}
	f[kind] = factory
}

// missing returns the known kinds without a factory.
func (f Factories) missing() []schema.Kind {
	var out []schema.Kind
	for _, k := range schema.Kinds() {
		if f[k] == nil {
			out = append(out, k)
		}
	}
	return out
}

// --- built-in factories ---

func buildContent(_ *Env, n *schema.Node, rs style.Resolved, children []*Element) *Element {
	el := newElement(schema.KindContent, n.Content)
	el.BgColor = rs.Background
	el.Axis = AxisVertical
	el.SetChildren(children)
	return el
}

func buildStack(_ *Env, n *schema.Node, rs style.Resolved, children []*Element) *Element {
	el := newElement(schema.KindStack, n.Content)
	el.BgColor = rs.Background
	el.Axis = ParseAxis(n.Content.Axis)
	el.Spacing = rs.Spacing
	el.SetChildren(children)
	return el
}

func buildLabel(_ *Env, n *schema.Node, rs style.Resolved, children []*Element) *Element {
	el := newElement(schema.KindLabel, n.Content)
	el.Text = n.Content.Text
	el.Font = rs.Font
	el.BgColor = rs.Background
	el.host(children)
	return el
}

func buildButton(_ *Env, n *schema.Node, _ style.Resolved, children []*Element) *Element {
	bs := style.Button(n.Content.Style)
	el := newElement(schema.KindButton, n.Content)
	el.Text = n.Content.Text
	if el.Text == "" {
		el.Text = "Button"
	}
	el.BgColor = bs.Background
	el.FgColor = bs.Foreground
	el.BorderColor = bs.Border
	if bs.Border.A > 0 {
		el.BorderWidth = 1
	}
	el.CornerRadius = style.ControlRadius
	el.MinHeight = style.MinTapHeight
	el.TextAlign = AlignCenter
	el.IsInteractive = true
	el.host(children)
	return el
}

func buildTextInput(_ *Env, n *schema.Node, _ style.Resolved, children []*Element) *Element {
	is := style.Input(n.Content.Style)
	el := newElement(schema.KindTextInput, n.Content)
	el.Text = n.Content.Text
	el.PlaceholderText = n.Content.Placeholder
	el.Secure = is.Secure
	el.BgColor = style.White
	el.BorderColor = is.Border
	el.BorderWidth = is.BorderWidth
	el.CornerRadius = style.InputRadius
	el.MinHeight = style.InputHeight
	el.IsInteractive = true
	el.host(children)
	return el
}

func buildCard(_ *Env, n *schema.Node, _ style.Resolved, children []*Element) *Element {
	cs := style.Card(n.Content.Style)
	el := newElement(schema.KindCard, n.Content)
	el.BgColor = cs.Background
	el.BorderColor = cs.Border
	el.BorderWidth = cs.BorderWidth
	el.CornerRadius = style.CardCornerRadius
	el.Opacity = cs.Opacity
	el.Disabled = cs.Disabled
	el.host(children)
	return el
}

func buildImage(env *Env, n *schema.Node, rs style.Resolved, children []*Element) *Element {
	el := newElement(schema.KindImage, n.Content)
	el.ImageSource = n.Content.Image
	el.BgColor = style.ColorOr(n.Content.BackgroundColor, style.Background)
	el.MinHeight = style.DefaultImageHeight
	el.host(children)
	if env != nil && env.Images != nil && el.ImageSource != "" {
		el.Task = StartImageTask(env.context(), env.Images, el.ImageSource)
	}
	return el
}

// placeholder stands in for a node whose kind has no factory. Its children
// are dropped.
func placeholder(n *schema.Node) *Element {
	el := newElement(schema.KindUnknown, n.Content)
	el.Placeholder = true
	el.Action = nil
	return el
}

// implicitStack hosts the children of a non-container node.
func implicitStack(children []*Element) *Element {
	el := &Element{
		Kind:      schema.KindStack,
		Implicit:  true,
		Axis:      AxisVertical,
		Spacing:   style.SpacingMedium,
		Opacity:   1,
		IsVisible: true,
		FgColor:   style.Ink,
		Font:      style.FontFor(""),
	}
	el.SetChildren(children)
	return el
}
