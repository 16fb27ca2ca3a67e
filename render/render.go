// render/render.go
package render

import (
	"image"
	"image/color"

	"github.com/waozixyz/kryon-sdui/schema"
	"github.com/waozixyz/kryon-sdui/style"
)

// Axis is the direction an element lays out its children.
type Axis uint8

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// ParseAxis maps an axis token; anything but "horizontal" is vertical.
func ParseAxis(token string) Axis {
	if token == "horizontal" {
		return AxisHorizontal
	}
	return AxisVertical
}

// TextAlign is the horizontal placement of an element's text.
type TextAlign uint8

const (
	AlignStart TextAlign = iota
	AlignCenter
)

// Element is the rendered component built for one node. It is owned by its
// parent and lives exactly as long as the tree it belongs to.
type Element struct {
	Kind        schema.Kind
	Key         string // node identity; the binding key of interactive elements
	SourceName  string // wire tag, kept for logs
	Implicit    bool   // synthesized stack hosting a non-container's children
	Placeholder bool   // stand-in for an unknown node kind

	Parent   *Element
	Children []*Element

	BgColor      color.RGBA
	FgColor      color.RGBA
	BorderColor  color.RGBA
	BorderWidth  float32
	CornerRadius float32
	Opacity      float32

	Font            style.Font
	Text            string
	PlaceholderText string
	Secure          bool
	TextAlign       TextAlign

	Axis      Axis
	Spacing   float32
	Inset     float32
	MinHeight float32

	IsVisible     bool
	IsInteractive bool
	Disabled      bool
	Focused       bool

	Action      *schema.Action
	ImageSource string
	Image       image.Image
	ImageErr    error
	Task        *ImageTask

	bindings *Bindings
	closed   bool

	// Frame computed by PerformLayout.
	RenderX float32
	RenderY float32
	RenderW float32
	RenderH float32
}

// newElement returns an element carrying the appearance defaults every
// factory starts from.
func newElement(kind schema.Kind, c schema.Content) *Element {
	el := &Element{
		Kind:      kind,
		FgColor:   style.Ink,
		Opacity:   1,
		Font:      style.FontFor(string(style.RoleBody)),
		IsVisible: !c.IsHidden,
	}
	if c.Action != nil {
		a := *c.Action
		el.Action = &a
	}
	return el
}

// SetChildren replaces the element's children and adopts them.
func (el *Element) SetChildren(children []*Element) {
	for _, old := range el.Children {
		if old != nil && old.Parent == el {
			old.Parent = nil
		}
	}
	el.Children = make([]*Element, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		c.Parent = el
		el.Children = append(el.Children, c)
	}
}

// host adopts an implicit stack built by the mapper and insets it from the
// element's edges.
func (el *Element) host(children []*Element) {
	el.SetChildren(children)
	if len(el.Children) > 0 {
		el.Inset = style.ImplicitInset
	}
}

// Walk visits el and its descendants depth-first. Returning false from fn
// skips the element's children.
func (el *Element) Walk(fn func(*Element) bool) {
	if el == nil || !fn(el) {
		return
	}
	for _, c := range el.Children {
		c.Walk(fn)
	}
}

// Count returns the number of elements in the subtree.
func (el *Element) Count() int {
	n := 0
	el.Walk(func(*Element) bool {
		n++
		return true
	})
	return n
}

// Find returns the first element in the subtree whose key is key.
func (el *Element) Find(key string) *Element {
	var found *Element
	el.Walk(func(e *Element) bool {
		if found != nil {
			return false
		}
		if e.Key == key {
			found = e
			return false
		}
		return true
	})
	return found
}

// EffectiveOpacity multiplies the opacity of el and its ancestors.
func (el *Element) EffectiveOpacity() float32 {
	o := float32(1)
	for e := el; e != nil; e = e.Parent {
		o *= e.Opacity
	}
	return o
}

// InDisabledSubtree reports whether el or an ancestor is a disabled card.
func (el *Element) InDisabledSubtree() bool {
	for e := el; e != nil; e = e.Parent {
		if e.Disabled {
			return true
		}
	}
	return false
}

// Shown reports whether el and all its ancestors are visible.
func (el *Element) Shown() bool {
	for e := el; e != nil; e = e.Parent {
		if !e.IsVisible {
			return false
		}
	}
	return true
}

// Contains reports whether the point lies inside the element's frame.
func (el *Element) Contains(x, y float32) bool {
	return x >= el.RenderX && x < el.RenderX+el.RenderW &&
		y >= el.RenderY && y < el.RenderY+el.RenderH
}
