// render/focus.go
package render

import "github.com/waozixyz/kryon-sdui/schema"

// Interactive returns the elements of the tree that accept input, in
// depth-first order.
func Interactive(root *Element) []*Element {
	var out []*Element
	root.Walk(func(e *Element) bool {
		if !e.IsVisible {
			return false
		}
		if e.AcceptsInput() {
			out = append(out, e)
		}
		return true
	})
	return out
}

// HitTest returns the deepest element accepting input whose frame contains
// the point, or nil.
func HitTest(root *Element, x, y float32) *Element {
	var hit *Element
	root.Walk(func(e *Element) bool {
		if !e.IsVisible {
			return false
		}
		if e.AcceptsInput() && e.Contains(x, y) {
			hit = e
		}
		return true
	})
	return hit
}

// Focus tracks the element receiving keyboard input.
type Focus struct {
	current *Element
}

// Current returns the focused element, or nil.
func (f *Focus) Current() *Element {
	if f.current != nil && !f.current.AcceptsInput() {
		f.Set(nil)
	}
	return f.current
}

// Set moves focus to el. A nil el clears it.
func (f *Focus) Set(el *Element) {
	if f.current != nil {
		f.current.Focused = false
	}
	f.current = el
	if el != nil {
		el.Focused = true
	}
}

// Next moves focus to the interactive element after the current one,
// wrapping around. It returns the new focus.
func (f *Focus) Next(root *Element) *Element {
	return f.step(root, 1)
}

// Prev moves focus backwards.
func (f *Focus) Prev(root *Element) *Element {
	return f.step(root, -1)
}

func (f *Focus) step(root *Element, dir int) *Element {
	items := Interactive(root)
	if len(items) == 0 {
		f.Set(nil)
		return nil
	}
	idx := -1
	cur := f.Current()
	for i, e := range items {
		if e == cur {
			idx = i
			break
		}
	}
	switch {
	case idx < 0 && dir > 0:
		idx = 0
	case idx < 0:
		idx = len(items) - 1
	default:
		idx = (idx + dir + len(items)) % len(items)
	}
	f.Set(items[idx])
	return items[idx]
}

// Activate taps the focused element if it is a button.
func (f *Focus) Activate() bool {
	el := f.Current()
	if el == nil || el.Kind != schema.KindButton {
		return false
	}
	return el.Tap()
}

// Type sends r to the focused input.
func (f *Focus) Type(r rune) bool {
	el := f.Current()
	if el == nil || el.Kind != schema.KindTextInput {
		return false
	}
	return el.TypeRune(r)
}

// Backspace deletes the last rune of the focused input.
func (f *Focus) Backspace() bool {
	el := f.Current()
	if el == nil || el.Kind != schema.KindTextInput {
		return false
	}
	return el.Backspace()
}
