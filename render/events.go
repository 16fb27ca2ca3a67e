// render/events.go
package render

import (
	"log"
	"strings"

	"github.com/waozixyz/kryon-sdui/action"
	"github.com/waozixyz/kryon-sdui/schema"
)

// Bindings connects interactive elements to the handlers and performer of the
// mapper that built them.
type Bindings struct {
	Handlers  *action.Registry
	Performer action.Performer

	// DisabledBlocksInput makes disabled cards swallow taps and typing in
	// their subtree instead of only dimming it.
	DisabledBlocksInput bool
}

// AcceptsInput reports whether the element currently takes taps or text.
func (el *Element) AcceptsInput() bool {
	if el == nil || !el.IsInteractive || el.closed || !el.Shown() {
		return false
	}
	if el.bindings != nil && el.bindings.DisabledBlocksInput && el.InDisabledSubtree() {
		return false
	}
	return true
}

// Tap activates a button. It performs the button's action when the action
// type is recognized and reports whether the tap was accepted.
func (el *Element) Tap() bool {
	if el.Kind != schema.KindButton || !el.AcceptsInput() {
		return false
	}
	el.perform("")
	return true
}

// SetText replaces the text of an input, as a keystroke would, then performs
// the input's action and notifies the handler bound to its key.
func (el *Element) SetText(text string) bool {
	if el.Kind != schema.KindTextInput || !el.AcceptsInput() {
		return false
	}
	el.Text = text
	el.perform(text)
	if el.bindings != nil && el.bindings.Handlers != nil {
		el.bindings.Handlers.Invoke(el.Key, text)
	}
	return true
}

// TypeRune appends r to an input's text.
func (el *Element) TypeRune(r rune) bool {
	return el.SetText(el.Text + string(r))
}

// Backspace removes the last rune of an input's text.
func (el *Element) Backspace() bool {
	if el.Text == "" {
		return false
	}
	runes := []rune(el.Text)
	return el.SetText(string(runes[:len(runes)-1]))
}

func (el *Element) perform(value string) {
	if !action.IsRecognized(el.Action) {
		if el.Action != nil {
			log.Printf("DEBUG Element %s: ignoring action type %q", el.Key, el.Action.Type)
		}
		return
	}
	if el.bindings == nil || el.bindings.Performer == nil {
		return
	}
	el.bindings.Performer.Perform(*el.Action, value)
}

// DisplayText is the text a backend draws for el: masked for secure inputs,
// the placeholder when an input is empty.
func (el *Element) DisplayText() (text string, isPlaceholder bool) {
	if el.Kind != schema.KindTextInput {
		return el.Text, false
	}
	if el.Text == "" {
		return el.PlaceholderText, true
	}
	if el.Secure {
		return strings.Repeat("•", len([]rune(el.Text))), false
	}
	return el.Text, false
}

// Close tears down the subtree: pending image loads are cancelled and the
// elements stop accepting input. Closing twice is harmless.
func (el *Element) Close() {
	el.Walk(func(e *Element) bool {
		if e.Task != nil {
			e.Task.Cancel()
			e.Task = nil
		}
		e.Focused = false
		e.closed = true
		return true
	})
}

// PollImage applies a finished image load without blocking. It reports
// whether the element's image state changed.
func (el *Element) PollImage() bool {
	if el.Task == nil {
		return false
	}
	select {
	case res := <-el.Task.Done():
		el.Task = nil
		if res.Err != nil {
			el.ImageErr = res.Err
			log.Printf("WARN Element %s: image %q: %v", el.Key, res.Source, res.Err)
			return true
		}
		el.Image = res.Image
		return true
	default:
		return false
	}
}

// PollImages applies finished image loads across the tree and returns the
// elements that changed.
func PollImages(root *Element) []*Element {
	var changed []*Element
	root.Walk(func(e *Element) bool {
		if e.PollImage() {
			changed = append(changed, e)
		}
		return true
	})
	return changed
}
