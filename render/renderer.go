// render/renderer.go
package render

import (
	"image/color"

	"github.com/waozixyz/kryon-sdui/style"
)

// WindowConfig holds the window settings a backend opens with.
type WindowConfig struct {
	Width       int
	Height      int
	Title       string
	Resizable   bool
	ScaleFactor float32
	DefaultBg   color.RGBA
}

// DefaultWindowConfig returns the settings used when nothing overrides them.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:       390,
		Height:      844,
		Title:       "sdui",
		Resizable:   true,
		ScaleFactor: 1.0,
		DefaultBg:   style.Background,
	}
}

// Renderer is a native backend that draws an element tree and feeds input
// back into it. All methods are called from the goroutine that owns the UI.
type Renderer interface {
	// Init opens the window or screen.
	Init(config WindowConfig) error

	// RenderFrame lays out and draws the tree. It also applies finished
	// image loads to their elements.
	RenderFrame(root *Element)

	// PollEvents routes pending input to the tree (taps, focus, typing).
	PollEvents(root *Element)

	ShouldClose() bool
	BeginFrame()
	EndFrame()

	// Cleanup releases backend resources and closes the window.
	Cleanup()
}
