// render/raylib/raylib_renderer.go
package raylib

import (
	"fmt"
	"log"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/waozixyz/kryon-sdui/render"
	"github.com/waozixyz/kryon-sdui/schema"
)

// RaylibRenderer implements the render.Renderer interface using the Raylib graphics library.
// It handles window initialization, layout, drawing, texture uploads and input routing.
type RaylibRenderer struct {
	config         render.WindowConfig
	scaleFactor    float32
	loadedTextures map[string]rl.Texture2D
	focus          render.Focus
	lastRoot       *render.Element
}

// NewRaylibRenderer creates and initializes a new RaylibRenderer instance with default values.
func NewRaylibRenderer() *RaylibRenderer {
	return &RaylibRenderer{
		loadedTextures: make(map[string]rl.Texture2D),
		scaleFactor:    1.0,
	}
}

// Init initializes the Raylib window according to the provided configuration.
func (r *RaylibRenderer) Init(config render.WindowConfig) error {
	r.config = config
	r.scaleFactor = float32(math.Max(1.0, float64(config.ScaleFactor)))

	log.Printf("RaylibRenderer Init: Initializing window %dx%d. Title: '%s'. UI Scale: %.2f.",
		config.Width, config.Height, config.Title, r.scaleFactor)

	rl.InitWindow(int32(config.Width), int32(config.Height), config.Title)

	if config.Resizable {
		rl.SetWindowState(rl.FlagWindowResizable)
	} else {
		rl.ClearWindowState(rl.FlagWindowResizable)
		rl.SetWindowSize(config.Width, config.Height)
	}

	rl.SetTargetFPS(60)

	if !rl.IsWindowReady() {
		return fmt.Errorf("RaylibRenderer Init: rl.InitWindow failed or window is not ready")
	}
	log.Println("RaylibRenderer Init: Raylib window is ready.")
	return nil
}

// Measurer returns a text measurer backed by Raylib's default font. It is only
// valid while the window is open.
func (r *RaylibRenderer) Measurer() render.Measurer {
	return render.MeasureFunc(measureText)
}

// RenderFrame orchestrates the entire rendering process for a single frame.
func (r *RaylibRenderer) RenderFrame(root *render.Element) {
	if root == nil {
		return
	}
	if root != r.lastRoot {
		logElementTree(root, 0, "Root")
		r.lastRoot = root
	}

	windowResized := rl.IsWindowResized()
	currentWidth := r.config.Width
	currentHeight := r.config.Height

	if windowResized && r.config.Resizable {
		newWidth := int(rl.GetScreenWidth())
		newHeight := int(rl.GetScreenHeight())
		if newWidth != currentWidth || newHeight != currentHeight {
			r.config.Width = newWidth
			r.config.Height = newHeight
			currentWidth = newWidth
			currentHeight = newHeight
			log.Printf("RenderFrame: Window resized to %dx%d. Recalculating layout.", currentWidth, currentHeight)
		}
	} else if !r.config.Resizable {
		screenWidth := int(rl.GetScreenWidth())
		screenHeight := int(rl.GetScreenHeight())
		if currentWidth != screenWidth || currentHeight != screenHeight {
			rl.SetWindowSize(currentWidth, currentHeight)
		}
	}

	for _, el := range render.PollImages(root) {
		r.uploadTexture(el)
	}

	// Layout runs in logical units; drawing scales to pixels.
	render.PerformLayout(root, 0, 0,
		float32(currentWidth)/r.scaleFactor, float32(currentHeight)/r.scaleFactor, r.Measurer())

	r.renderElementRecursive(root, r.scaleFactor)
}

// Cleanup unloads all loaded textures and closes the Raylib window.
func (r *RaylibRenderer) Cleanup() {
	if r.lastRoot != nil {
		r.lastRoot.Close()
	}
	log.Println("RaylibRenderer Cleanup: Unloading textures...")
	unloadedCount := 0
	for src, texture := range r.loadedTextures {
		if texture.ID > 0 {
			rl.UnloadTexture(texture)
			unloadedCount++
		}
		delete(r.loadedTextures, src)
	}
	log.Printf("RaylibRenderer Cleanup: Unloaded %d textures from cache.", unloadedCount)

	if rl.IsWindowReady() {
		log.Println("RaylibRenderer Cleanup: Closing Raylib window...")
		rl.CloseWindow()
	} else {
		log.Println("RaylibRenderer Cleanup: Raylib window was already closed or not initialized.")
	}
}

// ShouldClose returns true if the Raylib window has been signaled to close.
func (r *RaylibRenderer) ShouldClose() bool {
	return rl.IsWindowReady() && rl.WindowShouldClose()
}

// BeginFrame prepares Raylib for a new frame of drawing.
func (r *RaylibRenderer) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(toColor(r.config.DefaultBg, 1))
}

// EndFrame finalizes the drawing for the current frame.
func (r *RaylibRenderer) EndFrame() {
	rl.EndDrawing()
}

// PollEvents handles window events and user input: clicks tap buttons and
// focus inputs, Tab cycles focus, Enter activates the focused button and
// typed characters go to the focused input.
func (r *RaylibRenderer) PollEvents(root *render.Element) {
	if !rl.IsWindowReady() || root == nil {
		return
	}

	mousePos := rl.GetMousePosition()
	lx, ly := mousePos.X/r.scaleFactor, mousePos.Y/r.scaleFactor
	hovered := render.HitTest(root, lx, ly)

	currentMouseCursor := rl.MouseCursorDefault
	if hovered != nil {
		currentMouseCursor = rl.MouseCursorPointingHand
		if hovered.Kind == schema.KindTextInput {
			currentMouseCursor = rl.MouseCursorIBeam
		}
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		switch {
		case hovered == nil:
			r.focus.Set(nil)
		case hovered.Kind == schema.KindButton:
			r.focus.Set(hovered)
			if !hovered.Tap() {
				log.Printf("DEBUG PollEvents: tap on %s was not accepted", hovered.Key)
			}
		default:
			r.focus.Set(hovered)
		}
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			r.focus.Prev(root)
		} else {
			r.focus.Next(root)
		}
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		r.focus.Activate()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		r.focus.Backspace()
	}
	for ch := rl.GetCharPressed(); ch > 0; ch = rl.GetCharPressed() {
		r.focus.Type(rune(ch))
	}

	rl.SetMouseCursor(currentMouseCursor)
}

// renderElementRecursive draws an element and its children.
func (r *RaylibRenderer) renderElementRecursive(el *render.Element, scale float32) {
	if el == nil || !el.IsVisible {
		return
	}

	renderXf, renderYf := el.RenderX*scale, el.RenderY*scale
	renderWf, renderHf := el.RenderW*scale, el.RenderH*scale

	if renderWf <= 0 || renderHf <= 0 {
		for _, child := range el.Children {
			r.renderElementRecursive(child, scale)
		}
		return
	}

	alpha := el.EffectiveOpacity()
	bounds := rl.NewRectangle(renderXf, renderYf, renderWf, renderHf)
	radius := el.CornerRadius * scale
	border := el.BorderWidth * scale
	if el.Focused {
		border = math32Max(border, 2*scale)
	}

	borderColor := el.BorderColor
	if el.Focused {
		borderColor = focusColor
	}

	// Background and border: the border is a filled shape under an inset fill.
	if border > 0 && borderColor.A > 0 {
		drawRoundedRect(bounds, radius, toColor(borderColor, alpha))
		inner := rl.NewRectangle(renderXf+border, renderYf+border,
			math32Max(0, renderWf-2*border), math32Max(0, renderHf-2*border))
		drawRoundedRect(inner, math32Max(0, radius-border), toColor(el.BgColor, alpha))
	} else if el.BgColor.A > 0 {
		drawRoundedRect(bounds, radius, toColor(el.BgColor, alpha))
	}

	if el.Placeholder {
		drawBorders(int(renderXf), int(renderYf), int(renderWf), int(renderHf), 1, 1, 1, 1, toColor(placeholderColor, alpha))
	}

	contentX := int32(renderXf + border)
	contentY := int32(renderYf + border)
	contentWidth := maxI32(0, int32(renderWf-2*border))
	contentHeight := maxI32(0, int32(renderHf-2*border))

	if contentWidth > 0 && contentHeight > 0 {
		rl.BeginScissorMode(contentX, contentY, contentWidth, contentHeight)
		r.drawContent(el, int(contentX), int(contentY), int(contentWidth), int(contentHeight), scale, alpha)
		rl.EndScissorMode()
	}

	for _, child := range el.Children {
		r.renderElementRecursive(child, scale)
	}
}

// drawContent draws the specific content (text, image) of an element.
func (r *RaylibRenderer) drawContent(el *render.Element, cx, cy, cw, ch int, scale float32, alpha float32) {
	switch el.Kind {
	case schema.KindLabel:
		fontSize := scaledFontSize(el.Font.Size, scale)
		lineHeight := int(el.Font.LineHeight() * scale)
		lines := render.WrapText(el.Text, el.Font, float32(cw)/scale, r.Measurer())
		for i, line := range lines {
			drawText(line, int32(cx), int32(cy+i*lineHeight), fontSize, el.Font.Bold, toColor(el.FgColor, alpha))
		}

	case schema.KindButton:
		fontSize := scaledFontSize(el.Font.Size, scale)
		textWidth := rl.MeasureText(el.Text, fontSize)
		textX := int32(cx + (cw-int(textWidth))/2)
		textY := int32(cy + (ch-int(fontSize))/2)
		drawText(el.Text, textX, textY, fontSize, el.Font.Bold, toColor(el.FgColor, alpha))

	case schema.KindTextInput:
		fontSize := scaledFontSize(el.Font.Size, scale)
		pad := int32(inputPadding * scale)
		text, isPlaceholder := el.DisplayText()
		fg := el.FgColor
		if isPlaceholder {
			fg = placeholderColor
		}
		textY := int32(cy + (ch-int(fontSize))/2)
		drawText(text, int32(cx)+pad, textY, fontSize, false, toColor(fg, alpha))
		if el.Focused && (rl.GetTime()*2-math.Floor(rl.GetTime()*2)) < 0.5 {
			caretX := int32(cx) + pad
			if !isPlaceholder {
				caretX += rl.MeasureText(text, fontSize)
			}
			rl.DrawRectangle(caretX+1, textY, maxI32(1, int32(scale)), fontSize, toColor(focusColor, alpha))
		}

	case schema.KindImage:
		tex, ok := r.loadedTextures[el.ImageSource]
		if !ok || tex.ID == 0 {
			return
		}
		texWidth := float32(tex.Width)
		texHeight := float32(tex.Height)
		sourceRec := rl.NewRectangle(0, 0, texWidth, texHeight)
		destRec := rl.NewRectangle(float32(cx), float32(cy), float32(cw), float32(ch))
		if destRec.Width > 0 && destRec.Height > 0 && sourceRec.Width > 0 && sourceRec.Height > 0 {
			rl.DrawTexturePro(tex, sourceRec, destRec, rl.NewVector2(0, 0), 0.0, rl.Fade(rl.White, alpha))
		}
	}
}

// uploadTexture turns a freshly loaded image into a GPU texture, once per
// source.
func (r *RaylibRenderer) uploadTexture(el *render.Element) {
	if el.Image == nil || el.ImageSource == "" {
		return
	}
	if _, exists := r.loadedTextures[el.ImageSource]; exists {
		return
	}
	if !rl.IsWindowReady() {
		log.Printf("Error uploadTexture: Window not ready for texture loading for %s", el.ImageSource)
		return
	}
	img := rl.NewImageFromImage(el.Image)
	if img == nil || img.Width <= 0 || img.Height <= 0 {
		log.Printf("Error uploadTexture: Failed to convert image data for %s", el.ImageSource)
		return
	}
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	if texture.ID == 0 {
		log.Printf("Error uploadTexture: Failed to load texture from image for %s", el.ImageSource)
		return
	}
	r.loadedTextures[el.ImageSource] = texture
	log.Printf("DEBUG uploadTexture: %s (%dx%d)", el.ImageSource, texture.Width, texture.Height)
}
