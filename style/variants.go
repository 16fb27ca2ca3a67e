// style/variants.go

package style

import "image/color"

// FontRole names a text role.
type FontRole string

const (
	RoleTitle   FontRole = "title"
	RoleBody    FontRole = "body"
	RoleCaption FontRole = "caption"
)

// Font describes how text of a role is drawn.
type Font struct {
	Role FontRole
	Size float32
	Bold bool
}

var fontTable = map[FontRole]Font{
	RoleTitle:   {Role: RoleTitle, Size: 18, Bold: true},
	RoleBody:    {Role: RoleBody, Size: 16},
	RoleCaption: {Role: RoleCaption, Size: 14},
}

// FontFor resolves a font role token; the default is body.
func FontFor(role string) Font {
	if f, ok := fontTable[FontRole(role)]; ok {
		return f
	}
	return fontTable[RoleBody]
}

// LineHeight is the vertical space one line of f occupies.
func (f Font) LineHeight() float32 { return f.Size * LineHeightFactor }

// ButtonStyle is the appearance of a button variant.
type ButtonStyle struct {
	Name       string
	Background color.RGBA
	Foreground color.RGBA
	Border     color.RGBA
}

var buttonTable = map[string]ButtonStyle{
	"primary":     {Name: "primary", Background: Primary, Foreground: White},
	"secondary":   {Name: "secondary", Background: White, Foreground: Primary, Border: Primary},
	"destructive": {Name: "destructive", Background: Error, Foreground: White},
}

// Button resolves a button style token; the default is primary.
func Button(token string) ButtonStyle {
	if s, ok := buttonTable[token]; ok {
		return s
	}
	return buttonTable["primary"]
}

// InputStyle is the appearance of a text input variant.
type InputStyle struct {
	Name        string
	Border      color.RGBA
	BorderWidth float32
	Secure      bool
}

var inputTable = map[string]InputStyle{
	"default": {Name: "default", Border: Separator, BorderWidth: 1},
	"secure":  {Name: "secure", Border: Separator, BorderWidth: 1, Secure: true},
	"error":   {Name: "error", Border: Error, BorderWidth: 2},
}

// Input resolves a text input style token; the default is "default".
func Input(token string) InputStyle {
	if s, ok := inputTable[token]; ok {
		return s
	}
	return inputTable["default"]
}

// CardStyle is the appearance of a card variant.
type CardStyle struct {
	Name        string
	Background  color.RGBA
	Border      color.RGBA
	BorderWidth float32
	Opacity     float32
	Disabled    bool
}

var cardTable = map[string]CardStyle{
	"default":     {Name: "default", Background: White, Border: Separator, BorderWidth: 1, Opacity: 1},
	"highlighted": {Name: "highlighted", Background: White, Border: Primary, BorderWidth: 2, Opacity: 1},
	"disabled":    {Name: "disabled", Background: Background, Border: Separator, BorderWidth: 1, Opacity: DisabledOpacity, Disabled: true},
}

// Card resolves a card style token; the default is "default".
func Card(token string) CardStyle {
	if s, ok := cardTable[token]; ok {
		return s
	}
	return cardTable["default"]
}
