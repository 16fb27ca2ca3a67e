package render

import (
	"bytes"
	"log"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/waozixyz/kryon-sdui/schema"
	"github.com/waozixyz/kryon-sdui/style"
)

const loginDoc = `{
  "type": "stackView",
  "content": {"spacing": "large"},
  "subviews": [
    {"type": "label", "content": {"text": "Sign in", "style": "title"}},
    {"id": "email", "type": "textInput", "content": {"placeholder": "Email"}},
    {"id": "password", "type": "textInput", "content": {"placeholder": "Password", "style": "secure"}},
    {"type": "button", "content": {"text": "Log in", "action": {"type": "perform", "context": "login"}}}
  ]
}`

func decode(t *testing.T, doc string) *schema.Node {
	t.Helper()
	n, err := schema.Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return n
}

func quietMapper(opts ...Option) *Mapper {
	return NewMapper(append([]Option{WithLogger(log.New(&bytes.Buffer{}, "", 0))}, opts...)...)
}

// shape renders the element tree as nested kind names, marking implicit
// stacks with a star.
func shape(el *Element) string {
	var b strings.Builder
	var visit func(*Element)
	visit = func(e *Element) {
		b.WriteString(e.Kind.String())
		if e.Implicit {
			b.WriteString("*")
		}
		if len(e.Children) > 0 {
			b.WriteString("(")
			for i, c := range e.Children {
				if i > 0 {
					b.WriteString(" ")
				}
				visit(c)
			}
			b.WriteString(")")
		}
	}
	visit(el)
	return b.String()
}

func TestRender_LoginScreen(t *testing.T) {
	root := quietMapper().Render(decode(t, loginDoc))

	if diff := cmp.Diff("stackView(label textInput textInput button)", shape(root)); diff != "" {
		t.Errorf("shape (-want +got):\n%s", diff)
	}
	if root.Spacing != style.SpacingLarge {
		t.Errorf("stack spacing = %v, want %v", root.Spacing, style.SpacingLarge)
	}
	if got := root.Children[0].Font; got != style.FontFor("title") {
		t.Errorf("label font = %+v", got)
	}
	if !root.Children[2].Secure {
		t.Error("password input is not secure")
	}
	wantKeys := []string{"$", "$.0", "email", "password", "$.3"}
	var keys []string
	root.Walk(func(e *Element) bool {
		keys = append(keys, e.Key)
		return true
	})
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
}

func TestRender_CountMatchesNodesPlusImplicitStacks(t *testing.T) {
	n := schema.New(schema.KindContent, schema.Content{},
		schema.New(schema.KindCard, schema.Content{},
			schema.New(schema.KindLabel, schema.Content{Text: "a"}),
			schema.New(schema.KindLabel, schema.Content{Text: "b"}),
		),
		schema.New(schema.KindLabel, schema.Content{Text: "c"},
			schema.New(schema.KindButton, schema.Content{}),
		),
		schema.New(schema.KindStack, schema.Content{},
			schema.New(schema.KindImage, schema.Content{}),
		),
	)
	root := quietMapper().Render(&n)

	implicit := 0
	root.Walk(func(e *Element) bool {
		if e.Implicit {
			implicit++
		}
		return true
	})
	if implicit != 2 {
		t.Errorf("implicit stacks = %d, want 2", implicit)
	}
	if got, want := root.Count(), schema.Count(&n)+implicit; got != want {
		t.Errorf("Count = %d, want %d", got, want)
	}
}

func TestRender_LabelHello(t *testing.T) {
	n := schema.New(schema.KindLabel, schema.Content{Text: "Hello", Style: "title"})
	el := quietMapper().Render(&n)

	if el.Kind != schema.KindLabel || el.Text != "Hello" {
		t.Fatalf("got %s %q, want label \"Hello\"", el.Kind, el.Text)
	}
	if el.Font.Role != style.RoleTitle || !el.Font.Bold {
		t.Errorf("font = %+v, want bold title", el.Font)
	}
	if len(el.Children) != 0 {
		t.Errorf("label has %d children", len(el.Children))
	}
}

func TestRender_UnknownKindIsPlaceholder(t *testing.T) {
	n := decode(t, `{"type":"foo","subviews":[{"type":"label"}]}`)
	var buf bytes.Buffer
	el := NewMapper(WithLogger(log.New(&buf, "", 0))).Render(n)

	if !el.Placeholder || el.Kind != schema.KindUnknown {
		t.Fatalf("got kind %s placeholder=%v", el.Kind, el.Placeholder)
	}
	if len(el.Children) != 0 {
		t.Errorf("placeholder kept %d children", len(el.Children))
	}
	if el.SourceName != "foo" {
		t.Errorf("SourceName = %q", el.SourceName)
	}
	if !strings.Contains(buf.String(), `WARN Mapper: unknown node type "foo"`) {
		t.Errorf("missing warning, log: %q", buf.String())
	}
}

func TestRender_StackSpacing(t *testing.T) {
	tests := []struct {
		token string
		want  float32
	}{
		{"large", style.SpacingLarge},
		{"small", style.SpacingSmall},
		{"", style.SpacingMedium},
		{"huge", style.SpacingMedium},
	}
	m := quietMapper()
	for _, tc := range tests {
		n := schema.New(schema.KindStack, schema.Content{Spacing: tc.token})
		if got := m.Render(&n).Spacing; got != tc.want {
			t.Errorf("spacing %q = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestRender_StackAxis(t *testing.T) {
	n := schema.New(schema.KindStack, schema.Content{Axis: "horizontal"})
	if got := quietMapper().Render(&n).Axis; got != AxisHorizontal {
		t.Errorf("axis = %v, want horizontal", got)
	}
}

func TestRender_IndependentTrees(t *testing.T) {
	n := decode(t, loginDoc)
	m := quietMapper()
	a := m.Render(n)
	b := m.Render(n)

	if a == b {
		t.Fatal("renders share a root")
	}
	a.Children[0].Text = "changed"
	if b.Children[0].Text != "Sign in" {
		t.Error("mutating one tree changed the other")
	}
	a.Children[3].Action.Context = "changed"
	if b.Children[3].Action.Context != "login" || n.Children[3].Content.Action.Context != "login" {
		t.Error("actions are shared between trees")
	}
}

func TestRender_CardWrapsChildrenInImplicitStack(t *testing.T) {
	n := schema.New(schema.KindCard, schema.Content{},
		schema.New(schema.KindLabel, schema.Content{Text: "first"}),
		schema.New(schema.KindLabel, schema.Content{Text: "second"}),
	)
	card := quietMapper().Render(&n)

	if len(card.Children) != 1 {
		t.Fatalf("card has %d children, want 1", len(card.Children))
	}
	stack := card.Children[0]
	if !stack.Implicit || stack.Kind != schema.KindStack {
		t.Fatalf("card child = %s implicit=%v", stack.Kind, stack.Implicit)
	}
	if stack.Axis != AxisVertical || stack.Spacing != style.SpacingMedium {
		t.Errorf("implicit stack axis=%v spacing=%v", stack.Axis, stack.Spacing)
	}
	if card.Inset != style.ImplicitInset {
		t.Errorf("card inset = %v, want %v", card.Inset, style.ImplicitInset)
	}
	var texts []string
	for _, c := range stack.Children {
		texts = append(texts, c.Text)
		if c.Parent != stack {
			t.Errorf("%q parent is not the implicit stack", c.Text)
		}
	}
	if diff := cmp.Diff([]string{"first", "second"}, texts); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestRender_ContainersHaveNoImplicitStack(t *testing.T) {
	n := schema.New(schema.KindContent, schema.Content{},
		schema.New(schema.KindLabel, schema.Content{}),
		schema.New(schema.KindLabel, schema.Content{}),
	)
	if diff := cmp.Diff("contentView(label label)", shape(quietMapper().Render(&n))); diff != "" {
		t.Errorf("shape (-want +got):\n%s", diff)
	}
}

func TestRender_StyleVariants(t *testing.T) {
	n := schema.New(schema.KindStack, schema.Content{},
		schema.New(schema.KindButton, schema.Content{Style: "destructive"}),
		schema.New(schema.KindCard, schema.Content{Style: "disabled"}),
		schema.New(schema.KindTextInput, schema.Content{Style: "error"}),
		schema.New(schema.KindLabel, schema.Content{IsHidden: true}),
	)
	root := quietMapper().Render(&n)
	btn, card, input, hidden := root.Children[0], root.Children[1], root.Children[2], root.Children[3]

	if btn.BgColor != style.Error || btn.Text != "Button" || btn.MinHeight != style.MinTapHeight {
		t.Errorf("button bg=%v text=%q minHeight=%v", btn.BgColor, btn.Text, btn.MinHeight)
	}
	if !card.Disabled || card.Opacity != style.DisabledOpacity {
		t.Errorf("card disabled=%v opacity=%v", card.Disabled, card.Opacity)
	}
	if input.BorderColor != style.Error || input.BorderWidth != 2 {
		t.Errorf("input border %v/%v", input.BorderColor, input.BorderWidth)
	}
	if hidden.IsVisible {
		t.Error("hidden label is visible")
	}
}

func TestMapper_CustomFactory(t *testing.T) {
	f := DefaultFactories()
	f.Register(schema.KindLabel, func(env *Env, n *schema.Node, rs style.Resolved, children []*Element) *Element {
		el := buildLabel(env, n, rs, children)
		el.Text = strings.ToUpper(el.Text)
		return el
	})
	n := schema.New(schema.KindLabel, schema.Content{Text: "shout"})
	if got := quietMapper(WithFactories(f)).Render(&n).Text; got != "SHOUT" {
		t.Errorf("text = %q", got)
	}
}

func TestNewMapper_PanicsOnIncompleteFactories(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewMapper did not panic")
		}
	}()
	f := DefaultFactories()
	delete(f, schema.KindImage)
	NewMapper(WithFactories(f))
}

func TestMapper_HandlersScopedPerMapper(t *testing.T) {
	a, b := quietMapper(), quietMapper()
	a.Handle("email", func(string) {})
	if a.Handlers().Len() != 1 || b.Handlers().Len() != 0 {
		t.Errorf("handler counts a=%d b=%d", a.Handlers().Len(), b.Handlers().Len())
	}
}

func TestRender_Nil(t *testing.T) {
	if quietMapper().Render(nil) != nil {
		t.Error("Render(nil) returned an element")
	}
}
