package render

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/waozixyz/kryon-sdui/schema"
	"github.com/waozixyz/kryon-sdui/style"
)

// fixedMeasurer gives every rune a width of 10.
var fixedMeasurer = MeasureFunc(func(text string, _ style.Font) float32 {
	return float32(len([]rune(text))) * 10
})

type frame struct{ X, Y, W, H float32 }

func frameOf(el *Element) frame { return frame{el.RenderX, el.RenderY, el.RenderW, el.RenderH} }

func TestPerformLayout_VerticalStack(t *testing.T) {
	n := schema.New(schema.KindStack, schema.Content{Spacing: "small"},
		schema.New(schema.KindLabel, schema.Content{Text: "hi"}),
		schema.New(schema.KindButton, schema.Content{Text: "go"}),
		schema.New(schema.KindTextInput, schema.Content{}),
	)
	root := quietMapper().Render(&n)
	PerformLayout(root, 0, 0, 300, 600, fixedMeasurer)

	body := style.FontFor("body").LineHeight()
	want := []frame{
		{0, 0, 300, body},
		{0, body + 8, 300, style.MinTapHeight},
		{0, body + 8 + style.MinTapHeight + 8, 300, style.InputHeight},
	}
	var got []frame
	for _, c := range root.Children {
		got = append(got, frameOf(c))
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frames (-want +got):\n%s", diff)
	}
	if frameOf(root) != (frame{0, 0, 300, 600}) {
		t.Errorf("root frame = %+v", frameOf(root))
	}
}

func TestPerformLayout_HorizontalSplitsWidth(t *testing.T) {
	n := schema.New(schema.KindStack, schema.Content{Axis: "horizontal", Spacing: "large"},
		schema.New(schema.KindButton, schema.Content{}),
		schema.New(schema.KindButton, schema.Content{}),
	)
	root := quietMapper().Render(&n)
	PerformLayout(root, 10, 20, 224, 100, fixedMeasurer)

	want := []frame{{10, 20, 100, 100}, {134, 20, 100, 100}}
	got := []frame{frameOf(root.Children[0]), frameOf(root.Children[1])}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frames (-want +got):\n%s", diff)
	}
}

func TestPerformLayout_HiddenTakesNoSpace(t *testing.T) {
	n := schema.New(schema.KindStack, schema.Content{},
		schema.New(schema.KindButton, schema.Content{IsHidden: true}),
		schema.New(schema.KindButton, schema.Content{}),
	)
	root := quietMapper().Render(&n)
	PerformLayout(root, 0, 0, 200, 400, fixedMeasurer)

	if h := root.Children[0].RenderH; h != 0 {
		t.Errorf("hidden height = %v", h)
	}
	if y := root.Children[1].RenderY; y != 0 {
		t.Errorf("visible button y = %v, want 0", y)
	}
}

func TestPerformLayout_CardInsetsImplicitStack(t *testing.T) {
	n := schema.New(schema.KindContent, schema.Content{},
		schema.New(schema.KindCard, schema.Content{},
			schema.New(schema.KindButton, schema.Content{}),
			schema.New(schema.KindButton, schema.Content{}),
		),
	)
	root := quietMapper().Render(&n)
	PerformLayout(root, 0, 0, 200, 800, fixedMeasurer)

	card := root.Children[0]
	stack := card.Children[0]
	inset := style.ImplicitInset
	wantStack := frame{inset, inset, 200 - 2*inset, 2*style.MinTapHeight + style.SpacingMedium}
	if diff := cmp.Diff(wantStack, frameOf(stack)); diff != "" {
		t.Errorf("stack frame (-want +got):\n%s", diff)
	}
	if want := wantStack.H + 2*inset; card.RenderH != want {
		t.Errorf("card height = %v, want %v", card.RenderH, want)
	}
}

func TestMeasure_ImageAspect(t *testing.T) {
	el := &Element{Kind: schema.KindImage, IsVisible: true, MinHeight: style.DefaultImageHeight}
	if h := Measure(el, 300, nil); h != style.DefaultImageHeight {
		t.Errorf("unloaded image height = %v", h)
	}
	el.Image = image.NewRGBA(image.Rect(0, 0, 200, 100))
	if h := Measure(el, 300, nil); h != 150 {
		t.Errorf("loaded image height = %v, want 150", h)
	}
}

func TestWrapText(t *testing.T) {
	font := style.FontFor("body")
	tests := []struct {
		text  string
		width float32
		want  []string
	}{
		{"", 100, nil},
		{"one two three", 1000, []string{"one two three"}},
		{"one two three", 70, []string{"one two", "three"}},
		{"a\nb", 1000, []string{"a", "b"}},
		{"unbreakable", 30, []string{"unbreakable"}},
	}
	for _, tc := range tests {
		got := WrapText(tc.text, font, tc.width, fixedMeasurer)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("WrapText(%q, %v) (-want +got):\n%s", tc.text, tc.width, diff)
		}
	}
}

func TestCellMeasurer_WideRunes(t *testing.T) {
	font := style.Font{Size: 10}
	var m CellMeasurer
	if narrow, wide := m.MeasureText("ab", font), m.MeasureText("日本", font); wide != 2*narrow {
		t.Errorf("narrow=%v wide=%v, want wide twice narrow", narrow, wide)
	}
}
