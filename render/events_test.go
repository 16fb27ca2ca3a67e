package render

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/waozixyz/kryon-sdui/action"
	"github.com/waozixyz/kryon-sdui/schema"
)

type recordedAction struct {
	Context string
	Value   string
}

func recorder(out *[]recordedAction) action.Performer {
	return action.PerformerFunc(func(a schema.Action, value string) {
		*out = append(*out, recordedAction{a.Context, value})
	})
}

func TestTap_PerformsRecognizedAction(t *testing.T) {
	var got []recordedAction
	root := quietMapper(WithPerformer(recorder(&got))).Render(decode(t, loginDoc))
	btn := root.Children[3]

	if !btn.Tap() {
		t.Fatal("Tap was rejected")
	}
	if diff := cmp.Diff([]recordedAction{{"login", ""}}, got); diff != "" {
		t.Errorf("performed (-want +got):\n%s", diff)
	}
	if root.Children[0].Tap() {
		t.Error("label accepted a tap")
	}
}

func TestTap_PrintActionIsPerformed(t *testing.T) {
	var got []recordedAction
	n := schema.New(schema.KindButton, schema.Content{Action: &schema.Action{Type: schema.ActionPrint, Context: "legacy"}})
	btn := quietMapper(WithPerformer(recorder(&got))).Render(&n)

	if !btn.Tap() {
		t.Fatal("Tap was rejected")
	}
	if diff := cmp.Diff([]recordedAction{{"legacy", ""}}, got); diff != "" {
		t.Errorf("performed (-want +got):\n%s", diff)
	}
}

func TestTap_UnrecognizedActionIsAccepted(t *testing.T) {
	var got []recordedAction
	n := schema.New(schema.KindButton, schema.Content{Action: &schema.Action{Type: "navigate", Context: "x"}})
	btn := quietMapper(WithPerformer(recorder(&got))).Render(&n)

	if !btn.Tap() {
		t.Error("Tap was rejected")
	}
	if len(got) != 0 {
		t.Errorf("unrecognized action performed: %+v", got)
	}
}

func TestSetText_InvokesBoundHandler(t *testing.T) {
	m := quietMapper()
	var email, password []string
	m.Handle("email", func(v string) { email = append(email, v) })
	m.Handle("password", func(v string) { password = append(password, v) })
	root := m.Render(decode(t, loginDoc))

	root.Find("email").SetText("a@b.c")
	if diff := cmp.Diff([]string{"a@b.c"}, email); diff != "" {
		t.Errorf("email handler (-want +got):\n%s", diff)
	}
	if len(password) != 0 {
		t.Errorf("password handler got %v", password)
	}
	if got := root.Find("email").Text; got != "a@b.c" {
		t.Errorf("input text = %q", got)
	}
}

func TestSetText_PerformsActionThenHandler(t *testing.T) {
	var order []string
	m := quietMapper(WithPerformer(action.PerformerFunc(func(a schema.Action, v string) {
		order = append(order, "perform:"+v)
	})))
	m.Handle("q", func(v string) { order = append(order, "handler:"+v) })
	n := schema.New(schema.KindStack, schema.Content{})
	n.Children = []schema.Node{{
		ID: "q", Kind: schema.KindTextInput,
		Content: schema.Content{Action: &schema.Action{Type: "perform", Context: "search"}},
	}}
	m.Render(&n).Find("q").SetText("go")

	if diff := cmp.Diff([]string{"perform:go", "handler:go"}, order); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
}

func TestSetText_DuplicatePlaceholdersStayDistinct(t *testing.T) {
	doc := `{"type":"stackView","subviews":[
		{"type":"textInput","content":{"placeholder":"Name"}},
		{"type":"textInput","content":{"placeholder":"Name"}}]}`
	m := quietMapper()
	var first, second []string
	m.Handle("$.0", func(v string) { first = append(first, v) })
	m.Handle("$.1", func(v string) { second = append(second, v) })
	root := m.Render(decode(t, doc))

	root.Children[1].SetText("x")
	if len(first) != 0 || len(second) != 1 {
		t.Errorf("first=%v second=%v", first, second)
	}
}

func TestTypingAndBackspace(t *testing.T) {
	m := quietMapper()
	var last string
	m.Handle("email", func(v string) { last = v })
	el := m.Render(decode(t, loginDoc)).Find("email")

	for _, r := range "héé" {
		el.TypeRune(r)
	}
	el.Backspace()
	if el.Text != "hé" || last != "hé" {
		t.Errorf("text=%q last=%q, want %q", el.Text, last, "hé")
	}
}

func TestDisplayText(t *testing.T) {
	root := quietMapper().Render(decode(t, loginDoc))
	pw := root.Find("password")

	if text, ph := pw.DisplayText(); text != "Password" || !ph {
		t.Errorf("empty secure input shows %q placeholder=%v", text, ph)
	}
	pw.SetText("abc")
	if text, _ := pw.DisplayText(); text != "•••" {
		t.Errorf("secure input shows %q", text)
	}
}

func TestDisabledCard(t *testing.T) {
	n := schema.New(schema.KindCard, schema.Content{Style: "disabled"},
		schema.New(schema.KindButton, schema.Content{Action: &schema.Action{Type: "perform", Context: "buy"}}),
	)
	tests := []struct {
		name  string
		block bool
		want  bool
	}{
		{"dims only", false, true},
		{"blocks input", true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got []recordedAction
			card := quietMapper(WithPerformer(recorder(&got)), WithDisabledCardsBlockInput(tc.block)).Render(&n)
			btn := card.Children[0].Children[0]
			if accepted := btn.Tap(); accepted != tc.want {
				t.Errorf("Tap = %v, want %v", accepted, tc.want)
			}
			if op := btn.EffectiveOpacity(); op != 0.5 {
				t.Errorf("effective opacity = %v", op)
			}
		})
	}
}

func TestHiddenElementsIgnoreInput(t *testing.T) {
	n := schema.New(schema.KindStack, schema.Content{IsHidden: true},
		schema.New(schema.KindButton, schema.Content{}),
	)
	root := quietMapper().Render(&n)
	if root.Children[0].Tap() {
		t.Error("button inside hidden stack accepted a tap")
	}
}

func TestFocus(t *testing.T) {
	root := quietMapper().Render(decode(t, loginDoc))
	var f Focus

	var keys []string
	for i := 0; i < 4; i++ {
		keys = append(keys, f.Next(root).Key)
	}
	if diff := cmp.Diff([]string{"email", "password", "$.3", "email"}, keys); diff != "" {
		t.Errorf("focus order (-want +got):\n%s", diff)
	}
	if f.Prev(root).Key != "$.3" {
		t.Errorf("Prev = %s", f.Current().Key)
	}
	if !f.Activate() {
		t.Error("Activate on focused button failed")
	}

	f.Set(root.Find("email"))
	f.Type('x')
	f.Backspace()
	f.Type('y')
	if got := root.Find("email").Text; got != "y" {
		t.Errorf("typed text = %q", got)
	}
	if !root.Find("email").Focused || root.Find("$.3").Focused {
		t.Error("Focused flags out of sync")
	}
}

func TestHitTest(t *testing.T) {
	root := quietMapper().Render(decode(t, loginDoc))
	PerformLayout(root, 0, 0, 300, 600, fixedMeasurer)
	btn := root.Find("$.3")

	if got := HitTest(root, btn.RenderX+1, btn.RenderY+1); got != btn {
		t.Errorf("HitTest inside button = %v", got)
	}
	if got := HitTest(root, 1, 1); got != nil {
		t.Errorf("HitTest on label = %s", got.Key)
	}
}

func TestClose_CancelsImageLoadsAndInput(t *testing.T) {
	started := make(chan struct{})
	loader := ImageLoaderFunc(func(ctx context.Context, src string) (image.Image, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	n := schema.New(schema.KindStack, schema.Content{},
		schema.New(schema.KindImage, schema.Content{Image: "cat.png"}),
		schema.New(schema.KindButton, schema.Content{}),
	)
	root := quietMapper(WithImageLoader(loader)).Render(&n)
	img := root.Children[0]
	task := img.Task
	if task == nil {
		t.Fatal("image element has no task")
	}
	<-started
	root.Close()

	if img.Task != nil {
		t.Error("task still attached after Close")
	}
	select {
	case res := <-task.Done():
		t.Errorf("cancelled task delivered %+v", res)
	case <-time.After(50 * time.Millisecond):
	}
	if root.Children[1].Tap() {
		t.Error("closed button accepted a tap")
	}
	root.Close()
}

func TestPollImage(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 4, 2))
	fail := errors.New("boom")
	loader := ImageLoaderFunc(func(_ context.Context, src string) (image.Image, error) {
		if src == "bad" {
			return nil, fail
		}
		return want, nil
	})
	n := schema.New(schema.KindStack, schema.Content{},
		schema.New(schema.KindImage, schema.Content{Image: "good"}),
		schema.New(schema.KindImage, schema.Content{Image: "bad"}),
	)
	root := quietMapper(WithImageLoader(loader)).Render(&n)

	deadline := time.Now().Add(2 * time.Second)
	changed := 0
	for changed < 2 && time.Now().Before(deadline) {
		changed += len(PollImages(root))
		time.Sleep(time.Millisecond)
	}
	if changed != 2 {
		t.Fatalf("applied %d image results, want 2", changed)
	}
	if root.Children[0].Image != want {
		t.Error("good image not applied")
	}
	if !errors.Is(root.Children[1].ImageErr, fail) {
		t.Errorf("bad image error = %v", root.Children[1].ImageErr)
	}
	if root.Children[0].PollImage() {
		t.Error("PollImage reported a change with no task")
	}
}
