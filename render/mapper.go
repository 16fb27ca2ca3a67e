// render/mapper.go
package render

import (
	"context"
	"fmt"
	"log"

	"github.com/waozixyz/kryon-sdui/action"
	"github.com/waozixyz/kryon-sdui/schema"
	"github.com/waozixyz/kryon-sdui/style"
)

// Mapper turns node trees into element trees. Its handler registry is scoped
// to the mapper: build a new mapper for an unrelated screen.
type Mapper struct {
	factories Factories
	bindings  *Bindings
	env       *Env
	logger    *log.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithFactories replaces the factory table.
func WithFactories(f Factories) Option {
	return func(m *Mapper) { m.factories = f }
}

// WithPerformer sets who carries out "perform" actions.
func WithPerformer(p action.Performer) Option {
	return func(m *Mapper) { m.bindings.Performer = p }
}

// WithImageLoader enables image loading for image nodes.
func WithImageLoader(l ImageLoader) Option {
	return func(m *Mapper) { m.env.Images = l }
}

// WithContext sets the parent context of image loads.
func WithContext(ctx context.Context) Option {
	return func(m *Mapper) { m.env.ctx = ctx }
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Mapper) {
		m.logger = l
		m.env.Logger = l
	}
}

// WithDisabledCardsBlockInput makes disabled cards block input to their
// subtree. By default they only dim it.
func WithDisabledCardsBlockInput(block bool) Option {
	return func(m *Mapper) { m.bindings.DisabledBlocksInput = block }
}

// NewMapper returns a mapper using the default factories unless overridden.
// It panics if the factory table leaves a known kind without a factory.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{
		factories: DefaultFactories(),
		bindings: &Bindings{
			Handlers:  action.NewRegistry(),
			Performer: action.LogPerformer{},
		},
		env:    &Env{},
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.env.Logger == nil {
		m.env.Logger = m.logger
	}
	if missing := m.factories.missing(); len(missing) > 0 {
		panic(fmt.Sprintf("render: no factory for kinds %v", missing))
	}
	return m
}

// Handle binds h to the element identified by key. Text inputs deliver their
// new text to it on every change.
func (m *Mapper) Handle(key string, h action.Handler) {
	m.bindings.Handlers.Register(key, h)
}

// Handlers returns the mapper's handler registry.
func (m *Mapper) Handlers() *action.Registry { return m.bindings.Handlers }

// Render builds the element tree for root. A nil root yields nil.
func (m *Mapper) Render(root *schema.Node) *Element {
	if root == nil {
		return nil
	}
	return m.render(root, schema.RootID)
}

// Rebuild closes prev, if any, and renders root in its place.
func (m *Mapper) Rebuild(prev *Element, root *schema.Node) *Element {
	if prev != nil {
		prev.Close()
	}
	return m.Render(root)
}

func (m *Mapper) render(n *schema.Node, path string) *Element {
	key := n.ID
	if key == "" {
		key = path
	}

	factory := m.factories[n.Kind]
	if factory == nil {
		m.logger.Printf("WARN Mapper: unknown node type %q at %s, rendering placeholder", n.Tag(), key)
		el := placeholder(n)
		el.Key, el.SourceName = key, n.Tag()
		return el
	}

	var children []*Element
	if len(n.Children) > 0 {
		children = make([]*Element, 0, len(n.Children))
		for i := range n.Children {
			children = append(children, m.render(&n.Children[i], schema.ChildID(path, i)))
		}
		if !n.Kind.IsContainer() {
			stack := implicitStack(children)
			stack.Key = key + "#stack"
			children = []*Element{stack}
		}
	}

	el := factory(m.env, n, style.Resolve(n.Content), children)
	if el == nil {
		m.logger.Printf("ERROR Mapper: factory for %q returned nil at %s", n.Tag(), key)
		el = placeholder(n)
	}
	el.Key, el.SourceName = key, n.Tag()
	if el.IsInteractive {
		el.bindings = m.bindings
	}
	return el
}
