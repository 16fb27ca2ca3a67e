// action/registry.go

// Package action routes interaction events from rendered elements to Go code.
//
// A Registry maps binding keys (node identities) to handlers and is scoped to
// one mapper: discard it together with the tree it was populated for. A
// Performer receives the side effects that "perform" actions describe.
package action

import (
	"log"
	"sort"
	"sync"

	"github.com/waozixyz/kryon-sdui/schema"
)

// Handler receives the current value of the element it is bound to.
type Handler func(value string)

// Registry maps binding keys to handlers. Registration for an existing key
// replaces the previous handler.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds h to key, replacing any existing handler. A nil handler
// removes the binding.
func (r *Registry) Register(key string, h Handler) {
	if key == "" {
		log.Println("WARN Registry.Register: ignoring handler with empty key")
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		delete(r.handlers, key)
		return
	}
	r.handlers[key] = h
}

// Unregister removes the handler bound to key, if any.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	delete(r.handlers, key)
	r.mu.Unlock()
}

// Invoke calls the handler bound to key with value and reports whether one
// was found. Unknown keys are a silent no-op.
func (r *Registry) Invoke(key, value string) bool {
	r.mu.RLock()
	h, ok := r.handlers[key]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	h(value)
	return true
}

// Len returns the number of bound keys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Keys returns the bound keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	keys := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		keys = append(keys, k)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// IsRecognized reports whether a carries an action type the renderer performs.
func IsRecognized(a *schema.Action) bool {
	return a != nil && (a.Type == schema.ActionPerform || a.Type == schema.ActionPrint)
}
