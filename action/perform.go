// action/perform.go

package action

import (
	"log"
	"sync"

	"github.com/waozixyz/kryon-sdui/schema"
)

// Performer carries out the side effect an action describes. value is the
// current text of the triggering element, or empty for taps.
type Performer interface {
	Perform(a schema.Action, value string)
}

// PerformerFunc adapts a function to Performer.
type PerformerFunc func(a schema.Action, value string)

func (f PerformerFunc) Perform(a schema.Action, value string) { f(a, value) }

// LogPerformer logs every action it receives.
type LogPerformer struct {
	Logger *log.Logger
}

func (p LogPerformer) Perform(a schema.Action, value string) {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("INFO perform: context=%q value=%q", a.Context, value)
}

// Dispatcher routes actions to functions registered under the action's
// context name. Actions with no registered context fall through to Fallback.
type Dispatcher struct {
	mu       sync.RWMutex
	byName   map[string]Handler
	Fallback Performer
}

// NewDispatcher returns a Dispatcher whose fallback logs unrouted actions.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		byName:   make(map[string]Handler),
		Fallback: LogPerformer{},
	}
}

// On registers h for actions whose context equals name.
func (d *Dispatcher) On(name string, h Handler) {
	if name == "" || h == nil {
		log.Printf("WARN Dispatcher.On: invalid handler registration for %q", name)
		return
	}
	d.mu.Lock()
	if _, exists := d.byName[name]; exists {
		log.Printf("INFO Dispatcher.On: overwriting handler for %q", name)
	}
	d.byName[name] = h
	d.mu.Unlock()
}

func (d *Dispatcher) Perform(a schema.Action, value string) {
	d.mu.RLock()
	h, ok := d.byName[a.Context]
	d.mu.RUnlock()
	if ok {
		h(value)
		return
	}
	if d.Fallback != nil {
		d.Fallback.Perform(a, value)
	}
}
