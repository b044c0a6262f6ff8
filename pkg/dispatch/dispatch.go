// Package dispatch maps named commands to handler functions.
//
// Several handlers may subscribe to the same command. After-command handlers
// run once per Dispatch, after the command's own handlers, whether or not any
// were registered; applications use them to re-render.
package dispatch

import (
	"log/slog"
	"sync"
)

// Handler receives a command payload.
type Handler func(payload any)

// Unsubscribe removes a registration. Calling it more than once is a no-op.
type Unsubscribe func()

type subscription struct {
	id uint64
	fn Handler
}

// Dispatcher is a publish/subscribe registry for commands.
type Dispatcher struct {
	mu     sync.Mutex
	nextID uint64
	subs   map[string][]subscription
	after  []subscription
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for missing-handler warnings.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates an empty Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		subs:   make(map[string][]subscription),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Subscribe registers fn for command. Registrations are removed by id, so
// calling the returned function twice never removes another handler.
func (d *Dispatcher) Subscribe(command string, fn Handler) Unsubscribe {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.subs[command] = append(d.subs[command], subscription{id: id, fn: fn})
	d.mu.Unlock()

	return d.once(func() {
		d.subs[command] = without(d.subs[command], id)
		if len(d.subs[command]) == 0 {
			delete(d.subs, command)
		}
	})
}

// AfterEveryCommand registers fn to run after every Dispatch.
func (d *Dispatcher) AfterEveryCommand(fn func()) Unsubscribe {
	d.mu.Lock()
	d.nextID++
	id := d.nextID
	d.after = append(d.after, subscription{id: id, fn: func(any) { fn() }})
	d.mu.Unlock()

	return d.once(func() {
		d.after = without(d.after, id)
	})
}

// once wraps remove so it runs under the lock at most one time.
func (d *Dispatcher) once(remove func()) Unsubscribe {
	var done bool
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if done {
			return
		}
		done = true
		remove()
	}
}

func without(subs []subscription, id uint64) []subscription {
	for i, s := range subs {
		if s.id == id {
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}

// Dispatch runs every handler subscribed to command with payload, then every
// after-command handler. A command without subscribers is logged as a
// warning. It reports whether any command handler ran.
func (d *Dispatcher) Dispatch(command string, payload any) bool {
	d.mu.Lock()
	handlers := append([]subscription(nil), d.subs[command]...)
	after := append([]subscription(nil), d.after...)
	d.mu.Unlock()

	if len(handlers) == 0 {
		d.logger.Warn("no handlers for command", "command", command)
	}
	for _, s := range handlers {
		s.fn(payload)
	}
	for _, s := range after {
		s.fn(nil)
	}
	return len(handlers) > 0
}

// Has reports whether command has at least one subscriber.
func (d *Dispatcher) Has(command string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs[command]) > 0
}

// Count returns the number of handlers subscribed to command.
func (d *Dispatcher) Count(command string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.subs[command])
}
