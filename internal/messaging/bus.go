// Package messaging provides the in-process signal bus that decouples the
// HTTP layer from session handling: the transport raises an unauthorized
// notification without knowing who reacts to it.
package messaging

import "sync"

// Bus is a callback registry for cross-cutting notifications. Dispatch is
// synchronous and in subscription order.
type Bus struct {
	mu           sync.Mutex
	unauthorized []func()
}

func NewBus() *Bus {
	return &Bus{}
}

// SubscribeUnauthorized registers a callback invoked on every unauthorized
// notification.
func (b *Bus) SubscribeUnauthorized(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unauthorized = append(b.unauthorized, fn)
}

// EmitUnauthorized notifies all subscribers that a non-public request was
// rejected with 401.
func (b *Bus) EmitUnauthorized() {
	b.mu.Lock()
	subscribers := make([]func(), len(b.unauthorized))
	copy(subscribers, b.unauthorized)
	b.mu.Unlock()

	// Run outside the lock so a subscriber may subscribe or emit again.
	for _, fn := range subscribers {
		fn()
	}
}
