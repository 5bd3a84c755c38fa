// Package eventbus dispatches typed events to in-process subscribers.
// Library packages publish through the global bus; publishing is a no-op
// until a bus is installed with Use.
package eventbus

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"
)

// Handler processes events of type T.
type Handler[T any] func(context.Context, T)

type subscription struct {
	id uint64
	fn func(context.Context, any)
}

// Bus is a synchronous in-process event dispatcher. Handlers run on the
// publishing goroutine in subscription order.
type Bus struct {
	mu       sync.RWMutex
	next     uint64
	handlers map[reflect.Type][]subscription
}

// New creates a new Bus.
func New() *Bus { return &Bus{handlers: make(map[reflect.Type][]subscription)} }

func (b *Bus) subscribe(t reflect.Type, fn func(context.Context, any)) (unsubscribe func()) {
	b.mu.Lock()
	b.next++
	id := b.next
	b.handlers[t] = append(b.handlers[t], subscription{id: id, fn: fn})
	b.mu.Unlock()
	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			subs := b.handlers[t]
			for i, s := range subs {
				if s.id == id {
					subs = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
			if len(subs) == 0 {
				delete(b.handlers, t)
			} else {
				b.handlers[t] = subs
			}
		})
	}
}

func (b *Bus) emit(ctx context.Context, t reflect.Type, e any) {
	b.mu.RLock()
	subs := b.handlers[t]
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(ctx, e)
	}
}

// On registers h with b.
func On[T any](b *Bus, h Handler[T]) (unsubscribe func()) {
	t := reflect.TypeFor[T]()
	return b.subscribe(t, func(ctx context.Context, v any) { h(ctx, v.(T)) })
}

// Emit dispatches e to the handlers b holds for T.
func Emit[T any](ctx context.Context, b *Bus, e T) {
	if b == nil {
		return
	}
	b.emit(ctx, reflect.TypeFor[T](), e)
}

var global atomic.Pointer[Bus]

// Use sets the global bus. Passing nil disables event publishing.
func Use(b *Bus) { global.Store(b) }

// Subscribe registers h with the global bus. Without a global bus it does
// nothing.
func Subscribe[T any](h Handler[T]) (unsubscribe func()) {
	if b := global.Load(); b != nil {
		return On(b, h)
	}
	return func() {}
}

// Publish sends e through the global bus.
func Publish[T any](ctx context.Context, e T) {
	Emit(ctx, global.Load(), e)
}
