package event

import (
	"reflect"
	"sync"
)

// Bus is a double-buffered frame event queue. Events published during frame
// N become drainable in frame N+1, after Rotate runs at the frame boundary.
// Publishing is safe from concurrently running systems; draining happens on
// the frame goroutine only.
type Bus struct {
	mu    sync.Mutex
	front map[reflect.Type][]any
	back  map[reflect.Type][]any
}

func NewBus() *Bus {
	return &Bus{
		front: make(map[reflect.Type][]any),
		back:  make(map[reflect.Type][]any),
	}
}

// Publish queues an event for delivery next frame.
func Publish[T any](b *Bus, ev T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	b.back[t] = append(b.back[t], ev)
	b.mu.Unlock()
}

// Drain returns all front-buffer events of type T in publish order. Repeated
// drains within one frame see the same events; they are discarded at the
// next Rotate.
func Drain[T any](b *Bus) []T {
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.mu.Lock()
	queued := b.front[t]
	b.mu.Unlock()
	if len(queued) == 0 {
		return nil
	}
	out := make([]T, 0, len(queued))
	for _, ev := range queued {
		out = append(out, ev.(T))
	}
	return out
}

// Rotate swaps back to front and clears the new back buffer. Runs once per
// frame, before any system that drains.
func (b *Bus) Rotate() {
	b.mu.Lock()
	b.front, b.back = b.back, b.front
	for t := range b.back {
		b.back[t] = b.back[t][:0]
	}
	b.mu.Unlock()
}
