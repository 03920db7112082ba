package notify

import "sync"

type Sink interface {
	Notify(Signal)
}

// Func adapts a plain function to a Sink.
type Func func(Signal)

func (f Func) Notify(s Signal) {
	if f != nil {
		f(s)
	}
}

type discard struct{}

func (discard) Notify(Signal) {}

var Discard Sink = discard{}

type multi []Sink

func (m multi) Notify(s Signal) {
	for _, sink := range m {
		sink.Notify(s)
	}
}

// Multi fans a signal out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multi, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

const defaultBufferLimit = 40

// Buffer keeps the most recent signals. Safe for concurrent use.
type Buffer struct {
	mu    sync.Mutex
	limit int
	items []Signal
}

func NewBuffer(limit int) *Buffer {
	if limit <= 0 {
		limit = defaultBufferLimit
	}
	return &Buffer{limit: limit}
}

func (b *Buffer) Notify(s Signal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.limit <= 0 {
		b.limit = defaultBufferLimit
	}
	b.items = append(b.items, s)
	if len(b.items) > b.limit {
		b.items = b.items[len(b.items)-b.limit:]
	}
}

// Drain returns the buffered signals oldest first and empties the buffer.
func (b *Buffer) Drain() []Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.items
	b.items = nil
	return out
}

func (b *Buffer) Signals() []Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Signal, len(b.items))
	copy(out, b.items)
	return out
}

func (b *Buffer) Last() (Signal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.items) == 0 {
		return Signal{}, false
	}
	return b.items[len(b.items)-1], true
}

// Errors returns the buffered error-level signals.
func (b *Buffer) Errors() []Signal {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Signal
	for _, s := range b.items {
		if s.IsError() {
			out = append(out, s)
		}
	}
	return out
}
