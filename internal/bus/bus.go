// Package bus carries the process-wide notification signals. Any component
// may post or dismiss notifications through a Bus without holding a
// reference to the notification store; the store subscribes at construction.
package bus

import "sync"

// PostSignal asks the notification store to create a notification.
type PostSignal struct {
	ID      string
	Title   string
	Body    string
	Type    string
	Icon    string
	AppName string
}

// DismissSignal asks the notification store to remove one notification.
type DismissSignal struct {
	ID string
}

// Bus dispatches signals to subscribers synchronously, in subscription
// order, on the caller's goroutine.
type Bus struct {
	mu          sync.Mutex
	nextID      int
	posts       map[int]func(PostSignal)
	dismisses   map[int]func(DismissSignal)
	dismissAlls map[int]func()
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		posts:       make(map[int]func(PostSignal)),
		dismisses:   make(map[int]func(DismissSignal)),
		dismissAlls: make(map[int]func()),
	}
}

// Post delivers a post signal to all subscribers.
func (b *Bus) Post(s PostSignal) {
	for _, fn := range b.snapshotPosts() {
		fn(s)
	}
}

// Dismiss delivers a single-dismiss signal to all subscribers.
func (b *Bus) Dismiss(id string) {
	b.mu.Lock()
	fns := make([]func(DismissSignal), 0, len(b.dismisses))
	for _, fn := range b.dismisses {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(DismissSignal{ID: id})
	}
}

// DismissAll delivers a dismiss-all signal to all subscribers.
func (b *Bus) DismissAll() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.dismissAlls))
	for _, fn := range b.dismissAlls {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// OnPost registers a post subscriber and returns an unsubscribe function.
func (b *Bus) OnPost(fn func(PostSignal)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.posts[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.posts, id)
	}
}

// OnDismiss registers a single-dismiss subscriber and returns an
// unsubscribe function.
func (b *Bus) OnDismiss(fn func(DismissSignal)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.dismisses[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.dismisses, id)
	}
}

// OnDismissAll registers a dismiss-all subscriber and returns an
// unsubscribe function.
func (b *Bus) OnDismissAll(fn func()) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.dismissAlls[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.dismissAlls, id)
	}
}

func (b *Bus) snapshotPosts() []func(PostSignal) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fns := make([]func(PostSignal), 0, len(b.posts))
	for _, fn := range b.posts {
		fns = append(fns, fn)
	}
	return fns
}
