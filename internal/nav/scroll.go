package nav

import "sync"

// ScrollSignal delivers vertical scroll offsets to subscribers.
// The returned cancel func releases the subscription and is safe to call more than once.
type ScrollSignal interface {
	Subscribe(fn func(offset int)) (cancel func())
}

// ScrollFeed is a ScrollSignal that broadcasts published offsets.
type ScrollFeed struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(int)
}

// NewScrollFeed returns an empty feed.
func NewScrollFeed() *ScrollFeed {
	return &ScrollFeed{subs: map[int]func(int){}}
}

// Subscribe registers fn until the returned cancel func is called.
func (f *ScrollFeed) Subscribe(fn func(offset int)) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.subs[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			f.mu.Unlock()
		})
	}
}

// Publish delivers offset to every current subscriber, in no particular order.
// Callbacks run outside the lock so they may unsubscribe themselves.
func (f *ScrollFeed) Publish(offset int) {
	f.mu.Lock()
	fns := make([]func(int), 0, len(f.subs))
	for _, fn := range f.subs {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(offset)
	}
}

// Subscribers returns the number of live subscriptions.
func (f *ScrollFeed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
