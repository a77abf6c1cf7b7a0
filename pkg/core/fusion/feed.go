package fusion

import "sync"

// Change is one content offset transition.
type Change struct {
	Old, New float64
}

type subscriber struct {
	fn     func(Change)
	active bool
}

// OffsetFeed fans offset changes out to subscribers synchronously, in
// subscription order. Handlers may subscribe or unsubscribe while a change
// is being delivered; a handler removed mid-delivery is not called again.
type OffsetFeed struct {
	mu   sync.Mutex
	subs []*subscriber
}

// Subscribe registers fn and returns a function that removes it. The
// returned function is idempotent.
func (f *OffsetFeed) Subscribe(fn func(Change)) (unsubscribe func()) {
	sub := &subscriber{fn: fn, active: true}
	f.mu.Lock()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { f.remove(sub) })
	}
}

func (f *OffsetFeed) remove(sub *subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub.active = false
	for i, s := range f.subs {
		if s == sub {
			f.subs = append(f.subs[:i], f.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers c to every active subscriber.
func (f *OffsetFeed) Publish(c Change) {
	f.mu.Lock()
	subs := make([]*subscriber, len(f.subs))
	copy(subs, f.subs)
	f.mu.Unlock()

	for _, s := range subs {
		f.mu.Lock()
		active := s.active
		f.mu.Unlock()
		if active {
			s.fn(c)
		}
	}
}

// Count returns the number of active subscribers.
func (f *OffsetFeed) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
