package identity

import "sync"

// subscriber serializes deliveries to one callback. Holding mu across
// every invocation gives the callback a happens-before chain between
// calls, so it may keep plain state without its own locking.
type subscriber struct {
	mu sync.Mutex
	fn func(current *Identity, initial bool)
}

// Broadcaster fans identity changes out to interested consumers, keyed by
// UID. It replaces the ambient current-user global: a subscriber receives
// the last known identity once at registration (flagged initial) and again
// on every change, with nil meaning signed out. Deliveries to a single
// subscriber are serialized, and the registration snapshot always arrives
// before any change published after it. Live comment streams use it to
// shut down when their user signs out.
type Broadcaster struct {
	mu      sync.Mutex
	seq     int
	subs    map[string]map[int]*subscriber
	current map[string]*Identity
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs:    make(map[string]map[int]*subscriber),
		current: make(map[string]*Identity),
	}
}

// Subscribe registers a callback for one UID and returns its unsubscribe
// function. The callback is invoked once with the last published identity
// for that UID (nil if none) and initial true, then with initial false on
// every subsequent Publish until unsubscribed. Unsubscribing twice is
// harmless.
func (b *Broadcaster) Subscribe(uid string, fn func(current *Identity, initial bool)) func() {
	sub := &subscriber{fn: fn}

	b.mu.Lock()
	b.seq++
	id := b.seq
	if b.subs[uid] == nil {
		b.subs[uid] = make(map[int]*subscriber)
	}
	b.subs[uid][id] = sub
	cur := b.current[uid]
	// Taking the subscriber lock before releasing the registry lock keeps
	// a concurrent Publish from delivering ahead of the initial snapshot.
	sub.mu.Lock()
	b.mu.Unlock()

	sub.fn(cur, true)
	sub.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if set, ok := b.subs[uid]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(b.subs, uid)
			}
		}
	}
}

// Publish records the identity as current for its UID and notifies that
// UID's subscribers. Pass nil to announce a sign-out. Callbacks run on the
// publishing goroutine, outside the registry lock.
func (b *Broadcaster) Publish(uid string, ident *Identity) {
	b.mu.Lock()
	if ident == nil {
		delete(b.current, uid)
	} else {
		b.current[uid] = ident
	}
	subs := make([]*subscriber, 0, len(b.subs[uid]))
	for _, sub := range b.subs[uid] {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		sub.mu.Lock()
		sub.fn(ident, false)
		sub.mu.Unlock()
	}
}

// Current returns the last published identity for a UID, or nil.
func (b *Broadcaster) Current(uid string) *Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current[uid]
}
