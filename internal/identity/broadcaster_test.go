package identity

import (
	"sync"
	"testing"
)

type delivery struct {
	ident   *Identity
	initial bool
}

func TestSubscribeInvokesImmediately(t *testing.T) {
	b := NewBroadcaster()

	var got []delivery
	unsubscribe := b.Subscribe("uid-1", func(ident *Identity, initial bool) {
		got = append(got, delivery{ident: ident, initial: initial})
	})
	defer unsubscribe()

	if len(got) != 1 {
		t.Fatalf("expected 1 immediate invocation, got %d", len(got))
	}
	if got[0].ident != nil {
		t.Errorf("expected nil identity before any publish, got %+v", got[0].ident)
	}
	if !got[0].initial {
		t.Error("registration delivery must be flagged initial")
	}
}

func TestSubscribeReceivesCurrentState(t *testing.T) {
	b := NewBroadcaster()
	ident := &Identity{UID: "uid-1", Email: "a@b.com"}
	b.Publish("uid-1", ident)

	var got delivery
	unsubscribe := b.Subscribe("uid-1", func(i *Identity, initial bool) {
		got = delivery{ident: i, initial: initial}
	})
	defer unsubscribe()

	if got.ident != ident || !got.initial {
		t.Errorf("registration callback got (%+v, %v), want the published identity flagged initial", got.ident, got.initial)
	}
}

func TestPublishNotifiesAndSignOutDeliversNil(t *testing.T) {
	b := NewBroadcaster()

	var got []delivery
	unsubscribe := b.Subscribe("uid-1", func(i *Identity, initial bool) {
		got = append(got, delivery{ident: i, initial: initial})
	})
	defer unsubscribe()

	ident := &Identity{UID: "uid-1"}
	b.Publish("uid-1", ident)
	b.Publish("uid-1", nil)

	if len(got) != 3 {
		t.Fatalf("expected 3 invocations (registration, publish, sign-out), got %d", len(got))
	}
	if got[1].ident != ident || got[1].initial {
		t.Errorf("publish delivered (%+v, %v), want the identity with initial false", got[1].ident, got[1].initial)
	}
	if got[2].ident != nil || got[2].initial {
		t.Errorf("sign-out delivered (%+v, %v), want (nil, false)", got[2].ident, got[2].initial)
	}
	if b.Current("uid-1") != nil {
		t.Error("Current should be nil after sign-out")
	}
}

func TestPublishIsScopedToUID(t *testing.T) {
	b := NewBroadcaster()

	calls := 0
	unsubscribe := b.Subscribe("uid-1", func(*Identity, bool) { calls++ })
	defer unsubscribe()

	b.Publish("uid-2", &Identity{UID: "uid-2"})

	if calls != 1 {
		t.Errorf("subscriber for uid-1 saw %d calls after a uid-2 publish, want 1 (registration only)", calls)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroadcaster()

	calls := 0
	unsubscribe := b.Subscribe("uid-1", func(*Identity, bool) { calls++ })
	unsubscribe()
	unsubscribe() // second call is harmless

	b.Publish("uid-1", &Identity{UID: "uid-1"})

	if calls != 1 {
		t.Errorf("expected no deliveries after unsubscribe, got %d calls", calls)
	}
}

func TestMultipleSubscribersAllNotified(t *testing.T) {
	b := NewBroadcaster()

	first, second := 0, 0
	u1 := b.Subscribe("uid-1", func(*Identity, bool) { first++ })
	defer u1()
	u2 := b.Subscribe("uid-1", func(*Identity, bool) { second++ })
	defer u2()

	b.Publish("uid-1", &Identity{UID: "uid-1"})

	if first != 2 || second != 2 {
		t.Errorf("expected both subscribers at 2 calls, got %d and %d", first, second)
	}
}

// Registering while another goroutine publishes for the same UID must be
// safe, and exactly the first delivery carries the initial flag. The
// callback keeps plain (unlocked) state on purpose: serialized delivery is
// what makes that legal.
func TestSubscribeDuringConcurrentPublishes(t *testing.T) {
	const publishes = 100

	b := NewBroadcaster()
	ident := &Identity{UID: "uid-1"}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < publishes; i++ {
			b.Publish("uid-1", ident)
		}
	}()

	var got []delivery
	unsubscribe := b.Subscribe("uid-1", func(i *Identity, initial bool) {
		got = append(got, delivery{ident: i, initial: initial})
	})
	wg.Wait()
	unsubscribe()

	if len(got) == 0 {
		t.Fatal("expected at least the registration delivery")
	}
	if !got[0].initial {
		t.Error("first delivery must be the registration snapshot")
	}
	for i, d := range got[1:] {
		if d.initial {
			t.Fatalf("delivery %d flagged initial; only the first may be", i+1)
		}
	}
}

// A change published after registration completes must never be delivered
// before the registration snapshot, so a subscriber's first-seen value is
// never staler than a change it already received.
func TestInitialSnapshotPrecedesLaterChanges(t *testing.T) {
	b := NewBroadcaster()
	before := &Identity{UID: "uid-1", Email: "before@b.com"}
	after := &Identity{UID: "uid-1", Email: "after@b.com"}
	b.Publish("uid-1", before)

	var got []delivery
	unsubscribe := b.Subscribe("uid-1", func(i *Identity, initial bool) {
		got = append(got, delivery{ident: i, initial: initial})
	})
	defer unsubscribe()
	b.Publish("uid-1", after)

	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(got))
	}
	if got[0].ident != before || !got[0].initial {
		t.Errorf("first delivery = (%v, %v), want the pre-registration state flagged initial", got[0].ident, got[0].initial)
	}
	if got[1].ident != after || got[1].initial {
		t.Errorf("second delivery = (%v, %v), want the later change with initial false", got[1].ident, got[1].initial)
	}
}
