package events

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

// recordingHandler counts invocations and optionally blocks or fails.
type recordingHandler struct {
	name    string
	types   []Type
	calls   atomic.Int64
	started chan struct{} // if non-nil, receives one signal per Handle entry
	block   chan struct{} // if non-nil, Handle waits on it
	fail    error
	doPanic bool

	mu   sync.Mutex
	seen []Event
}

func (h *recordingHandler) Name() string    { return h.name }
func (h *recordingHandler) Handles() []Type { return h.types }

func (h *recordingHandler) Handle(_ context.Context, ev Event) error {
	if h.started != nil {
		h.started <- struct{}{}
	}
	if h.block != nil {
		<-h.block
	}
	if h.doPanic {
		panic("handler exploded")
	}
	h.calls.Add(1)
	h.mu.Lock()
	h.seen = append(h.seen, ev)
	h.mu.Unlock()
	return h.fail
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

// TestPublishDispatchesToSubscribers verifies async delivery to every
// handler subscribed to the event type, and only those.
func TestPublishDispatchesToSubscribers(t *testing.T) {
	bus := NewBus(2, 8)
	defer bus.Close()

	published := &recordingHandler{name: "a", types: []Type{TypeArticlePublished}}
	liked := &recordingHandler{name: "b", types: []Type{TypeArticleLiked}}
	bus.Subscribe(published)
	bus.Subscribe(liked)

	ev := New(TypeArticlePublished, uuid.New(), uuid.New(), nil)
	bus.Publish(ev)

	waitFor(t, func() bool { return published.calls.Load() == 1 })
	if liked.calls.Load() != 0 {
		t.Errorf("unsubscribed handler invoked %d times", liked.calls.Load())
	}

	published.mu.Lock()
	got := published.seen[0]
	published.mu.Unlock()
	if got.ItemID != ev.ItemID || got.Type != ev.Type {
		t.Errorf("delivered event mismatch: %+v", got)
	}
}

// TestPublishDoesNotBlockCaller verifies fire-and-forget: Publish returns
// while the handler is still running.
func TestPublishDoesNotBlockCaller(t *testing.T) {
	bus := NewBus(1, 4)

	release := make(chan struct{})
	slow := &recordingHandler{name: "slow", types: []Type{TypeArticlePublished}, block: release}
	bus.Subscribe(slow)

	done := make(chan struct{})
	go func() {
		bus.Publish(New(TypeArticlePublished, uuid.New(), uuid.New(), nil))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a busy handler")
	}

	close(release)
	bus.Close()
}

// TestQueueFullRunsOnCaller verifies the caller-runs degradation: with the
// single worker blocked and the queue full, Publish executes the handler
// synchronously instead of dropping the event.
func TestQueueFullRunsOnCaller(t *testing.T) {
	bus := NewBus(1, 1)

	release := make(chan struct{})
	started := make(chan struct{}, 4)
	gate := &recordingHandler{
		name:    "gate",
		types:   []Type{TypeArticlePublished},
		started: started,
		block:   release,
	}
	counted := &recordingHandler{name: "counted", types: []Type{TypeArticleLiked}}
	bus.Subscribe(gate)
	bus.Subscribe(counted)

	// Occupy the worker and wait until it is inside the handler, then fill
	// the one queue slot.
	bus.Publish(New(TypeArticlePublished, uuid.New(), uuid.New(), nil))
	<-started
	bus.Publish(New(TypeArticlePublished, uuid.New(), uuid.New(), nil))

	// The next publish finds the queue full; its handler must run inline,
	// so the call count rises before the pool is released.
	bus.Publish(New(TypeArticleLiked, uuid.New(), uuid.New(), nil))

	if counted.calls.Load() == 0 {
		t.Error("expected caller-runs execution while pool is saturated")
	}

	close(release)
	bus.Close()
}

// TestHandlerErrorIsSwallowed verifies a failing handler neither panics the
// worker nor prevents later deliveries.
func TestHandlerErrorIsSwallowed(t *testing.T) {
	bus := NewBus(1, 4)
	defer bus.Close()

	failing := &recordingHandler{
		name:  "failing",
		types: []Type{TypeArticlePublished},
		fail:  errors.New("downstream broken"),
	}
	bus.Subscribe(failing)

	bus.Publish(New(TypeArticlePublished, uuid.New(), uuid.New(), nil))
	bus.Publish(New(TypeArticlePublished, uuid.New(), uuid.New(), nil))

	waitFor(t, func() bool { return failing.calls.Load() == 2 })
}

// TestHandlerPanicIsContained verifies a panicking handler does not kill
// the worker pool.
func TestHandlerPanicIsContained(t *testing.T) {
	bus := NewBus(1, 4)
	defer bus.Close()

	bad := &recordingHandler{name: "bad", types: []Type{TypeArticlePublished}, doPanic: true}
	good := &recordingHandler{name: "good", types: []Type{TypeArticlePublished}}
	bus.Subscribe(bad)
	bus.Subscribe(good)

	bus.Publish(New(TypeArticlePublished, uuid.New(), uuid.New(), nil))

	waitFor(t, func() bool { return good.calls.Load() == 1 })
}
