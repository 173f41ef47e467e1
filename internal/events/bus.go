// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Handler consumes events of the types it declares. Returned errors are
// logged and swallowed: side effects are best-effort and never surface to
// the request that triggered them.
type Handler interface {
	Name() string
	Handles() []Type
	Handle(ctx context.Context, ev Event) error
}

type task struct {
	handler Handler
	event   Event
}

// Bus dispatches events to subscribed handlers on a bounded worker pool.
// Publish never blocks the caller on a slow pool: when the queue is full
// the handler runs synchronously on the publishing goroutine instead of
// being dropped.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler

	tasks chan task
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewBus starts a bus with the given number of workers and queue capacity.
func NewBus(workers, queueSize int) *Bus {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	b := &Bus{
		handlers: make(map[Type][]Handler),
		tasks:    make(chan task, queueSize),
	}
	for i := 0; i < workers; i++ {
		b.wg.Add(1)
		go b.worker()
	}
	return b
}

// Subscribe registers a handler for every type it declares. Subscribe is
// meant to be called during startup, before events flow.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, t := range h.Handles() {
		b.handlers[t] = append(b.handlers[t], h)
	}
}

// Publish enqueues the event for every subscribed handler and returns.
// The request completes once the event is emitted, not once handlers
// finish.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	subscribed := b.handlers[ev.Type]
	b.mu.RUnlock()

	for _, h := range subscribed {
		select {
		case b.tasks <- task{handler: h, event: ev}:
		default:
			// Queue full: degrade to synchronous execution on the caller
			// rather than rejecting the side effect.
			slog.Warn("event queue full, running handler on caller",
				"handler", h.Name(), "event_type", ev.Type)
			b.run(task{handler: h, event: ev})
		}
	}
}

// Close stops accepting work and waits for in-flight handlers to finish.
func (b *Bus) Close() {
	b.closeOnce.Do(func() { close(b.tasks) })
	b.wg.Wait()
}

func (b *Bus) worker() {
	defer b.wg.Done()
	for t := range b.tasks {
		b.run(t)
	}
}

// run executes one handler invocation, containing panics and errors at the
// handler boundary.
func (b *Bus) run(t task) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("event handler panicked",
				"handler", t.handler.Name(),
				"event_type", t.event.Type,
				"event_id", t.event.ID,
				"panic", rec,
			)
		}
	}()

	start := time.Now()
	if err := t.handler.Handle(context.Background(), t.event); err != nil {
		slog.Error("event handler failed",
			"handler", t.handler.Name(),
			"event_type", t.event.Type,
			"event_id", t.event.ID,
			"item_id", t.event.ItemID,
			"error", err,
		)
		return
	}
	slog.Debug("event handled",
		"handler", t.handler.Name(),
		"event_type", t.event.Type,
		"duration", time.Since(start).String(),
	)
}
