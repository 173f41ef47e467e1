// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service orchestrates content writes: it runs the processing
// pipeline, drives the lifecycle state machines, persists through the
// stores and publishes events for the side-effect handlers. Reads go from
// the handlers straight to the stores; only mutations pass through here.
package service

import (
	"errors"

	"inkwell/internal/events"
)

var (
	// ErrNotFound is returned when the target content item does not exist.
	ErrNotFound = errors.New("service: not found")
	// ErrForbidden is returned when the actor may not perform the operation
	// on this item.
	ErrForbidden = errors.New("service: forbidden")
)

// EventPublisher is the write side of the event bus.
type EventPublisher interface {
	Publish(ev events.Event)
}
