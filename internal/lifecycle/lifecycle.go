// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package lifecycle implements the content state machines for articles and
// comments. Each lifecycle stage is a small state type deciding which
// transitions are legal from it; the resolver maps a persisted status code
// back to its state. Transitions mutate the item in place and never persist
// — persistence and event emission belong to the calling service.
//
// All state values are stateless and safe for concurrent use.
package lifecycle

import (
	"errors"
	"fmt"
)

// Effect tells the caller what a transition actually did. A no-op effect
// means the item was already in the requested stage: nothing changed and
// no event should be emitted.
type Effect int

const (
	EffectNone Effect = iota
	EffectTransitioned
)

// Transition operation names, used in conflict errors and logs.
const (
	OpPublish       = "publish"
	OpArchive       = "archive"
	OpUnarchive     = "unarchive"
	OpApprove       = "approve"
	OpReject        = "reject"
	OpDeleteByUser  = "delete_by_user"
	OpDeleteByAdmin = "delete_by_admin"
)

// StateConflictError reports a transition that is illegal from the item's
// current state.
type StateConflictError struct {
	Current   string
	Operation string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("state conflict: cannot %s from state %q", e.Operation, e.Current)
}

// IsStateConflict reports whether err is (or wraps) a state conflict.
func IsStateConflict(err error) bool {
	var sc *StateConflictError
	return errors.As(err, &sc)
}

// ErrUnknownStatus is returned by the resolvers for a status code no state
// claims. It indicates corrupt data, not a caller mistake.
var ErrUnknownStatus = errors.New("unknown content status")

func conflict(current, op string) (Effect, error) {
	return EffectNone, &StateConflictError{Current: current, Operation: op}
}
