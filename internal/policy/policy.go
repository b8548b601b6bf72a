// Package policy decides whether an acting identity may read or mutate a
// domain object. Rules are fixed: reads are open, writes require ownership.
// Handlers and services compose these checks explicitly instead of relying
// on shared base behavior.
package policy

import (
	"quill/internal/models"
)

// Action describes what the actor wants to do with the object.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Decision is the outcome of a policy check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

// AnonymousID is the actor value for unauthenticated requests.
const AnonymousID uint = 0

// Owned is any domain object carrying exactly one owning user.
// Comments and likes report their own author, never the parent article's.
type Owned interface {
	OwnerID() uint
}

// Decide returns Allow when the actor may perform the action on the object.
// Reads are always allowed, including for anonymous actors. Updates and
// deletes are allowed iff the actor is the object's owning user.
func Decide(actorID uint, action Action, obj Owned) Decision {
	if action == ActionRead {
		return Allow
	}
	if actorID == AnonymousID {
		return Deny
	}
	if obj.OwnerID() == actorID {
		return Allow
	}
	return Deny
}

// Authorize converts a Deny into the matching application error: anonymous
// mutations surface as unauthenticated, everything else as forbidden.
func Authorize(actorID uint, action Action, obj Owned) error {
	if Decide(actorID, action, obj) == Allow {
		return nil
	}
	if actorID == AnonymousID {
		return models.NewUnauthenticatedError("Authentication required")
	}
	return models.NewForbiddenError("You can only " + string(action) + " your own content")
}
