// Package permissions decides whether an acting user may perform an
// operation on a resource. Decisions are pure: callers look up the
// actor's board participation and pass it in, nothing here touches
// storage.
package permissions

import "github.com/goalboard/goalboard-api/internal/models"

// Action is the requested operation on a resource.
type Action int

const (
	ActionRead Action = iota
	ActionWrite
	ActionDelete
)

// Rule decides access for one resource kind. The set of rules is
// closed: one implementation per kind, dispatched explicitly rather
// than probed at runtime.
type Rule interface {
	Allow(membership *models.BoardParticipant, action Action) bool
}

// BoardRule: any participant may read, only the owner may write or
// delete the board itself.
type BoardRule struct{}

func (BoardRule) Allow(membership *models.BoardParticipant, action Action) bool {
	if membership == nil {
		return false
	}
	if action == ActionRead {
		return true
	}
	return membership.Role == models.RoleOwner
}

// CategoryRule: any participant may read, owner and writer tiers may
// write or delete categories on the board.
type CategoryRule struct{}

func (CategoryRule) Allow(membership *models.BoardParticipant, action Action) bool {
	if membership == nil {
		return false
	}
	if action == ActionRead {
		return true
	}
	return membership.Role.CanWrite()
}

// GoalRule: same tiers as categories, scoped through category to board.
type GoalRule struct{}

func (GoalRule) Allow(membership *models.BoardParticipant, action Action) bool {
	return CategoryRule{}.Allow(membership, action)
}

// CommentRule additionally requires authorship for mutation: a
// participant who is not the author may read but never edit or delete.
type CommentRule struct {
	AuthorID uint64
	ActorID  uint64
}

func (r CommentRule) Allow(membership *models.BoardParticipant, action Action) bool {
	if membership == nil {
		return false
	}
	if action == ActionRead {
		return true
	}
	return r.ActorID == r.AuthorID
}
