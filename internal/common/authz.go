package common

// Owned is implemented by every record that belongs to exactly one user.
type Owned interface {
	OwnerID() int
}

// CanModify is the single ownership predicate applied before any mutation of an owned record.
func CanModify(resource Owned, actorID int) bool {
	if resource == nil || actorID < 1 {
		return false
	}
	return resource.OwnerID() == actorID
}

// Authorize returns ErrForbidden when actorID may not modify resource.
func Authorize(resource Owned, actorID int) error {
	if !CanModify(resource, actorID) {
		return ErrForbidden
	}
	return nil
}
