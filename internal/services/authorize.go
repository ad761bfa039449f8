package services

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotOwner is returned when the requester does not own the resource it tries to mutate.
var ErrNotOwner = errors.New("requester does not own the resource")

// Owned is any entity with a single owning identity.
type Owned interface {
	OwnerID() uuid.UUID
}

// Authorize allows a mutation iff requesterID is the owner of resource.
func Authorize(requesterID uuid.UUID, resource Owned) error {
	if requesterID == uuid.Nil || resource.OwnerID() != requesterID {
		return ErrNotOwner
	}
	return nil
}
