package domain

import "github.com/google/uuid"

// AssertOwner returns ErrAccessDenied unless the requester owns the resource.
func AssertOwner(resourceOwnerID, requesterID uuid.UUID) error {
	if resourceOwnerID != requesterID {
		return ErrAccessDenied
	}

	return nil
}
