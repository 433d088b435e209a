package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind tells which operation moved the balance.
type EntryKind string

// Entry kinds.
const (
	EntryDeposit  EntryKind = "deposit"
	EntryPurchase EntryKind = "purchase"
	EntryReset    EntryKind = "reset"
)

// Entry holds a balance change of a user.
type Entry struct {
	ID        int64     `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Amount    int64     `json:"amount"` // negative for debits
	Kind      EntryKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateEntryParams is the input data to record a balance change.
type CreateEntryParams struct {
	UserID uuid.UUID `json:"user_id"`
	Amount int64     `json:"amount"`
	Kind   EntryKind `json:"kind"`
}

// ListEntriesParams is the input data to list the entries of a user.
type ListEntriesParams struct {
	UserID uuid.UUID `json:"user_id"`
	Limit  int32     `json:"limit"`
	Offset int32     `json:"offset"`
}
