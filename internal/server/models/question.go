package models

import "time"

// Question is owned by exactly one user; the owner reference is set at
// creation and never changed. OwnerUUID is resolved by the repository via a
// join and is what authorization compares against.
type Question struct {
	ID        int64
	UUID      string
	Content   string
	UserID    int64
	OwnerUUID string
	CreatedAt time.Time
}
