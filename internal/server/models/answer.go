package models

import "time"

// Answer belongs to a question and is owned by the user who posted it.
type Answer struct {
	ID           int64
	UUID         string
	Content      string
	QuestionID   int64
	QuestionUUID string
	UserID       int64
	OwnerUUID    string
	CreatedAt    time.Time
}
