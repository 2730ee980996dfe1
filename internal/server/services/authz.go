package services

import "github.com/dmitrijs2005/askboard/internal/server/models"

// Resource authorization rules. Editing is strictly owner-only; the admin
// role overrides ownership on delete and nowhere else.

func isOwner(actor *models.User, ownerUUID string) bool {
	return actor.UUID == ownerUUID
}

func canEdit(actor *models.User, ownerUUID string) bool {
	return isOwner(actor, ownerUUID)
}

func canDelete(actor *models.User, ownerUUID string) bool {
	return isOwner(actor, ownerUUID) || actor.IsAdmin()
}
