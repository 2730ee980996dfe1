package questions

import (
	"context"

	"github.com/dmitrijs2005/askboard/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, question *models.Question) (*models.Question, error)
	GetAll(ctx context.Context) ([]*models.Question, error)
	GetAllByUser(ctx context.Context, userUUID string) ([]*models.Question, error)
	GetByUUID(ctx context.Context, uuid string) (*models.Question, error)
	UpdateContent(ctx context.Context, uuid string, content string) error
	Delete(ctx context.Context, uuid string) error
}
