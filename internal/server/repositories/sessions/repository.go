package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/askboard/internal/server/models"
)

// ErrDuplicateAccessToken is returned by Create when the generated token
// value collides with an existing row. Callers retry issuance with a fresh
// token.
var ErrDuplicateAccessToken = errors.New("duplicate access token")

type Repository interface {
	Create(ctx context.Context, session *models.Session) (*models.Session, error)
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	MarkSignedOut(ctx context.Context, sessionUUID string, at time.Time) error
}
