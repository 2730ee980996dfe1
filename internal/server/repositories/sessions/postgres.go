// Package sessions provides the PostgreSQL-backed access-token store.
// Sessions are inserted at signin and updated exactly once at signout;
// rows are never deleted.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/models"
)

// PostgresRepository implements session storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a new session row. A collision on the access-token unique
// constraint is reported as ErrDuplicateAccessToken so issuance can retry.
func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) (*models.Session, error) {
	query := `
		INSERT INTO sessions (uuid, user_id, access_token, login_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		session.UUID, session.UserID, session.AccessToken,
		session.LoginAt, session.ExpiresAt).Scan(&session.ID)

	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok && constraint == "sessions_access_token_key" {
			return nil, ErrDuplicateAccessToken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return session, nil
}

// FindByToken looks a session up by exact token value, the sole lookup key.
func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, uuid, user_id, access_token, login_at, expires_at, logout_at
		FROM sessions
		WHERE access_token = $1
	`
	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.UUID, &session.UserID, &session.AccessToken,
		&session.LoginAt, &session.ExpiresAt, &session.LogoutAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

// MarkSignedOut stamps logout_at on an active session. The logout_at IS NULL
// guard makes the terminal state unrevivable even under concurrent signouts;
// a row already closed reports common.ErrNotFound.
func (r *PostgresRepository) MarkSignedOut(ctx context.Context, sessionUUID string, at time.Time) error {
	query := `
		UPDATE sessions SET logout_at = $2
		WHERE uuid = $1 AND logout_at IS NULL
	`
	res, err := r.db.ExecContext(ctx, query, sessionUUID, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
