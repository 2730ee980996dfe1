// Package services implements the business operations of the server:
// signup/signin/signout, session resolution, and the ownership/role rules
// that gate every question, answer and user mutation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/server/auth"
	"github.com/dmitrijs2005/askboard/internal/server/config"
	"github.com/dmitrijs2005/askboard/internal/server/models"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/sessions"
)

// issueMaxRetries bounds the retry loop on access-token collisions. With a
// random jti per token a collision is practically impossible, but the
// contract handles it rather than assuming it away.
const issueMaxRetries = 3

// SessionService is the access-token store and session validator. It issues
// sessions at signin, resolves bearer tokens into validated sessions, and
// stamps signout.
type SessionService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *SessionService {
	return &SessionService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AccessTokenValidityDuration,
	}
}

// Issue creates a new session for the user: a fresh signed token, login/expiry
// stamped now and now+validity. The unique constraint on the token column
// plus a bounded retry guarantees token uniqueness even under concurrent
// signins.
func (s *SessionService) Issue(ctx context.Context, user *models.User) (*models.Session, error) {
	repo := s.repomanager.Sessions(s.db)

	var session *models.Session
	backoff := retry.WithMaxRetries(issueMaxRetries, retry.NewConstant(time.Millisecond))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		token, err := auth.GenerateToken(user.UUID, s.jwtSecret, s.tokenValidity)
		if err != nil {
			return fmt.Errorf("error generating access token: %w", err)
		}

		loginAt := time.Now()
		created, err := repo.Create(ctx, &models.Session{
			UUID:        uuid.NewString(),
			UserID:      user.ID,
			AccessToken: token,
			LoginAt:     loginAt,
			ExpiresAt:   loginAt.Add(s.tokenValidity),
		})
		if err != nil {
			if errors.Is(err, sessions.ErrDuplicateAccessToken) {
				return retry.RetryableError(err)
			}
			return fmt.Errorf("error creating session: %w", err)
		}

		session = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Resolve turns a raw bearer token into a validated, non-expired, signed-in
// session together with its owning user.
//
// Failure modes:
//   - common.ErrNotAuthenticated: the token was never issued by this server
//     (bad signature) or no session row matches it.
//   - common.ErrSessionExpiredOrClosed: a session exists but is signed out
//     or past its expiry. Both terminal states are indistinguishable to
//     callers, and neither is ever revived.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, *models.User, error) {
	if _, err := auth.VerifyToken(token, s.jwtSecret); err != nil {
		return nil, nil, common.ErrNotAuthenticated
	}

	session, err := s.repomanager.Sessions(s.db).FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrNotAuthenticated
		}
		return nil, nil, fmt.Errorf("error searching session: %w", err)
	}

	if !session.Active(time.Now()) {
		return nil, nil, common.ErrSessionExpiredOrClosed
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrNotAuthenticated
		}
		return nil, nil, fmt.Errorf("error loading session user: %w", err)
	}

	return session, user, nil
}

// Invalidate stamps logout_at on the session. A session that lost the race
// and is already closed reports common.ErrSessionExpiredOrClosed; there is
// no silent re-stamp.
func (s *SessionService) Invalidate(ctx context.Context, session *models.Session) error {
	err := s.repomanager.Sessions(s.db).MarkSignedOut(ctx, session.UUID, time.Now())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrSessionExpiredOrClosed
		}
		return fmt.Errorf("error closing session: %w", err)
	}
	return nil
}
