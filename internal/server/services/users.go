package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/auth"
	"github.com/dmitrijs2005/askboard/internal/server/models"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/repomanager"
)

// UserService implements signup, signin, signout, profile lookup and the
// admin-only user deletion.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, sessions *SessionService) *UserService {
	return &UserService{db: db, repomanager: m, sessions: sessions}
}

// SignUp registers a new user. Username and email conflicts are rejected
// before any password hashing happens; the username check wins when both
// collide. The created user always starts with the "user" role.
func (s *UserService) SignUp(ctx context.Context, user *models.User, password string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	if _, err := repo.GetByUserName(ctx, user.UserName); err == nil {
		return nil, common.ErrUsernameTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	if _, err := repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	salt, digest, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user.UUID = uuid.NewString()
	user.Salt = salt
	user.Password = digest
	user.Role = models.RoleUser

	created, err := repo.Create(ctx, user)
	if err != nil {
		// a concurrent signup may win the uniqueness race after the
		// pre-checks passed
		if errors.Is(err, common.ErrUsernameTaken) || errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// SignIn validates the username/password pair and issues a new session.
func (s *UserService) SignIn(ctx context.Context, userName string, password string) (*models.Session, *models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrUnknownUser
		}
		return nil, nil, fmt.Errorf("error searching user: %w", err)
	}

	if !auth.VerifyPassword(password, user.Salt, user.Password) {
		return nil, nil, common.ErrBadCredentials
	}

	session, err := s.sessions.Issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

// SignOut resolves the bearer token and closes its session. Signing out an
// unknown token fails with ErrNotAuthenticated; signing out an expired or
// already-closed session fails with ErrSessionExpiredOrClosed.
func (s *UserService) SignOut(ctx context.Context, token string) (*models.User, error) {
	session, user, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Invalidate(ctx, session); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserProfile returns any user's profile to any valid session.
func (s *UserService) GetUserProfile(ctx context.Context, token string, userUUID string) (*models.User, error) {
	if _, _, err := s.sessions.Resolve(ctx, token); err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users(s.db).GetByUUID(ctx, userUUID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	return user, nil
}

// DeleteUser removes the target user. Requires the admin role; a missing
// target reports ErrResourceNotFound before the role check.
func (s *UserService) DeleteUser(ctx context.Context, token string, userUUID string) error {
	_, actor, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		if _, err := repo.GetByUUID(ctx, userUUID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrResourceNotFound
			}
			return fmt.Errorf("error loading user: %w", err)
		}

		if !actor.IsAdmin() {
			return common.ErrNotAuthorized
		}

		if err := repo.Delete(ctx, userUUID); err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrResourceNotFound
			}
			return fmt.Errorf("error deleting user: %w", err)
		}
		return nil
	})
}
