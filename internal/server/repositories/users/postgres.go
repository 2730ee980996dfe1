// Package users provides the PostgreSQL-backed repository for identity
// records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/models"
)

const userColumns = `id, uuid, first_name, last_name, username, email, password, salt,
		country, about_me, dob, contact_number, role, created_at`

// PostgresRepository implements user storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a new user and fills in the generated row id. Uniqueness
// races that slip past the signup pre-checks surface as the corresponding
// taken-error via the constraint name.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (uuid, first_name, last_name, username, email, password, salt,
			country, about_me, dob, contact_number, role)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		user.UUID, user.FirstName, user.LastName, user.UserName, user.Email,
		user.Password, user.Salt, user.Country, user.AboutMe, user.DOB,
		user.ContactNumber, user.Role).Scan(&user.ID)

	if err != nil {
		if constraint, ok := dbx.UniqueViolation(err); ok {
			switch constraint {
			case "users_username_key":
				return nil, common.ErrUsernameTaken
			case "users_email_key":
				return nil, common.ErrEmailTaken
			}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.UUID, &user.FirstName, &user.LastName, &user.UserName,
		&user.Email, &user.Password, &user.Salt, &user.Country, &user.AboutMe,
		&user.DOB, &user.ContactNumber, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, userName)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *PostgresRepository) GetByUUID(ctx context.Context, uuid string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE uuid = $1`, uuid)
}

// Delete removes a user by public uuid. Deleting an absent user returns
// common.ErrNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, uuid string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE uuid = $1`, uuid)
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
