// Package questions provides the PostgreSQL-backed repository for questions.
// Reads join the owner so authorization can compare against the owner uuid.
package questions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/models"
)

const selectQuestion = `
		SELECT q.id, q.uuid, q.content, q.user_id, u.uuid, q.created_at
		FROM questions q
		JOIN users u ON u.id = q.user_id`

// PostgresRepository implements question storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a new question and fills in the generated row id.
func (r *PostgresRepository) Create(ctx context.Context, question *models.Question) (*models.Question, error) {
	query := `
		INSERT INTO questions (uuid, content, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		question.UUID, question.Content, question.UserID, question.CreatedAt).Scan(&question.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return question, nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]*models.Question, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Question
	for rows.Next() {
		var item models.Question
		if err := rows.Scan(
			&item.ID, &item.UUID, &item.Content, &item.UserID, &item.OwnerUUID, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Question, error) {
	return r.selectMany(ctx, selectQuestion+` ORDER BY q.created_at`)
}

func (r *PostgresRepository) GetAllByUser(ctx context.Context, userUUID string) ([]*models.Question, error) {
	return r.selectMany(ctx, selectQuestion+` WHERE u.uuid = $1 ORDER BY q.created_at`, userUUID)
}

func (r *PostgresRepository) GetByUUID(ctx context.Context, uuid string) (*models.Question, error) {
	question := &models.Question{}
	err := r.db.QueryRowContext(ctx, selectQuestion+` WHERE q.uuid = $1`, uuid).Scan(
		&question.ID, &question.UUID, &question.Content, &question.UserID,
		&question.OwnerUUID, &question.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return question, nil
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, uuid string, content string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE questions SET content = $2 WHERE uuid = $1`, uuid, content)
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

func (r *PostgresRepository) Delete(ctx context.Context, uuid string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE uuid = $1`, uuid)
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
