// Package answers provides the PostgreSQL-backed repository for answers.
package answers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/models"
)

const selectAnswer = `
		SELECT a.id, a.uuid, a.content, a.question_id, q.uuid, a.user_id, u.uuid, a.created_at
		FROM answers a
		JOIN questions q ON q.id = a.question_id
		JOIN users u ON u.id = a.user_id`

// PostgresRepository implements answer storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists a new answer and fills in the generated row id.
func (r *PostgresRepository) Create(ctx context.Context, answer *models.Answer) (*models.Answer, error) {
	query := `
		INSERT INTO answers (uuid, content, question_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		answer.UUID, answer.Content, answer.QuestionID, answer.UserID, answer.CreatedAt).Scan(&answer.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return answer, nil
}

func (r *PostgresRepository) GetAllForQuestion(ctx context.Context, questionUUID string) ([]*models.Answer, error) {
	rows, err := r.db.QueryContext(ctx, selectAnswer+` WHERE q.uuid = $1 ORDER BY a.created_at`, questionUUID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Answer
	for rows.Next() {
		var item models.Answer
		if err := rows.Scan(
			&item.ID, &item.UUID, &item.Content, &item.QuestionID, &item.QuestionUUID,
			&item.UserID, &item.OwnerUUID, &item.CreatedAt,
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

func (r *PostgresRepository) GetByUUID(ctx context.Context, uuid string) (*models.Answer, error) {
	answer := &models.Answer{}
	err := r.db.QueryRowContext(ctx, selectAnswer+` WHERE a.uuid = $1`, uuid).Scan(
		&answer.ID, &answer.UUID, &answer.Content, &answer.QuestionID, &answer.QuestionUUID,
		&answer.UserID, &answer.OwnerUUID, &answer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return answer, nil
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, uuid string, content string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE answers SET content = $2 WHERE uuid = $1`, uuid, content)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE uuid = $1`, uuid)
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
