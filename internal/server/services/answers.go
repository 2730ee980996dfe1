package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/models"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/repomanager"
)

// AnswerService implements answer CRUD behind the session validator and the
// ownership rules.
type AnswerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
}

func NewAnswerService(db *sql.DB, m repomanager.RepositoryManager, sessions *SessionService) *AnswerService {
	return &AnswerService{db: db, repomanager: m, sessions: sessions}
}

// Create posts an answer under a question; the acting user becomes the
// owner. The question existence check and the insert run in one transaction
// so the answer cannot land under a concurrently deleted question.
func (s *AnswerService) Create(ctx context.Context, token string, questionUUID string, content string) (*models.Answer, error) {
	_, actor, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	var answer *models.Answer
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		question, err := s.repomanager.Questions(tx).GetByUUID(ctx, questionUUID)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrResourceNotFound
			}
			return fmt.Errorf("error loading question: %w", err)
		}

		answer, err = s.repomanager.Answers(tx).Create(ctx, &models.Answer{
			UUID:         uuid.NewString(),
			Content:      content,
			QuestionID:   question.ID,
			QuestionUUID: question.UUID,
			UserID:       actor.ID,
			OwnerUUID:    actor.UUID,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			return fmt.Errorf("error creating answer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return answer, nil
}

// AllForQuestion lists every answer under a question. An unknown question
// reports ErrResourceNotFound.
func (s *AnswerService) AllForQuestion(ctx context.Context, token string, questionUUID string) ([]*models.Answer, error) {
	if _, _, err := s.sessions.Resolve(ctx, token); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Questions(s.db).GetByUUID(ctx, questionUUID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading question: %w", err)
	}

	result, err := s.repomanager.Answers(s.db).GetAllForQuestion(ctx, questionUUID)
	if err != nil {
		return nil, fmt.Errorf("error listing answers: %w", err)
	}
	return result, nil
}

func (s *AnswerService) getAnswer(ctx context.Context, uuid string) (*models.Answer, error) {
	answer, err := s.repomanager.Answers(s.db).GetByUUID(ctx, uuid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading answer: %w", err)
	}
	return answer, nil
}

// Edit replaces the answer content. Only the owner may edit; the admin role
// does not override here.
func (s *AnswerService) Edit(ctx context.Context, token string, answerUUID string, content string) (*models.Answer, error) {
	_, actor, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	answer, err := s.getAnswer(ctx, answerUUID)
	if err != nil {
		return nil, err
	}

	if !canEdit(actor, answer.OwnerUUID) {
		return nil, common.ErrNotAuthorized
	}

	if err := s.repomanager.Answers(s.db).UpdateContent(ctx, answerUUID, content); err != nil {
		return nil, fmt.Errorf("error updating answer: %w", err)
	}

	answer.Content = content
	return answer, nil
}

// Delete removes the answer. The owner or an admin may delete.
func (s *AnswerService) Delete(ctx context.Context, token string, answerUUID string) error {
	_, actor, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return err
	}

	answer, err := s.getAnswer(ctx, answerUUID)
	if err != nil {
		return err
	}

	if !canDelete(actor, answer.OwnerUUID) {
		return common.ErrNotAuthorized
	}

	if err := s.repomanager.Answers(s.db).Delete(ctx, answerUUID); err != nil {
		return fmt.Errorf("error deleting answer: %w", err)
	}
	return nil
}
