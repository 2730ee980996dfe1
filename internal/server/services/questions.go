package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/server/models"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/repomanager"
)

// QuestionService implements question CRUD behind the session validator and
// the ownership rules.
type QuestionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sessions    *SessionService
}

func NewQuestionService(db *sql.DB, m repomanager.RepositoryManager, sessions *SessionService) *QuestionService {
	return &QuestionService{db: db, repomanager: m, sessions: sessions}
}

// Create posts a new question; the acting user becomes the owner.
func (s *QuestionService) Create(ctx context.Context, token string, content string) (*models.Question, error) {
	_, actor, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		UUID:      uuid.NewString(),
		Content:   content,
		UserID:    actor.ID,
		OwnerUUID: actor.UUID,
		CreatedAt: time.Now(),
	}

	created, err := s.repomanager.Questions(s.db).Create(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("error creating question: %w", err)
	}

	return created, nil
}

// All lists every question; requires only a valid session.
func (s *QuestionService) All(ctx context.Context, token string) ([]*models.Question, error) {
	if _, _, err := s.sessions.Resolve(ctx, token); err != nil {
		return nil, err
	}

	result, err := s.repomanager.Questions(s.db).GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	return result, nil
}

// AllByUser lists the questions posted by the given user. An unknown user
// reports ErrResourceNotFound.
func (s *QuestionService) AllByUser(ctx context.Context, token string, userUUID string) ([]*models.Question, error) {
	if _, _, err := s.sessions.Resolve(ctx, token); err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Users(s.db).GetByUUID(ctx, userUUID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	result, err := s.repomanager.Questions(s.db).GetAllByUser(ctx, userUUID)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	return result, nil
}

func (s *QuestionService) getQuestion(ctx context.Context, uuid string) (*models.Question, error) {
	question, err := s.repomanager.Questions(s.db).GetByUUID(ctx, uuid)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error loading question: %w", err)
	}
	return question, nil
}

// Edit replaces the question content. Only the owner may edit; the admin
// role does not override here.
func (s *QuestionService) Edit(ctx context.Context, token string, questionUUID string, content string) (*models.Question, error) {
	_, actor, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	question, err := s.getQuestion(ctx, questionUUID)
	if err != nil {
		return nil, err
	}

	if !canEdit(actor, question.OwnerUUID) {
		return nil, common.ErrNotAuthorized
	}

	if err := s.repomanager.Questions(s.db).UpdateContent(ctx, questionUUID, content); err != nil {
		return nil, fmt.Errorf("error updating question: %w", err)
	}

	question.Content = content
	return question, nil
}

// Delete removes the question. The owner or an admin may delete.
func (s *QuestionService) Delete(ctx context.Context, token string, questionUUID string) error {
	_, actor, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return err
	}

	question, err := s.getQuestion(ctx, questionUUID)
	if err != nil {
		return err
	}

	if !canDelete(actor, question.OwnerUUID) {
		return common.ErrNotAuthorized
	}

	if err := s.repomanager.Questions(s.db).Delete(ctx, questionUUID); err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	return nil
}
