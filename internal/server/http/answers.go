package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/askboard/internal/server/models"
)

type answerResponse struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	QuestionID string `json:"questionId"`
	Owner      string `json:"owner"`
}

func toAnswerResponses(answers []*models.Answer) []answerResponse {
	result := make([]answerResponse, 0, len(answers))
	for _, a := range answers {
		result = append(result, answerResponse{
			ID:         a.UUID,
			Content:    a.Content,
			QuestionID: a.QuestionUUID,
			Owner:      a.OwnerUUID,
		})
	}
	return result
}

func (s *Server) handleAnswerCreate(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, errorBody{"ANS-002", "Answer content is required"})
		return
	}

	a, err := s.answers.Create(r.Context(), bearerToken(r), chi.URLParam(r, "questionId"), req.Content)
	if err != nil {
		s.writeServiceError(w, r, err, errQuestionMissing)
		return
	}

	writeJSON(w, http.StatusCreated, idStatusResponse{ID: a.UUID, Status: "ANSWER CREATED"})
}

func (s *Server) handleAnswerAll(w http.ResponseWriter, r *http.Request) {
	answers, err := s.answers.AllForQuestion(r.Context(), bearerToken(r), chi.URLParam(r, "questionId"))
	if err != nil {
		s.writeServiceError(w, r, err, errQuestionMissing)
		return
	}

	writeJSON(w, http.StatusOK, toAnswerResponses(answers))
}

func (s *Server) handleAnswerEdit(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, errorBody{"ANS-002", "Answer content is required"})
		return
	}

	a, err := s.answers.Edit(r.Context(), bearerToken(r), chi.URLParam(r, "answerId"), req.Content)
	if err != nil {
		s.writeServiceError(w, r, err, errAnswerMissing)
		return
	}

	writeJSON(w, http.StatusOK, idStatusResponse{ID: a.UUID, Status: "ANSWER EDITED"})
}

func (s *Server) handleAnswerDelete(w http.ResponseWriter, r *http.Request) {
	answerUUID := chi.URLParam(r, "answerId")
	if err := s.answers.Delete(r.Context(), bearerToken(r), answerUUID); err != nil {
		s.writeServiceError(w, r, err, errAnswerMissing)
		return
	}

	writeJSON(w, http.StatusOK, idStatusResponse{ID: answerUUID, Status: "ANSWER DELETED"})
}
