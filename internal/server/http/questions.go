package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/askboard/internal/server/models"
)

type contentRequest struct {
	Content string `json:"content"`
}

type questionResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Owner   string `json:"owner"`
}

func toQuestionResponses(questions []*models.Question) []questionResponse {
	result := make([]questionResponse, 0, len(questions))
	for _, q := range questions {
		result = append(result, questionResponse{ID: q.UUID, Content: q.Content, Owner: q.OwnerUUID})
	}
	return result
}

func (s *Server) handleQuestionCreate(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, errorBody{"QUES-002", "Question content is required"})
		return
	}

	q, err := s.questions.Create(r.Context(), bearerToken(r), req.Content)
	if err != nil {
		s.writeServiceError(w, r, err, errServer)
		return
	}

	writeJSON(w, http.StatusCreated, idStatusResponse{ID: q.UUID, Status: "QUESTION CREATED"})
}

func (s *Server) handleQuestionAll(w http.ResponseWriter, r *http.Request) {
	questions, err := s.questions.All(r.Context(), bearerToken(r))
	if err != nil {
		s.writeServiceError(w, r, err, errServer)
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponses(questions))
}

func (s *Server) handleQuestionAllByUser(w http.ResponseWriter, r *http.Request) {
	questions, err := s.questions.AllByUser(r.Context(), bearerToken(r), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeServiceError(w, r, err, errUserMissing)
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponses(questions))
}

func (s *Server) handleQuestionEdit(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil || req.Content == "" {
		writeError(w, http.StatusBadRequest, errorBody{"QUES-002", "Question content is required"})
		return
	}

	q, err := s.questions.Edit(r.Context(), bearerToken(r), chi.URLParam(r, "questionId"), req.Content)
	if err != nil {
		s.writeServiceError(w, r, err, errQuestionMissing)
		return
	}

	writeJSON(w, http.StatusOK, idStatusResponse{ID: q.UUID, Status: "QUESTION EDITED"})
}

func (s *Server) handleQuestionDelete(w http.ResponseWriter, r *http.Request) {
	questionUUID := chi.URLParam(r, "questionId")
	if err := s.questions.Delete(r.Context(), bearerToken(r), questionUUID); err != nil {
		s.writeServiceError(w, r, err, errQuestionMissing)
		return
	}

	writeJSON(w, http.StatusOK, idStatusResponse{ID: questionUUID, Status: "QUESTION DELETED"})
}
