package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/server/models"
)

type signUpRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName"`
	Email         string `json:"emailAddress"`
	Password      string `json:"password"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

type idStatusResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errorBody{"SGR-003", "Malformed signup request"})
		return
	}
	if req.UserName == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, errorBody{"SGR-003", "userName, emailAddress and password are required"})
		return
	}

	user, err := s.users.SignUp(r.Context(), &models.User{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		UserName:      req.UserName,
		Email:         req.Email,
		Country:       req.Country,
		AboutMe:       req.AboutMe,
		DOB:           req.DOB,
		ContactNumber: req.ContactNumber,
	}, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err, errServer)
		return
	}

	writeJSON(w, http.StatusCreated, idStatusResponse{ID: user.UUID, Status: "USER SUCCESSFULLY REGISTERED"})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	userName, password, ok := r.BasicAuth()
	if !ok {
		writeError(w, http.StatusUnauthorized, errorBody{"ATH-003", "Basic authentication credentials required"})
		return
	}

	session, user, err := s.users.SignIn(r.Context(), userName, password)
	if err != nil {
		s.writeServiceError(w, r, err, errServer)
		return
	}

	w.Header().Set(common.AccessTokenHeaderName, session.AccessToken)
	writeJSON(w, http.StatusOK, idStatusResponse{ID: user.UUID, Status: "SIGNED IN SUCCESSFULLY"})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.SignOut(r.Context(), bearerToken(r))
	if err != nil {
		s.writeServiceError(w, r, err, errServer)
		return
	}

	writeJSON(w, http.StatusOK, idStatusResponse{ID: user.UUID, Status: "SIGNED OUT SUCCESSFULLY"})
}

type userProfileResponse struct {
	ID            string `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	UserName      string `json:"userName"`
	Email         string `json:"emailAddress"`
	Country       string `json:"country"`
	AboutMe       string `json:"aboutMe"`
	DOB           string `json:"dob"`
	ContactNumber string `json:"contactNumber"`
}

func (s *Server) handleGetUserProfile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetUserProfile(r.Context(), bearerToken(r), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeServiceError(w, r, err, errUserMissing)
		return
	}

	writeJSON(w, http.StatusOK, userProfileResponse{
		ID:            user.UUID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		UserName:      user.UserName,
		Email:         user.Email,
		Country:       user.Country,
		AboutMe:       user.AboutMe,
		DOB:           user.DOB,
		ContactNumber: user.ContactNumber,
	})
}

func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	userUUID := chi.URLParam(r, "userId")
	if err := s.users.DeleteUser(r.Context(), bearerToken(r), userUUID); err != nil {
		s.writeServiceError(w, r, err, errUserMissing)
		return
	}

	writeJSON(w, http.StatusOK, idStatusResponse{ID: userUUID, Status: "USER SUCCESSFULLY DELETED"})
}
