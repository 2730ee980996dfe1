// Package http exposes the REST API: signup/signin/signout, question and
// answer CRUD, profile lookup and the admin user deletion. Handlers only
// translate between HTTP and the services; every rule lives below.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/logging"
	"github.com/dmitrijs2005/askboard/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	addr      string
	logger    logging.Logger
	users     *services.UserService
	questions *services.QuestionService
	answers   *services.AnswerService
}

func NewServer(addr string, logger logging.Logger, users *services.UserService,
	questions *services.QuestionService, answers *services.AnswerService) *Server {
	return &Server{
		addr:      addr,
		logger:    logger.With("module", "http"),
		users:     users,
		questions: questions,
		answers:   answers,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/user/signup", s.handleSignUp)
	r.Post("/user/signin", s.handleSignIn)
	r.Post("/user/signout", s.handleSignOut)
	r.Get("/userprofile/{userId}", s.handleGetUserProfile)

	r.Post("/question/create", s.handleQuestionCreate)
	r.Get("/question/all", s.handleQuestionAll)
	r.Get("/question/all/{userId}", s.handleQuestionAllByUser)
	r.Put("/question/edit/{questionId}", s.handleQuestionEdit)
	r.Delete("/question/delete/{questionId}", s.handleQuestionDelete)

	r.Post("/question/{questionId}/answer/create", s.handleAnswerCreate)
	r.Get("/answer/all/{questionId}", s.handleAnswerAll)
	r.Put("/answer/edit/{answerId}", s.handleAnswerEdit)
	r.Delete("/answer/delete/{answerId}", s.handleAnswerDelete)

	r.Delete("/admin/user/{userId}", s.handleAdminDeleteUser)

	return r
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Router()}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "starting http server", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// errorBody is the wire shape of every failure response.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// The API reports failures with stable codes so clients can branch without
// parsing messages.
var (
	errUsernameTaken   = errorBody{"SGR-001", "Try any other Username, this Username has already been taken"}
	errEmailTaken      = errorBody{"SGR-002", "This user has already been registered, try with any other emailId"}
	errUnknownUser     = errorBody{"ATH-001", "This username does not exist"}
	errBadCredentials  = errorBody{"ATH-002", "Password failed"}
	errNotSignedIn     = errorBody{"ATHR-001", "User has not signed in"}
	errSessionClosed   = errorBody{"ATHR-002", "User is signed out. Sign in first to continue"}
	errNotOwner        = errorBody{"ATHR-003", "You do not have the rights to perform this action"}
	errQuestionMissing = errorBody{"QUES-001", "Entered question uuid does not exist"}
	errAnswerMissing   = errorBody{"ANS-001", "Entered answer uuid does not exist"}
	errUserMissing     = errorBody{"USR-001", "User with entered uuid does not exist"}
	errServer          = errorBody{"GEN-001", "Something went wrong, please try again later"}
)

// writeServiceError maps the service error taxonomy onto statuses. The 404
// body differs per resource, so each handler supplies its own notFound.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound errorBody) {
	switch {
	case errors.Is(err, common.ErrUsernameTaken):
		writeError(w, http.StatusConflict, errUsernameTaken)
	case errors.Is(err, common.ErrEmailTaken):
		writeError(w, http.StatusConflict, errEmailTaken)
	case errors.Is(err, common.ErrUnknownUser):
		writeError(w, http.StatusUnauthorized, errUnknownUser)
	case errors.Is(err, common.ErrBadCredentials):
		writeError(w, http.StatusUnauthorized, errBadCredentials)
	case errors.Is(err, common.ErrNotAuthenticated):
		writeError(w, http.StatusUnauthorized, errNotSignedIn)
	case errors.Is(err, common.ErrSessionExpiredOrClosed):
		writeError(w, http.StatusUnauthorized, errSessionClosed)
	case errors.Is(err, common.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, errNotOwner)
	case errors.Is(err, common.ErrResourceNotFound):
		writeError(w, http.StatusNotFound, notFound)
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err.Error())
		writeError(w, http.StatusInternalServerError, errServer)
	}
}

// bearerToken extracts the access token from the Authorization header. The
// "Bearer " prefix is optional; clients historically sent the raw token.
func bearerToken(r *http.Request) string {
	header := r.Header.Get(common.AuthorizationHeaderName)
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(header)
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, body errorBody) {
	writeJSON(w, status, body)
}
