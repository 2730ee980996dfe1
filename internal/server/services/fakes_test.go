package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/askboard/internal/common"
	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/config"
	"github.com/dmitrijs2005/askboard/internal/server/models"
	answersrepo "github.com/dmitrijs2005/askboard/internal/server/repositories/answers"
	questionsrepo "github.com/dmitrijs2005/askboard/internal/server/repositories/questions"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/repomanager"
	sessionsrepo "github.com/dmitrijs2005/askboard/internal/server/repositories/sessions"
	usersrepo "github.com/dmitrijs2005/askboard/internal/server/repositories/users"
)

// In-memory fake repositories shared by the service tests. They implement
// the same contracts as the postgres repositories, including the
// ErrNotFound/ErrDuplicateAccessToken translations the services rely on.

type fakeUsersRepo struct {
	byUUID map[string]*models.User
	nextID int64

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byUUID: make(map[string]*models.User)}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, existing := range f.byUUID {
		if existing.UserName == u.UserName {
			return nil, common.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return nil, common.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byUUID[u.UUID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byUUID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByUserName(ctx context.Context, userName string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byUUID {
		if u.UserName == userName {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byUUID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) GetByUUID(ctx context.Context, uuid string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byUUID[uuid]; ok {
		return u, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) Delete(ctx context.Context, uuid string) error {
	if _, ok := f.byUUID[uuid]; !ok {
		return common.ErrNotFound
	}
	delete(f.byUUID, uuid)
	return nil
}

type fakeSessionsRepo struct {
	byToken map[string]*models.Session
	byUUID  map[string]*models.Session
	nextID  int64

	// forceDuplicates makes the next N Create calls fail with
	// ErrDuplicateAccessToken regardless of the token value.
	forceDuplicates int
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{
		byToken: make(map[string]*models.Session),
		byUUID:  make(map[string]*models.Session),
	}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) (*models.Session, error) {
	if f.forceDuplicates > 0 {
		f.forceDuplicates--
		return nil, sessionsrepo.ErrDuplicateAccessToken
	}
	if _, ok := f.byToken[s.AccessToken]; ok {
		return nil, sessionsrepo.ErrDuplicateAccessToken
	}
	f.nextID++
	s.ID = f.nextID
	f.byToken[s.AccessToken] = s
	f.byUUID[s.UUID] = s
	return s, nil
}

func (f *fakeSessionsRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	if s, ok := f.byToken[token]; ok {
		return s, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeSessionsRepo) MarkSignedOut(ctx context.Context, sessionUUID string, at time.Time) error {
	s, ok := f.byUUID[sessionUUID]
	if !ok || s.LogoutAt != nil {
		return common.ErrNotFound
	}
	t := at
	s.LogoutAt = &t
	return nil
}

type fakeQuestionsRepo struct {
	byUUID map[string]*models.Question
	nextID int64
}

func newFakeQuestionsRepo() *fakeQuestionsRepo {
	return &fakeQuestionsRepo{byUUID: make(map[string]*models.Question)}
}

func (f *fakeQuestionsRepo) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	f.nextID++
	q.ID = f.nextID
	f.byUUID[q.UUID] = q
	return q, nil
}

func (f *fakeQuestionsRepo) GetAll(ctx context.Context) ([]*models.Question, error) {
	result := []*models.Question{}
	for _, q := range f.byUUID {
		result = append(result, q)
	}
	return result, nil
}

func (f *fakeQuestionsRepo) GetAllByUser(ctx context.Context, userUUID string) ([]*models.Question, error) {
	result := []*models.Question{}
	for _, q := range f.byUUID {
		if q.OwnerUUID == userUUID {
			result = append(result, q)
		}
	}
	return result, nil
}

func (f *fakeQuestionsRepo) GetByUUID(ctx context.Context, uuid string) (*models.Question, error) {
	if q, ok := f.byUUID[uuid]; ok {
		return q, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeQuestionsRepo) UpdateContent(ctx context.Context, uuid string, content string) error {
	q, ok := f.byUUID[uuid]
	if !ok {
		return common.ErrNotFound
	}
	q.Content = content
	return nil
}

func (f *fakeQuestionsRepo) Delete(ctx context.Context, uuid string) error {
	if _, ok := f.byUUID[uuid]; !ok {
		return common.ErrNotFound
	}
	delete(f.byUUID, uuid)
	return nil
}

type fakeAnswersRepo struct {
	byUUID map[string]*models.Answer
	nextID int64
}

func newFakeAnswersRepo() *fakeAnswersRepo {
	return &fakeAnswersRepo{byUUID: make(map[string]*models.Answer)}
}

func (f *fakeAnswersRepo) Create(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	f.nextID++
	a.ID = f.nextID
	f.byUUID[a.UUID] = a
	return a, nil
}

func (f *fakeAnswersRepo) GetAllForQuestion(ctx context.Context, questionUUID string) ([]*models.Answer, error) {
	result := []*models.Answer{}
	for _, a := range f.byUUID {
		if a.QuestionUUID == questionUUID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeAnswersRepo) GetByUUID(ctx context.Context, uuid string) (*models.Answer, error) {
	if a, ok := f.byUUID[uuid]; ok {
		return a, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeAnswersRepo) UpdateContent(ctx context.Context, uuid string, content string) error {
	a, ok := f.byUUID[uuid]
	if !ok {
		return common.ErrNotFound
	}
	a.Content = content
	return nil
}

func (f *fakeAnswersRepo) Delete(ctx context.Context, uuid string) error {
	if _, ok := f.byUUID[uuid]; !ok {
		return common.ErrNotFound
	}
	delete(f.byUUID, uuid)
	return nil
}

type fakeRepoManager struct {
	users     *fakeUsersRepo
	sessions  *fakeSessionsRepo
	questions *fakeQuestionsRepo
	answers   *fakeAnswersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error       { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository             { return m.users }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository       { return m.sessions }
func (m *fakeRepoManager) Questions(db dbx.DBTX) questionsrepo.Repository     { return m.questions }
func (m *fakeRepoManager) Answers(db dbx.DBTX) answersrepo.Repository         { return m.answers }

var _ repomanager.RepositoryManager = (*fakeRepoManager)(nil)

// env wires the full service stack over the fakes. The sqlmock handle only
// serves transaction begin/commit/rollback; all data access goes through the
// in-memory repositories.
type env struct {
	db   *sql.DB
	mock sqlmock.Sqlmock

	users     *fakeUsersRepo
	sessions  *fakeSessionsRepo
	questions *fakeQuestionsRepo
	answers   *fakeAnswersRepo

	sessionSvc  *SessionService
	userSvc     *UserService
	questionSvc *QuestionService
	answerSvc   *AnswerService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	e := &env{
		db:        db,
		mock:      mock,
		users:     newFakeUsersRepo(),
		sessions:  newFakeSessionsRepo(),
		questions: newFakeQuestionsRepo(),
		answers:   newFakeAnswersRepo(),
	}

	rm := &fakeRepoManager{
		users:     e.users,
		sessions:  e.sessions,
		questions: e.questions,
		answers:   e.answers,
	}

	cfg := &config.Config{
		SecretKey:                   "test-secret",
		AccessTokenValidityDuration: time.Hour,
	}

	e.sessionSvc = NewSessionService(db, rm, cfg)
	e.userSvc = NewUserService(db, rm, e.sessionSvc)
	e.questionSvc = NewQuestionService(db, rm, e.sessionSvc)
	e.answerSvc = NewAnswerService(db, rm, e.sessionSvc)
	return e
}

func (e *env) signUp(t *testing.T, userName string, email string, password string) *models.User {
	t.Helper()
	u, err := e.userSvc.SignUp(context.Background(), &models.User{
		FirstName: "Test",
		LastName:  "User",
		UserName:  userName,
		Email:     email,
	}, password)
	if err != nil {
		t.Fatalf("SignUp(%s) error: %v", userName, err)
	}
	return u
}

func (e *env) signIn(t *testing.T, userName string, password string) string {
	t.Helper()
	session, _, err := e.userSvc.SignIn(context.Background(), userName, password)
	if err != nil {
		t.Fatalf("SignIn(%s) error: %v", userName, err)
	}
	return session.AccessToken
}

// signInAdmin registers a user, promotes it to the admin role and signs it
// in. Admins are normally seeded out of band; the fakes let the test do it
// directly.
func (e *env) signInAdmin(t *testing.T, userName string) string {
	t.Helper()
	u := e.signUp(t, userName, userName+"@example.com", "adminpass")
	u.Role = models.RoleAdmin
	return e.signIn(t, userName, "adminpass")
}
