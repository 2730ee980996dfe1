package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/askboard/internal/dbx"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/answers"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/questions"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/askboard/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Questions(db dbx.DBTX) questions.Repository
	Answers(db dbx.DBTX) answers.Repository
}
