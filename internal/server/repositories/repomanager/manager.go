// Package repomanager hands out repository instances bound to a specific
// database handle, so services can run repositories either on the pool or
// inside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsantanna/quizdeck/internal/dbx"
	"github.com/dsantanna/quizdeck/internal/server/repositories/answers"
	"github.com/dsantanna/quizdeck/internal/server/repositories/attempts"
	"github.com/dsantanna/quizdeck/internal/server/repositories/exams"
	"github.com/dsantanna/quizdeck/internal/server/repositories/questions"
	"github.com/dsantanna/quizdeck/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Questions(db dbx.DBTX) questions.Repository
	Answers(db dbx.DBTX) answers.Repository
	Exams(db dbx.DBTX) exams.Repository
	Attempts(db dbx.DBTX) attempts.Repository
}
