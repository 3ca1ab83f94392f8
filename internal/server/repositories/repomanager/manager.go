// Package repomanager binds repository implementations to a dbx.DBTX so
// services can use the same repositories inside and outside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/petzy/internal/dbx"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/companions"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/documents"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/petzy/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Documents(db dbx.DBTX) documents.Repository
	Companions(db dbx.DBTX) companions.Repository
}
