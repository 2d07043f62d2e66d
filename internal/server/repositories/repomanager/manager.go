// Package repomanager vends repository implementations over a DBTX and
// exposes the schema migration hook. Services hold a manager plus the
// *sql.DB and can rebind repositories to a transaction via dbx.WithTx.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authkit/internal/dbx"
	"github.com/dmitrijs2005/authkit/internal/server/repositories/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
}
