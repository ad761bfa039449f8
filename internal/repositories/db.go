package repositories

import (
	"context"
	_ "embed"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/recipe-share/internal/logger"
)

//go:embed schema.sql
var schema string

// TxGetter returns the request-scoped transaction, or nil outside of one.
type TxGetter func(ctx context.Context) *sqlx.Tx

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		logger.Log.Errorw("failed to apply schema", "error", err)
	}
	return err
}

// executor picks the request transaction when there is one.
func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

// logQuery logs the statement on a single line.
func logQuery(ctx context.Context, query string, args []any, result any, err error) {
	logger.FromContext(ctx).Infow("sql query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}
