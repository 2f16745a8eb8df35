package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager runs a unit of work in one database transaction.
// fn's error rolls the transaction back and is returned unchanged.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}
