package repositories

import "context"

// StatementArchiver keeps the original uploaded file outside the database.
type StatementArchiver interface {
	Archive(ctx context.Context, uploadID, filename string, data []byte) (string, error)
	Delete(ctx context.Context, uri string) error
}
