package services

import (
	"context"
	"time"
)

// AuthSvc authenticates the single owner of the deployment.
type AuthSvc interface {
	// Login checks password against the configured hash and issues a session token.
	// A wrong password returns apperrors.ErrUnauthorized.
	Login(ctx context.Context, password string) (string, time.Time, error)
}
