package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/SscSPs/fintrack/internal/utils"
)

// OwnerSubject is the token subject of the single deployment owner.
const OwnerSubject = "owner"

type authService struct {
	BaseService
	cfg *config.Config
}

// NewAuthService creates the password login service.
func NewAuthService(cfg *config.Config) portssvc.AuthSvc {
	return &authService{cfg: cfg}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func (s *authService) Login(ctx context.Context, password string) (string, time.Time, error) {
	if !utils.CheckPasswordHash(password, s.cfg.PasswordHash) {
		s.LogInfo(ctx, "Rejected login attempt")
		return "", time.Time{}, apperrors.NewAppError(http.StatusUnauthorized, "invalid password", apperrors.ErrUnauthorized)
	}

	token, expiresAt, err := utils.IssueSessionToken(OwnerSubject, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.Now(), s.cfg.JWTExpiryDuration)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate token")
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.LogInfo(ctx, "Owner logged in")
	return token, expiresAt, nil
}
