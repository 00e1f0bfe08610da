// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package auth implements back-office identity for the catalogue.

Accounts live in PostgreSQL (users.admin); refresh sessions live in Redis with
a TTL and are rotated on every refresh. Access tokens are short-lived RS256 JWTs
verified statelessly by the middleware.

Architecture:

  - Service: Login, Refresh (rotation), Logout, Me and account creation.
  - Repository: PostgreSQL for accounts, Redis for sessions.
  - Security: bcrypt password hashes, SHA-256 hashed refresh tokens.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/sec"
	"github.com/setrini/inmobiliaria/internal/platform/validate"
	"github.com/setrini/inmobiliaria/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens.
type TokenProvider interface {
	GenerateAccessToken(userID, email, role string, timeToLive time.Duration) (string, error)
}

// Service implements back-office authentication use cases.
type Service struct {
	adminRepository   AdminRepository
	sessionRepository SessionRepository
	tokenProvider     TokenProvider
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a [Service] with its dependencies.
func NewService(admins AdminRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		adminRepository:   admins,
		sessionRepository: sessions,
		tokenProvider:     tokens,
		logger:            logger,
		now:               time.Now,
	}
}

// # Authentication Flow

// LoginInput carries the credentials of a login attempt.
type LoginInput struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is an established session ready for the transport layer.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	Admin                 *Admin
}

/*
Login verifies credentials and opens a refresh session.

Description: Unknown emails, inactive accounts and wrong passwords all produce
the same 401 after the same bcrypt work, so accounts cannot be enumerated.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginSession: Access token, refresh token and account
  - err: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	admin, err := service.adminRepository.FindByEmail(context, normalizeEmail(input.Email))
	if err != nil {
		if apperr.IsNotFound(err) {
			sec.SpendPasswordCheck(input.Password)
			return nil, apperr.Unauthorized("Invalid login credentials")
		}
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	passwordMatches := sec.CheckPasswordHash(input.Password, admin.PasswordHash)
	if !admin.IsActive || !passwordMatches {
		service.logger.WarnContext(context, "admin_login_rejected", slog.String("admin_id", admin.ID))
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	session, err := service.openSession(context, admin, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	// A failed stamp must not block the login itself.
	if err := service.adminRepository.TouchLastLogin(context, admin.ID, service.now()); err != nil {
		service.logger.WarnContext(context, "admin_last_login_update_failed", slog.Any("error", err))
	}

	service.logger.InfoContext(context, "admin_logged_in", slog.String("admin_id", admin.ID))
	return session, nil
}

/*
Logout revokes the session of a refresh token.

Description: Idempotent. An unknown or expired token is not an error.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	_, err := service.sessionRepository.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// LogoutAll revokes every refresh session of an account.
func (service *Service) LogoutAll(context context.Context, adminID string) error {
	if err := service.sessionRepository.RevokeAll(context, adminID); err != nil {
		return fmt.Errorf("auth_service_logout_all_failed: %w", err)
	}
	service.logger.InfoContext(context, "admin_sessions_revoked", slog.String("admin_id", adminID))
	return nil
}

// # Session Management

/*
RefreshSession implements refresh token rotation.

Description: The presented session is consumed atomically, then a fresh pair
of tokens is issued. A replayed token finds nothing and is rejected.

Parameters:
  - context: context.Context
  - refreshToken: string
  - userAgent: string
  - ipAddress: string

Returns:
  - *LoginSession: New credentials
  - err: Unauthorized or storage failures
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	session, err := service.sessionRepository.Consume(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Invalid or expired refresh token")
		}
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}

	admin, err := service.adminRepository.FindByID(context, session.AdminID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, apperr.Unauthorized("Account not found or disabled")
		}
		return nil, fmt.Errorf("auth_service_refresh_failed: %w", err)
	}
	if !admin.IsActive {
		return nil, apperr.Unauthorized("Account not found or disabled")
	}

	return service.openSession(context, admin, userAgent, ipAddress)
}

// openSession signs an access token and stores a new refresh session.
func (service *Service) openSession(context context.Context, admin *Admin, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(admin.ID, admin.Email, string(admin.Role), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	now := service.now()
	session := &Session{
		ID:        uuid.New(),
		AdminID:   admin.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(RefreshTokenTTL),
		CreatedAt: now,
	}

	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		Admin:                 admin,
	}, nil
}

// Me returns the account behind an access token.
func (service *Service) Me(context context.Context, adminID string) (*Admin, error) {
	return service.adminRepository.FindByID(context, adminID)
}

// # Account Provisioning

// CreateAdminInput describes a new back-office account.
type CreateAdminInput struct {
	Email       string
	Password    string
	DisplayName string
	Role        sec.UserRole
}

/*
CreateAdmin validates, hashes and stores a new account.

Description: Used by the admin CLI. The role defaults to editor.

Returns:
  - *Admin: The stored account
  - err: Validation, Conflict or storage errors
*/
func (service *Service) CreateAdmin(context context.Context, input CreateAdminInput) (*Admin, error) {
	if input.Role == "" {
		input.Role = sec.RoleEditor
	}
	email := normalizeEmail(input.Email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.MinLen(FieldPassword, input.Password, MinPasswordLength).MaxBytes(FieldPassword, input.Password, MaxPasswordLength)
	validator.MaxLen(FieldDisplayName, input.DisplayName, 100)
	validator.Custom(FieldRole, !input.Role.Valid(), "Must be admin or editor")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	admin := &Admin{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Role:         input.Role,
		IsActive:     true,
	}

	if err := service.adminRepository.Create(context, admin); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "admin_created",
		slog.String("admin_id", admin.ID),
		slog.String("role", string(admin.Role)),
	)
	return admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
