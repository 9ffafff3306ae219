package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/blog-service/internal/auth"
	"github.com/spec-kit/blog-service/internal/config"
	"github.com/spec-kit/blog-service/internal/domain"
	"github.com/spec-kit/blog-service/internal/repository"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	Fullname    *string
	DOB         *time.Time
	Description *string
}

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users       repository.UserRepository
	revocations repository.RevocationRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	logger      *zap.Logger
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo       repository.UserRepository
	RevocationRepo repository.RevocationRepository
	TokenManager   *auth.TokenManager
	Logger         *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	tokens := deps.TokenManager
	if tokens == nil {
		tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL())
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:       deps.UserRepo,
		revocations: deps.RevocationRepo,
		tokenMgr:    tokens,
		bcryptCost:  cfg.Auth.BcryptCost,
		logger:      logger,
	}
}

// Register creates a writer account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.createAccount(ctx, input, domain.UserRoleWriter)
}

// CreateAdmin bootstraps an administrator account.
func (s *AuthService) CreateAdmin(ctx context.Context, input RegisterInput) (*domain.User, error) {
	return s.createAccount(ctx, input, domain.UserRoleAdmin)
}

func (s *AuthService) createAccount(ctx context.Context, input RegisterInput, role domain.UserRole) (*domain.User, error) {
	if err := s.ensureAvailable(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Fullname:     input.Fullname,
		DOB:          input.DOB,
		Description:  input.Description,
		Role:         role,
		Status:       domain.AccountStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewConflict("Username or email already registered", nil)
		}
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("account registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return user, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return apperrors.NewConflict("Username already taken", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.MapError(err)
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return apperrors.NewConflict("Email already registered", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.MapError(err)
	}
	return nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Token, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Token{}, apperrors.NewUnauthorized("Incorrect username or password")
		}
		return domain.Token{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.Token{}, apperrors.NewUnauthorized("Incorrect username or password")
		}
		return domain.Token{}, apperrors.NewInternalError(err)
	}
	if user.IsBanned() {
		return domain.Token{}, apperrors.NewForbidden("Account has been banned")
	}

	token, err := s.tokenMgr.Issue(user.ID)
	if err != nil {
		return domain.Token{}, apperrors.NewInternalError(err)
	}
	return token, nil
}

// Logout revokes the presented token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.NewUnauthorized("Could not validate credentials")
	}
	if s.revocations == nil {
		return apperrors.NewInternalError(errors.New("revocation store not configured"))
	}
	expiresAt := time.Now()
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revocations.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// Tokens exposes the token manager for the HTTP middleware.
func (s *AuthService) Tokens() *auth.TokenManager {
	return s.tokenMgr
}
