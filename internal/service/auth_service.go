package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/config"
	"github.com/spec-kit/field-intel-service/internal/domain"
	"github.com/spec-kit/field-intel-service/internal/persistence"
	"github.com/spec-kit/field-intel-service/internal/repository"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

const profileCacheTTL = 10 * time.Minute

// AuthService authenticates persons and serves cached profile lookups.
type AuthService struct {
	persons repository.PersonRepository
	cache   *persistence.Redis
	tokens  *auth.TokenManager
	logger  *zap.Logger
}

// AuthDependencies bundles collaborators.
type AuthDependencies struct {
	PersonRepo repository.PersonRepository
	Cache      *persistence.Redis
	Logger     *zap.Logger
}

// NewAuthService creates the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		persons: deps.PersonRepo,
		cache:   deps.Cache,
		tokens:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		logger:  deps.Logger,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *domain.Person, error) {
	person, err := s.persons.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(person.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(person.ID, person.IsAdmin)
	if err != nil {
		return "", time.Time{}, nil, apperrors.MapError(err)
	}
	return token, expiresAt, person, nil
}

// DisplayName resolves a person's display name through the redis cache. Any
// cache or directory failure falls back to nil rather than erroring: a stale
// or missing profile is inconsequential to the caller.
func (s *AuthService) DisplayName(ctx context.Context, personID string) *string {
	key := "profile:name:" + personID

	if s.cache != nil && s.cache.Client != nil {
		if cached, err := s.cache.Client.Get(ctx, key).Result(); err == nil && cached != "" {
			return &cached
		}
	}

	person, err := s.persons.GetByID(ctx, personID)
	if err != nil {
		return nil
	}
	name := person.DisplayName()

	if s.cache != nil && s.cache.Client != nil {
		if err := s.cache.Client.Set(ctx, key, name, profileCacheTTL).Err(); err != nil {
			s.logger.Debug("profile cache write failed", zap.Error(err))
		}
	}
	return &name
}
