package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/field-intel-service/internal/auth"
	"github.com/spec-kit/field-intel-service/internal/config"
	"github.com/spec-kit/field-intel-service/internal/domain"
	apperrors "github.com/spec-kit/field-intel-service/pkg/util/errorutil"
)

func testAuthConfig() config.Config {
	return config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            4,
	}}
}

func newAuthService(persons *fakePersonRepo) *AuthService {
	return NewAuthService(testAuthConfig(), AuthDependencies{
		PersonRepo: persons,
		Logger:     zap.NewNop(),
	})
}

func TestLoginSuccess(t *testing.T) {
	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)

	persons := &fakePersonRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.Person, error) {
			return &domain.Person{ID: "p1", Email: email, PasswordHash: hash, IsAdmin: true}, nil
		},
	}
	svc := newAuthService(persons)

	token, expiresAt, person, err := svc.Login(context.Background(), "admin@example.com", "secret123")
	require.NoError(t, err)
	require.False(t, expiresAt.IsZero())
	require.Equal(t, "p1", person.ID)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "p1", claims.PersonID)
	require.True(t, claims.IsAdmin)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)

	persons := &fakePersonRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.Person, error) {
			return &domain.Person{ID: "p1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newAuthService(persons)

	_, _, _, err = svc.Login(context.Background(), "admin@example.com", "nope")
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	persons := &fakePersonRepo{
		getByEmailFn: func(ctx context.Context, email string) (*domain.Person, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc := newAuthService(persons)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	require.Error(t, err)
	require.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestDisplayNameFromDirectory(t *testing.T) {
	persons := &fakePersonRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Person, error) {
			return &domain.Person{ID: id, FirstName: "Ada", LastName: "Byron"}, nil
		},
	}
	svc := newAuthService(persons)

	name := svc.DisplayName(context.Background(), "p1")
	require.NotNil(t, name)
	require.Equal(t, "Ada Byron", *name)
}

func TestDisplayNameFallsBackToNil(t *testing.T) {
	persons := &fakePersonRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Person, error) {
			return nil, errors.New("directory down")
		},
	}
	svc := newAuthService(persons)

	require.Nil(t, svc.DisplayName(context.Background(), "p1"))
}
