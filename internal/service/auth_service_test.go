package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/andesedu/eventos-api/internal/models"
	appErrors "github.com/andesedu/eventos-api/pkg/errors"
)

type userRepoStub struct {
	user      *models.User
	lastLogin *time.Time
}

func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, sql.ErrNoRows
	}
	return s.user, nil
}

func (s *userRepoStub) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	s.lastLogin = &ts
	return nil
}

func newAuthServiceForTest(t *testing.T, user *models.User) (*AuthService, *userRepoStub) {
	t.Helper()
	repo := &userRepoStub{user: user}
	svc := NewAuthService(repo, nil, nil, AuthConfig{
		Secret:     "test_secret",
		Expiration: time.Hour,
		Issuer:     "eventos-api-test",
	})
	return svc, repo
}

func testUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Email:        "director@colegio.edu",
		PasswordHash: string(hash),
		FullName:     "Directora General",
		Role:         models.RoleDirectivo,
		Active:       true,
	}
}

func TestAuthServiceLoginIssuesValidToken(t *testing.T) {
	svc, repo := newAuthServiceForTest(t, testUser(t, "secreto123"))

	result, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "director@colegio.edu",
		Password: "secreto123",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleDirectivo, result.User.Role)
	assert.NotNil(t, repo.lastLogin)

	claims, err := svc.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleDirectivo, claims.Role)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, testUser(t, "secreto123"))

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "director@colegio.edu",
		Password: "incorrecta",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nadie@colegio.edu",
		Password: "loquesea",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := testUser(t, "secreto123")
	user.Active = false
	svc, _ := newAuthServiceForTest(t, user)

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "director@colegio.edu",
		Password: "secreto123",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceValidateTokenGarbage(t *testing.T) {
	svc, _ := newAuthServiceForTest(t, nil)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
