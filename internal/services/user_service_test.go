package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callcenter/internal/authz"
	"callcenter/internal/models"
	"callcenter/internal/utils"
)

var testSecret = []byte("test-secret")

func newUserFixture() (UserService, *fakeUserRepo, *fakeMailer) {
	repo := newFakeUserRepo()
	mailer := &fakeMailer{}
	auth := NewAuthService(testSecret, 15*time.Minute, 24*time.Hour)
	return NewUserService(repo, mailer, auth), repo, mailer
}

func TestUserService_CreateAndLogin(t *testing.T) {
	svc, repo, mailer := newUserFixture()
	ctx := context.Background()

	u := &models.User{FullName: "Adam Agent", Email: " adam@example.com ", RoleID: authz.RoleAgent}
	require.NoError(t, svc.CreateUserWithPassword(ctx, u, "s3cret!"))
	assert.Equal(t, "adam@example.com", u.Email)
	assert.NotEqual(t, "s3cret!", u.PasswordHash)
	require.Len(t, mailer.welcome, 1)
	assert.Equal(t, "adam@example.com", mailer.welcome[0].to)

	err := svc.CreateUserWithPassword(ctx, &models.User{Email: "ADAM@example.com", RoleID: authz.RoleAgent}, "x")
	assert.ErrorIs(t, err, ErrEmailTaken)

	assert.ErrorIs(t, svc.CreateUserWithPassword(ctx, &models.User{Email: "z@example.com", RoleID: 99}, "x"), ErrInvalidUser)
	assert.Error(t, svc.CreateUserWithPassword(ctx, &models.User{Email: "z@example.com", RoleID: authz.RoleAgent}, " "))

	_, _, err = svc.Login(ctx, "adam@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, tokens, err := svc.Login(ctx, "adam@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, user.ID)
	assert.NotEmpty(t, tokens.RefreshToken)

	claims, err := utils.ParseAccessToken(testSecret, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, authz.RoleAgent, claims.RoleID)

	stored, _ := repo.GetByID(ctx, u.ID)
	require.NotNil(t, stored.RefreshToken)
	assert.Equal(t, tokens.RefreshToken, *stored.RefreshToken)
}

func TestUserService_WelcomeMailFailureIsNotFatal(t *testing.T) {
	svc, repo, mailer := newUserFixture()
	mailer.err = errBoom

	u := &models.User{FullName: "Sara", Email: "sara@example.com", RoleID: authz.RoleSupervisor}
	require.NoError(t, svc.CreateUserWithPassword(context.Background(), u, "pw"))
	got, _ := repo.GetByID(context.Background(), u.ID)
	assert.NotNil(t, got)
}

func TestUserService_RefreshRotates(t *testing.T) {
	svc, repo, _ := newUserFixture()
	ctx := context.Background()

	u := &models.User{FullName: "Adam", Email: "adam@example.com", RoleID: authz.RoleAgent}
	require.NoError(t, svc.CreateUserWithPassword(ctx, u, "pw"))
	_, first, err := svc.Login(ctx, "adam@example.com", "pw")
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEmpty(t, second.AccessToken)

	// the old token is spent
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	_, err = svc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidRefresh)

	// expired tokens are refused
	past := time.Now().Add(-time.Minute)
	require.NoError(t, repo.UpdateRefresh(ctx, u.ID, "stale", past))
	_, err = svc.Refresh(ctx, "stale")
	assert.ErrorIs(t, err, ErrInvalidRefresh)
}
