package service

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"moderation-service/internal/models"
)

type fakeAuthRepo struct {
	users map[string]*models.User
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]*models.User)}
}

func (f *fakeAuthRepo) CreateUser(user *models.User) error {
	user.ID = int64(len(f.users) + 1)
	f.users[user.Username] = user
	return nil
}

func (f *fakeAuthRepo) GetUserByUsername(username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeAuthRepo) CountUsers() (int, error) {
	return len(f.users), nil
}

func TestRegisterAdmin(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), time.Hour, zap.NewNop())

	user, err := svc.RegisterAdmin("admin", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, "admin", user.Username)
	assert.Equal(t, "admin", user.Role)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))
	assert.NotContains(t, user.PasswordHash, "hunter22")
}

func TestRegisterAdmin_ClosedAfterFirstUser(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), time.Hour, zap.NewNop())

	_, err := svc.RegisterAdmin("admin", "pw")
	require.NoError(t, err)

	_, err = svc.RegisterAdmin("second", "pw")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := NewAuthService(repo, time.Hour, zap.NewNop())

	_, err := svc.RegisterAdmin("admin", "correct horse")
	require.NoError(t, err)

	tokenString, expires, err := svc.Login("admin", "correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims := &models.Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return GetJWTSecret(), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), time.Hour, zap.NewNop())

	_, err := svc.RegisterAdmin("admin", "right")
	require.NoError(t, err)

	_, _, err = svc.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newFakeAuthRepo(), time.Hour, zap.NewNop())

	_, _, err := svc.Login("nobody", "pw")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	svc := &authService{logger: zap.NewNop()}

	hash, err := svc.hashPassword("s3cret!")
	require.NoError(t, err)

	assert.True(t, svc.verifyPassword(hash, "s3cret!"))
	assert.False(t, svc.verifyPassword(hash, "s3cret"))
	assert.False(t, svc.verifyPassword("not-a-hash", "s3cret!"))
}

func TestPasswordHashSalted(t *testing.T) {
	svc := &authService{logger: zap.NewNop()}

	h1, err := svc.hashPassword("same password")
	require.NoError(t, err)
	h2, err := svc.hashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "salts must differ between hashes")
	assert.True(t, svc.verifyPassword(h1, "same password"))
	assert.True(t, svc.verifyPassword(h2, "same password"))
}
