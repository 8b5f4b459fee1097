package application

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/helpers"
)

func newUserService() (*UserService, *fakeUserRepo, *fakeUploader) {
	users := newFakeUserRepo()
	uploader := &fakeUploader{}
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 240*time.Hour)
	return NewUserService(users, jwt, uploader, nil, nil, false), users, uploader
}

func registerInput() RegisterInput {
	return RegisterInput{
		UserName: "Alice",
		Email:    "Alice@Example.COM",
		Password: "s3cret-pass",
		FullName: "Alice A",
		Avatar:   &FileInput{Reader: strings.NewReader("img"), Filename: "a.png", ContentType: "image/png"},
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	svc, users, uploader := newUserService()

	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	assert.Equal(t, "alice", u.UserName)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEqual(t, "s3cret-pass", u.Password, "password must be stored hashed")
	assert.True(t, strings.HasPrefix(u.AvatarURL, "https://cdn.test/avatars/"))
	assert.Len(t, uploader.uploads, 1)

	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "s3cret-pass"))
}

func TestRegisterRejectsDuplicate(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	in := registerInput()
	in.Avatar = &FileInput{Reader: strings.NewReader("img"), Filename: "b.png", ContentType: "image/png"}
	_, err = svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, apperror.From(err).Code)
}

func TestRegisterRequiresAvatar(t *testing.T) {
	svc, _, _ := newUserService()

	in := registerInput()
	in.Avatar = nil
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
}

func TestSignupThenLogin(t *testing.T) {
	svc, _, _ := newUserService()

	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	u, pair, err := svc.Login(context.Background(), "alice", "", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestLoginByEmail(t *testing.T) {
	svc, _, _ := newUserService()
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "", "alice@example.com", "s3cret-pass")
	assert.NoError(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newUserService()
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "", "wrong")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Code)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newUserService()
	_, _, err := svc.Login(context.Background(), "nobody", "", "whatever")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperror.From(err).Code)
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	svc, users, _ := newUserService()
	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	_, pair, err := svc.Login(context.Background(), "alice", "", "s3cret-pass")
	require.NoError(t, err)

	newPair, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)

	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, newPair.RefreshToken, stored.RefreshToken)
}

func TestRefreshRejectsReusedToken(t *testing.T) {
	svc, _, _ := newUserService()
	_, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	_, pair, err := svc.Login(context.Background(), "alice", "", "s3cret-pass")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	// the old token was rotated away; replaying it must fail closed
	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	ae := apperror.From(err)
	assert.Equal(t, http.StatusUnauthorized, ae.Code)
	assert.Equal(t, "refresh token is expired or used", ae.Message)
}

func TestRefreshRejectsAfterLogout(t *testing.T) {
	svc, _, _ := newUserService()
	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	_, pair, err := svc.Login(context.Background(), "alice", "", "s3cret-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), u.ID))

	_, err = svc.Refresh(context.Background(), pair.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Code)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	svc, _, _ := newUserService()
	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, apperror.From(err).Code)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newUserService()
	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.ID, "s3cret-pass", "n3w-secret", "n3w-secret")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "alice", "", "n3w-secret")
	assert.NoError(t, err)
	_, _, err = svc.Login(context.Background(), "alice", "", "s3cret-pass")
	assert.Error(t, err)
}

func TestChangePasswordMismatchedConfirm(t *testing.T) {
	svc, _, _ := newUserService()
	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.ID, "s3cret-pass", "n3w-secret", "different")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
}

func TestChangePasswordWrongOld(t *testing.T) {
	svc, _, _ := newUserService()
	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.ID, "wrong", "n3w-secret", "n3w-secret")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)
}

func TestUpdateAccountNeedsAField(t *testing.T) {
	svc, _, _ := newUserService()
	u, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, err = svc.UpdateAccount(context.Background(), u.ID, "", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperror.From(err).Code)

	got, err := svc.UpdateAccount(context.Background(), u.ID, "Alice B", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.FullName)
	assert.Equal(t, "alice@example.com", got.Email)
}
