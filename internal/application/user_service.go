package application

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/helpers"
	"github.com/streamvault/streamvault/pkg/mailer"
)

// Uploader stores a file and returns its hosted URL, consumed verbatim.
type Uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// FileInput is one multipart upload field.
type FileInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// TokenPair is the access/refresh credential pair issued on login and refresh.
type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// UserService owns accounts, credentials, and the token lifecycle.
type UserService struct {
	Repo     repo.UserRepository
	JWT      *helpers.JWTManager
	Storage  Uploader
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
	MailSend bool
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, storage Uploader, pub *helpers.RabbitPublisher, logger *logrus.Logger, mailSend bool) *UserService {
	return &UserService{Repo: r, JWT: jwt, Storage: storage, Pub: pub, Logger: logger, MailSend: mailSend}
}

type RegisterInput struct {
	UserName   string
	Email      string
	Password   string
	FullName   string
	Avatar     *FileInput
	CoverImage *FileInput
}

func objectPath(folder, ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return filepath.ToSlash(filepath.Join(folder, ownerID, uuid.NewString()+ext))
}

// Register creates an account: normalize, validate, duplicate check, upload,
// create. The returned user never carries password or refresh token fields
// on the wire.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.UserName = strings.ToLower(strings.TrimSpace(in.UserName))
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)

	if in.UserName == "" || in.Email == "" || in.Password == "" || in.FullName == "" {
		return nil, apperror.BadRequest("all fields are required")
	}
	if in.Avatar == nil {
		return nil, apperror.BadRequest("avatar image is required")
	}

	exists, err := s.Repo.ExistsByUserNameOrEmail(ctx, in.UserName, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("user with username or email already exists")
	}

	avatarURL, err := s.Storage.Upload(ctx, objectPath("avatars", in.UserName, in.Avatar.Filename), in.Avatar.ContentType, in.Avatar.Reader)
	if err != nil {
		return nil, apperror.Internal("avatar upload failed")
	}
	coverURL := ""
	if in.CoverImage != nil {
		coverURL, err = s.Storage.Upload(ctx, objectPath("covers", in.UserName, in.CoverImage.Filename), in.CoverImage.ContentType, in.CoverImage.Reader)
		if err != nil {
			return nil, apperror.Internal("cover image upload failed")
		}
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		UserName:      in.UserName,
		Email:         in.Email,
		Password:      hash,
		FullName:      in.FullName,
		AvatarURL:     avatarURL,
		CoverImageURL: coverURL,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if err == repo.ErrDuplicate {
			return nil, apperror.Conflict("user with username or email already exists")
		}
		return nil, err
	}

	if s.Pub != nil && s.MailSend {
		job := mailer.Job{Kind: mailer.KindWelcome, To: u.Email, UserName: u.UserName}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome mail enqueue failed")
		}
	}
	return u, nil
}

// Login checks credentials by username or email and issues a token pair.
func (s *UserService) Login(ctx context.Context, userName, email, password string) (*entity.User, TokenPair, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	email = strings.ToLower(strings.TrimSpace(email))
	if userName == "" && email == "" {
		return nil, TokenPair{}, apperror.BadRequest("username or email required")
	}

	u, err := s.Repo.GetByUserNameOrEmail(ctx, userName, email)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, TokenPair{}, apperror.NotFound("user does not exist")
		}
		return nil, TokenPair{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, TokenPair{}, apperror.Unauthorized("invalid user credentials")
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// issueTokens signs both tokens and overwrites the stored refresh token, so
// at most one refresh token per user is valid at a time.
func (s *UserService) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, u.UserName, u.FullName)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	if err := s.Repo.SetRefreshToken(ctx, u.ID, refresh); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Logout clears the stored refresh token; the cookies are cleared by the
// handler.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.Repo.SetRefreshToken(ctx, userID, "")
}

// Refresh rotates the token pair. The presented refresh token must equal the
// stored one, and the replacement is a compare-and-swap so a superseded
// token can never rotate again.
func (s *UserService) Refresh(ctx context.Context, presented string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(presented)
	if err != nil {
		return TokenPair{}, apperror.Unauthorized("invalid refresh token")
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, apperror.Unauthorized("invalid refresh token")
	}
	if u.RefreshToken == "" || u.RefreshToken != presented {
		return TokenPair{}, apperror.Unauthorized("refresh token is expired or used")
	}

	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Email, u.UserName, u.FullName)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID)
	if err != nil {
		return TokenPair{}, err
	}
	swapped, err := s.Repo.SwapRefreshToken(ctx, u.ID, presented, refresh)
	if err != nil {
		return TokenPair{}, err
	}
	if !swapped {
		return TokenPair{}, apperror.Unauthorized("refresh token is expired or used")
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return apperror.BadRequest("new password and confirm password not matched")
	}
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return apperror.NotFound("user not found")
		}
		return err
	}
	if !helpers.CompareHashAndPassword(u.Password, oldPassword) {
		return apperror.BadRequest("invalid old password")
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, userID, hash)
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateAccount(ctx context.Context, userID, fullName, email string) (*entity.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" && email == "" {
		return nil, apperror.BadRequest("at least one field is required")
	}
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if fullName != "" {
		u.FullName = fullName
	}
	if email != "" {
		u.Email = email
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if err == repo.ErrDuplicate {
			return nil, apperror.Conflict("email already in use")
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) UpdateAvatar(ctx context.Context, userID string, file FileInput) (*entity.User, error) {
	return s.updateImage(ctx, userID, "avatars", file, func(u *entity.User, url string) { u.AvatarURL = url })
}

func (s *UserService) UpdateCoverImage(ctx context.Context, userID string, file FileInput) (*entity.User, error) {
	return s.updateImage(ctx, userID, "covers", file, func(u *entity.User, url string) { u.CoverImageURL = url })
}

func (s *UserService) updateImage(ctx context.Context, userID, folder string, file FileInput, set func(*entity.User, string)) (*entity.User, error) {
	u, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.Storage.Upload(ctx, objectPath(folder, u.UserName, file.Filename), file.ContentType, file.Reader)
	if err != nil {
		return nil, apperror.Internal("image upload failed")
	}
	set(u, url)
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Channel returns the public channel profile for a username, including
// subscriber counts and whether the viewer subscribes to it.
func (s *UserService) Channel(ctx context.Context, userName, viewerID string) (*entity.ChannelProfile, error) {
	userName = strings.ToLower(strings.TrimSpace(userName))
	if userName == "" {
		return nil, apperror.BadRequest("username is required")
	}
	p, err := s.Repo.ChannelProfile(ctx, userName, viewerID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("channel does not exist")
		}
		return nil, err
	}
	return p, nil
}

func (s *UserService) WatchHistory(ctx context.Context, userID string, page, limit int) (*entity.VideoPage, error) {
	return s.Repo.WatchHistory(ctx, userID, page, limit)
}
