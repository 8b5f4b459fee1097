package blog

import (
	"context"
	"strings"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/helpers"
)

// Service holds the blog's use cases behind the HTML handlers.
type Service struct {
	Repo    *Repository
	Tokens  *TokenManager
	Storage application.Uploader
}

func NewService(repo *Repository, tokens *TokenManager, storage application.Uploader) *Service {
	return &Service{Repo: repo, Tokens: tokens, Storage: storage}
}

func (s *Service) SignUp(ctx context.Context, fullName, email, password string) error {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" || len(password) < 6 {
		return apperror.BadRequest("all fields are required and the password needs at least 6 characters")
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return err
	}
	u := &User{FullName: fullName, Email: email, PasswordHash: hash}
	if err := s.Repo.CreateUser(ctx, u); err != nil {
		if err == repository.ErrDuplicate {
			return apperror.Conflict("an account with this email already exists")
		}
		return err
	}
	return nil
}

// SignIn checks credentials and returns a signed session token. Failures
// are reported with one generic message so the form never reveals whether
// the email exists.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return "", apperror.Unauthorized("incorrect email or password")
		}
		return "", err
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return "", apperror.Unauthorized("incorrect email or password")
	}
	return s.Tokens.Sign(u)
}

func (s *Service) CreatePost(ctx context.Context, authorID, title, body string, cover *application.FileInput) (*Post, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, apperror.BadRequest("title and body are required")
	}

	coverURL := ""
	if cover != nil {
		url, err := s.Storage.Upload(ctx, "blog/covers/"+authorID+"/"+cover.Filename, cover.ContentType, cover.Reader)
		if err != nil {
			return nil, apperror.Internal("cover image upload failed")
		}
		coverURL = url
	}

	p := &Post{Title: title, Body: body, CoverImageURL: coverURL, CreatedBy: authorID}
	if err := s.Repo.CreatePost(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPosts(ctx context.Context) ([]Post, error) {
	return s.Repo.ListPosts(ctx)
}

func (s *Service) PostWithComments(ctx context.Context, id string) (*Post, []Comment, error) {
	p, err := s.Repo.GetPost(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, nil, apperror.NotFound("blog not found")
		}
		return nil, nil, err
	}
	comments, err := s.Repo.ListComments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return p, comments, nil
}

func (s *Service) AddComment(ctx context.Context, blogID, authorID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return apperror.BadRequest("comment cannot be empty")
	}
	c := &Comment{BlogID: blogID, CreatedBy: authorID, Content: content}
	if err := s.Repo.AddComment(ctx, c); err != nil {
		if err == repository.ErrNotFound {
			return apperror.NotFound("blog not found")
		}
		return err
	}
	return nil
}
