package application

import (
	"context"
	"strings"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
)

// PostService owns channel community posts.
type PostService struct {
	Repo repo.PostRepository
}

func NewPostService(r repo.PostRepository) *PostService {
	return &PostService{Repo: r}
}

func (s *PostService) Create(ctx context.Context, ownerID, content string) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}
	p := &entity.Post{OwnerID: ownerID, Content: content}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostService) Update(ctx context.Context, postID, requesterID, content string) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}
	if _, err := s.owned(ctx, postID, requesterID); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, postID, content)
}

func (s *PostService) Delete(ctx context.Context, postID, requesterID string) error {
	if _, err := s.owned(ctx, postID, requesterID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, postID)
}

func (s *PostService) ListByOwner(ctx context.Context, ownerID string) ([]entity.Post, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *PostService) owned(ctx context.Context, postID, requesterID string) (*entity.Post, error) {
	p, err := s.Repo.GetByID(ctx, postID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("post not found")
		}
		return nil, err
	}
	if p.OwnerID != requesterID {
		return nil, apperror.Forbidden("you are not allowed to modify this post")
	}
	return p, nil
}
