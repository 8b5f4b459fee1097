package application

import (
	"context"
	"strings"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
)

// CommentService owns video comments. Mutations are owner-only.
type CommentService struct {
	Repo   repo.CommentRepository
	Videos repo.VideoRepository
}

func NewCommentService(r repo.CommentRepository, videos repo.VideoRepository) *CommentService {
	return &CommentService{Repo: r, Videos: videos}
}

func (s *CommentService) Add(ctx context.Context, videoID, ownerID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}
	if _, err := s.Videos.GetByID(ctx, videoID, ""); err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("video not found")
		}
		return nil, err
	}
	c := &entity.Comment{VideoID: videoID, OwnerID: ownerID, Content: content}
	if err := s.Repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, requesterID, content string) (*entity.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("content is required")
	}
	if _, err := s.owned(ctx, commentID, requesterID); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, commentID, content)
}

func (s *CommentService) Delete(ctx context.Context, commentID, requesterID string) error {
	if _, err := s.owned(ctx, commentID, requesterID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, commentID)
}

func (s *CommentService) ListByVideo(ctx context.Context, videoID string, page, limit int) ([]entity.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.Repo.ListByVideo(ctx, videoID, page, limit)
}

func (s *CommentService) owned(ctx context.Context, commentID, requesterID string) (*entity.Comment, error) {
	c, err := s.Repo.GetByID(ctx, commentID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("comment not found")
		}
		return nil, err
	}
	if c.OwnerID != requesterID {
		return nil, apperror.Forbidden("you are not allowed to modify this comment")
	}
	return c, nil
}
