package application

import (
	"context"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
)

// LikeService owns like toggles across videos, comments, and posts.
type LikeService struct {
	Repo repo.LikeRepository
}

func NewLikeService(r repo.LikeRepository) *LikeService {
	return &LikeService{Repo: r}
}

// Toggle flips the like state for one user on one target and reports the
// resulting state. Two toggles in a row always restore the original state.
func (s *LikeService) Toggle(ctx context.Context, target entity.LikeTarget, targetID, userID string) (bool, error) {
	liked, err := s.Repo.Toggle(ctx, target, targetID, userID)
	if err != nil {
		if err == repo.ErrNotFound {
			return false, apperror.NotFound("target not found")
		}
		return false, err
	}
	return liked, nil
}

func (s *LikeService) LikedVideos(ctx context.Context, userID string) ([]entity.Video, error) {
	return s.Repo.LikedVideos(ctx, userID)
}
