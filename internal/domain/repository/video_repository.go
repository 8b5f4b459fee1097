package repository

import (
	"context"

	"github.com/streamvault/streamvault/internal/domain/entity"
)

// VideoRepository defines video catalogue operations.
type VideoRepository interface {
	Create(ctx context.Context, v *entity.Video) error
	// GetByID loads a video with its owner summary, like count, and whether
	// viewerID has liked it (viewerID may be empty for anonymous reads).
	GetByID(ctx context.Context, id, viewerID string) (*entity.Video, error)
	IncrementViews(ctx context.Context, id string) error
	Update(ctx context.Context, v *entity.Video) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f entity.VideoFilter) (*entity.VideoPage, error)
}
