package repository

import (
	"context"

	"github.com/streamvault/streamvault/internal/domain/entity"
)

type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	Update(ctx context.Context, id, content string) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
	ListByVideo(ctx context.Context, videoID string, page, limit int) ([]entity.Comment, int64, error)
}

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, id, content string) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Post, error)
}

type LikeRepository interface {
	// Toggle flips the like state of (target, user) and reports the new
	// state. The flip is atomic; concurrent toggles cannot double-insert.
	Toggle(ctx context.Context, target entity.LikeTarget, targetID, userID string) (liked bool, err error)
	LikedVideos(ctx context.Context, userID string) ([]entity.Video, error)
}

type PlaylistRepository interface {
	Create(ctx context.Context, p *entity.Playlist) error
	GetByID(ctx context.Context, id string) (*entity.Playlist, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Playlist, error)
	Update(ctx context.Context, id, name, description string) (*entity.Playlist, error)
	Delete(ctx context.Context, id string) error
	// AddVideo returns ErrDuplicate when the video is already a member.
	AddVideo(ctx context.Context, playlistID, videoID string) error
	// RemoveVideo returns ErrNotFound when the video is not a member.
	RemoveVideo(ctx context.Context, playlistID, videoID string) error
}

type SubscriptionRepository interface {
	// Toggle flips the subscription and reports the new state.
	Toggle(ctx context.Context, subscriberID, channelID string) (subscribed bool, err error)
	Subscribers(ctx context.Context, channelID string) ([]entity.OwnerSummary, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]entity.OwnerSummary, error)
	SubscriberEmails(ctx context.Context, channelID string) ([]string, error)
}

type StatsRepository interface {
	ChannelStats(ctx context.Context, ownerID string) (*entity.ChannelStats, error)
}
