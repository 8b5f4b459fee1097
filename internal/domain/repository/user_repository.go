package repository

import (
	"context"

	"github.com/streamvault/streamvault/internal/domain/entity"
)

// UserRepository defines user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUserNameOrEmail(ctx context.Context, userName, email string) (*entity.User, error)
	ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// SetRefreshToken overwrites the stored refresh token (login sets it,
	// logout clears it with "").
	SetRefreshToken(ctx context.Context, id, token string) error
	// SwapRefreshToken replaces old with next only when old is still the
	// stored value. Returns false when the stored token no longer matches,
	// i.e. the presented token was already superseded.
	SwapRefreshToken(ctx context.Context, id, old, next string) (bool, error)

	ChannelProfile(ctx context.Context, userName, viewerID string) (*entity.ChannelProfile, error)
	AddWatchHistory(ctx context.Context, userID, videoID string) error
	WatchHistory(ctx context.Context, userID string, page, limit int) (*entity.VideoPage, error)
}
