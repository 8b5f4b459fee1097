package application

import (
	"context"
	"strings"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/apperror"
)

// PlaylistService owns playlists and their memberships. Adding the same
// video twice is a conflict, not an idempotent no-op, so clients learn
// their view is stale.
type PlaylistService struct {
	Repo   repo.PlaylistRepository
	Videos repo.VideoRepository
}

func NewPlaylistService(r repo.PlaylistRepository, videos repo.VideoRepository) *PlaylistService {
	return &PlaylistService{Repo: r, Videos: videos}
}

func (s *PlaylistService) Create(ctx context.Context, ownerID, name, description string) (*entity.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return nil, apperror.BadRequest("name and description are required")
	}
	p := &entity.Playlist{OwnerID: ownerID, Name: name, Description: description}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlaylistService) Get(ctx context.Context, playlistID string) (*entity.Playlist, error) {
	p, err := s.Repo.GetByID(ctx, playlistID)
	if err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("playlist not found")
		}
		return nil, err
	}
	return p, nil
}

func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID string) ([]entity.Playlist, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *PlaylistService) Update(ctx context.Context, playlistID, requesterID, name, description string) (*entity.Playlist, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" && description == "" {
		return nil, apperror.BadRequest("at least one field is required")
	}
	p, err := s.owned(ctx, playlistID, requesterID)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = p.Name
	}
	if description == "" {
		description = p.Description
	}
	return s.Repo.Update(ctx, playlistID, name, description)
}

func (s *PlaylistService) Delete(ctx context.Context, playlistID, requesterID string) error {
	if _, err := s.owned(ctx, playlistID, requesterID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, playlistID)
}

func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, requesterID string) (*entity.Playlist, error) {
	if _, err := s.owned(ctx, playlistID, requesterID); err != nil {
		return nil, err
	}
	if _, err := s.Videos.GetByID(ctx, videoID, ""); err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("video not found")
		}
		return nil, err
	}
	if err := s.Repo.AddVideo(ctx, playlistID, videoID); err != nil {
		if err == repo.ErrDuplicate {
			return nil, apperror.Conflict("video already in playlist")
		}
		return nil, err
	}
	return s.Get(ctx, playlistID)
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, requesterID string) (*entity.Playlist, error) {
	if _, err := s.owned(ctx, playlistID, requesterID); err != nil {
		return nil, err
	}
	if err := s.Repo.RemoveVideo(ctx, playlistID, videoID); err != nil {
		if err == repo.ErrNotFound {
			return nil, apperror.NotFound("video not in playlist")
		}
		return nil, err
	}
	return s.Get(ctx, playlistID)
}

func (s *PlaylistService) owned(ctx context.Context, playlistID, requesterID string) (*entity.Playlist, error) {
	p, err := s.Get(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != requesterID {
		return nil, apperror.Forbidden("you are not allowed to modify this playlist")
	}
	return p, nil
}
