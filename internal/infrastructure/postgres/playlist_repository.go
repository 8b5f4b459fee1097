package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type PlaylistRepository struct {
	pool *pgxpool.Pool
}

func NewPlaylistRepository(pool *pgxpool.Pool) *PlaylistRepository {
	return &PlaylistRepository{pool: pool}
}

func (r *PlaylistRepository) Create(ctx context.Context, p *entity.Playlist) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO playlists (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, p.OwnerID, p.Name, p.Description)
	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	p.Videos = []entity.Video{}
	return nil
}

func (r *PlaylistRepository) GetByID(ctx context.Context, id string) (*entity.Playlist, error) {
	p := &entity.Playlist{}
	err := r.pool.QueryRow(ctx, `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM playlists p
		JOIN users o ON o.id = p.owner_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
		&p.Owner.UserName, &p.Owner.FullName, &p.Owner.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p.Owner.ID = p.OwnerID

	videos, err := r.memberVideos(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Videos = videos
	p.TotalVideos = len(videos)
	return p, nil
}

func (r *PlaylistRepository) memberVideos(ctx context.Context, playlistID string) ([]entity.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM playlist_videos pv
		JOIN videos v ON v.id = pv.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE pv.playlist_id = $1
		ORDER BY pv.position
	`, playlistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Video{}
	for rows.Next() {
		var v entity.Video
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.VideoURL, &v.ThumbnailURL, &v.Title, &v.Description,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&v.Owner.UserName, &v.Owner.FullName, &v.Owner.AvatarURL); err != nil {
			return nil, err
		}
		v.Owner.ID = v.OwnerID
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *PlaylistRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Playlist, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.owner_id, p.name, p.description, p.created_at, p.updated_at,
		       o.user_name, o.full_name, o.avatar_url,
		       (SELECT count(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id)
		FROM playlists p
		JOIN users o ON o.id = p.owner_id
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Playlist{}
	for rows.Next() {
		var p entity.Playlist
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt,
			&p.Owner.UserName, &p.Owner.FullName, &p.Owner.AvatarURL, &p.TotalVideos); err != nil {
			return nil, err
		}
		p.Owner.ID = p.OwnerID
		p.Videos = []entity.Video{}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PlaylistRepository) Update(ctx context.Context, id, name, description string) (*entity.Playlist, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE playlists SET name = $1, description = $2, updated_at = now() WHERE id = $3
	`, name, description, id)
	if err != nil {
		return nil, err
	}
	if res.RowsAffected() == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *PlaylistRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// AddVideo appends at the end of the playlist. The composite primary key
// keeps membership deduplicated; a duplicate add surfaces as ErrDuplicate.
func (r *PlaylistRepository) AddVideo(ctx context.Context, playlistID, videoID string) error {
	res, err := r.pool.Exec(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM playlist_videos WHERE playlist_id = $1))
		ON CONFLICT DO NOTHING
	`, playlistID, videoID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrDuplicate
	}
	return nil
}

func (r *PlaylistRepository) RemoveVideo(ctx context.Context, playlistID, videoID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2
	`, playlistID, videoID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.PlaylistRepository = (*PlaylistRepository)(nil)
