package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

func likeColumn(target entity.LikeTarget) (string, error) {
	switch target {
	case entity.LikeVideo:
		return "video_id", nil
	case entity.LikeComment:
		return "comment_id", nil
	case entity.LikePost:
		return "post_id", nil
	default:
		return "", fmt.Errorf("unknown like target %q", target)
	}
}

// Toggle deletes the like if present, inserts it otherwise. The partial
// unique index on (target, liked_by) makes concurrent toggles safe: a lost
// insert race lands on ON CONFLICT and the record still exists exactly once.
func (r *LikeRepository) Toggle(ctx context.Context, target entity.LikeTarget, targetID, userID string) (bool, error) {
	col, err := likeColumn(target)
	if err != nil {
		return false, err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var deletedID string
	err = tx.QueryRow(ctx,
		`DELETE FROM likes WHERE `+col+` = $1 AND liked_by = $2 RETURNING id`,
		targetID, userID).Scan(&deletedID)
	switch {
	case err == nil:
		if err := tx.Commit(ctx); err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, pgx.ErrNoRows):
		// not liked yet, fall through to insert
	default:
		return false, err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO likes (`+col+`, liked_by) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		targetID, userID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, repository.ErrNotFound
		}
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *LikeRepository) LikedVideos(ctx context.Context, userID string) ([]entity.Video, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE l.liked_by = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC
	`, userID)
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
		v.IsLiked = true
		out = append(out, v)
	}
	return out, rows.Err()
}

var _ repository.LikeRepository = (*LikeRepository)(nil)
