package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (video_id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.VideoID, c.OwnerID, c.Content)
	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := r.pool.QueryRow(ctx, `
		SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM comments c
		JOIN users o ON o.id = c.owner_id
		WHERE c.id = $1
	`, id).Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
		&c.Owner.UserName, &c.Owner.FullName, &c.Owner.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c.Owner.ID = c.OwnerID
	return c, nil
}

func (r *CommentRepository) Update(ctx context.Context, id, content string) (*entity.Comment, error) {
	_, err := r.pool.Exec(ctx, `
		UPDATE comments SET content = $1, updated_at = now() WHERE id = $2
	`, content, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, videoID string, page, limit int) ([]entity.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM comments WHERE video_id = $1
	`, videoID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.video_id, c.owner_id, c.content, c.created_at, c.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM comments c
		JOIN users o ON o.id = c.owner_id
		WHERE c.video_id = $1
		ORDER BY c.created_at DESC
		OFFSET $2 LIMIT $3
	`, videoID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]entity.Comment, 0, limit)
	for rows.Next() {
		var c entity.Comment
		if err := rows.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&c.Owner.UserName, &c.Owner.FullName, &c.Owner.AvatarURL); err != nil {
			return nil, 0, err
		}
		c.Owner.ID = c.OwnerID
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
