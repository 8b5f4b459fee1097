package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

// sortColumns whitelists client-supplied sort keys.
var sortColumns = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

func buildPage(docs []entity.Video, total int64, page, limit int) *entity.VideoPage {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &entity.VideoPage{
		Docs:        docs,
		TotalDocs:   total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
	}
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO videos (owner_id, video_url, thumbnail_url, title, description, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, views, is_published, created_at, updated_at
	`, v.OwnerID, v.VideoURL, v.ThumbnailURL, v.Title, v.Description, v.Duration)
	return row.Scan(&v.ID, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt)
}

func (r *VideoRepository) GetByID(ctx context.Context, id, viewerID string) (*entity.Video, error) {
	v := &entity.Video{}
	err := r.pool.QueryRow(ctx, `
		SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		       o.user_name, o.full_name, o.avatar_url,
		       (SELECT count(*) FROM likes l WHERE l.video_id = v.id),
		       EXISTS (SELECT 1 FROM likes l WHERE l.video_id = v.id AND l.liked_by::text = $2)
		FROM videos v
		JOIN users o ON o.id = v.owner_id
		WHERE v.id = $1
	`, id, viewerID).Scan(&v.ID, &v.OwnerID, &v.VideoURL, &v.ThumbnailURL, &v.Title, &v.Description,
		&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
		&v.Owner.UserName, &v.Owner.FullName, &v.Owner.AvatarURL, &v.LikesCount, &v.IsLiked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	v.Owner.ID = v.OwnerID
	return v, nil
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	return err
}

func (r *VideoRepository) Update(ctx context.Context, v *entity.Video) error {
	v.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE videos
		SET title = $1, description = $2, thumbnail_url = $3, is_published = $4, updated_at = $5
		WHERE id = $6
	`, v.Title, v.Description, v.ThumbnailURL, v.IsPublished, v.UpdatedAt, v.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *VideoRepository) List(ctx context.Context, f entity.VideoFilter) (*entity.VideoPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}

	where := `WHERE ($1 = '' OR v.title ILIKE '%' || $1 || '%' OR v.description ILIKE '%' || $1 || '%')
	            AND ($2 = '' OR v.owner_id::text = $2)
	            AND (NOT $3::boolean OR v.is_published)`

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM videos v `+where,
		f.Query, f.OwnerID, f.OnlyPublished).Scan(&total); err != nil {
		return nil, err
	}

	orderCol, ok := sortColumns[f.SortBy]
	if !ok {
		orderCol = "v.created_at"
	}
	dir := "DESC"
	if f.SortAsc {
		dir = "ASC"
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.owner_id, v.video_url, v.thumbnail_url, v.title, v.description,
		       v.duration, v.views, v.is_published, v.created_at, v.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM videos v
		JOIN users o ON o.id = v.owner_id `+where+`
		ORDER BY `+orderCol+` `+dir+`
		OFFSET $4 LIMIT $5
	`, f.Query, f.OwnerID, f.OnlyPublished, (f.Page-1)*f.Limit, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]entity.Video, 0, f.Limit)
	for rows.Next() {
		var v entity.Video
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.VideoURL, &v.ThumbnailURL, &v.Title, &v.Description,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&v.Owner.UserName, &v.Owner.FullName, &v.Owner.AvatarURL); err != nil {
			return nil, err
		}
		v.Owner.ID = v.OwnerID
		docs = append(docs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildPage(docs, total, f.Page, f.Limit), nil
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
