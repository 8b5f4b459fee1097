package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, p *entity.Post) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (owner_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`, p.OwnerID, p.Content)
	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	p := &entity.Post{}
	err := r.pool.QueryRow(ctx, `
		SELECT p.id, p.owner_id, p.content, p.created_at, p.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM posts p
		JOIN users o ON o.id = p.owner_id
		WHERE p.id = $1
	`, id).Scan(&p.ID, &p.OwnerID, &p.Content, &p.CreatedAt, &p.UpdatedAt,
		&p.Owner.UserName, &p.Owner.FullName, &p.Owner.AvatarURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p.Owner.ID = p.OwnerID
	return p, nil
}

func (r *PostRepository) Update(ctx context.Context, id, content string) (*entity.Post, error) {
	_, err := r.pool.Exec(ctx, `
		UPDATE posts SET content = $1, updated_at = now() WHERE id = $2
	`, content, id)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.owner_id, p.content, p.created_at, p.updated_at,
		       o.user_name, o.full_name, o.avatar_url
		FROM posts p
		JOIN users o ON o.id = p.owner_id
		WHERE p.owner_id = $1
		ORDER BY p.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.Post{}
	for rows.Next() {
		var p entity.Post
		if err := rows.Scan(&p.ID, &p.OwnerID, &p.Content, &p.CreatedAt, &p.UpdatedAt,
			&p.Owner.UserName, &p.Owner.FullName, &p.Owner.AvatarURL); err != nil {
			return nil, err
		}
		p.Owner.ID = p.OwnerID
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
