package blog

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/repository"
)

// Repository is the storage layer for the blog app. It shares the Postgres
// instance with the api server but owns its own tables.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) CreateUser(ctx context.Context, u *User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO blog_users (full_name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, profile_image_url, role, created_at, updated_at
	`, u.FullName, u.Email, u.PasswordHash).
		Scan(&u.ID, &u.ProfileImageURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `
		SELECT id, full_name, email, password_hash, profile_image_url, role, created_at, updated_at
		FROM blog_users WHERE email = $1
	`, email).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.ProfileImageURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) CreatePost(ctx context.Context, p *Post) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO blogs (title, body, cover_image_url, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, p.Title, p.Body, p.CoverImageURL, p.CreatedBy).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

const postColumns = `
	b.id, b.title, b.body, b.cover_image_url, b.created_by, b.created_at, b.updated_at,
	u.full_name, u.profile_image_url`

func scanPost(row pgx.Row) (*Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Body, &p.CoverImageURL, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		&p.AuthorName, &p.AuthorImage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetPost(ctx context.Context, id string) (*Post, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM blogs b JOIN blog_users u ON u.id = b.created_by
		WHERE b.id = $1
	`, id)
	return scanPost(row)
}

// ListPosts returns all posts, newest first.
func (r *Repository) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM blogs b JOIN blog_users u ON u.id = b.created_by
		ORDER BY b.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repository) AddComment(ctx context.Context, c *Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO blog_comments (blog_id, created_by, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, c.BlogID, c.CreatedBy, c.Content).Scan(&c.ID, &c.CreatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return repository.ErrNotFound
	}
	return err
}

func (r *Repository) ListComments(ctx context.Context, blogID string) ([]Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.blog_id, c.created_by, c.content, c.created_at,
		       u.full_name, u.profile_image_url
		FROM blog_comments c JOIN blog_users u ON u.id = c.created_by
		WHERE c.blog_id = $1
		ORDER BY c.created_at ASC
	`, blogID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.BlogID, &c.CreatedBy, &c.Content, &c.CreatedAt,
			&c.AuthorName, &c.AuthorImage); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
