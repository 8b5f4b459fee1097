package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, user_name, email, password_hash, full_name, avatar_url, cover_image_url, refresh_token, role, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.Password, &u.FullName,
		&u.AvatarURL, &u.CoverImageURL, &u.RefreshToken, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_name, email, password_hash, full_name, avatar_url, cover_image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, role, created_at, updated_at
	`, u.UserName, u.Email, u.Password, u.FullName, u.AvatarURL, u.CoverImageURL)

	if err := row.Scan(&u.ID, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUserNameOrEmail(ctx context.Context, userName, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE (user_name = $1 AND $1 <> '') OR (email = $2 AND $2 <> '')
	`, userName, email))
}

func (r *UserRepository) ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM users WHERE user_name = $1 OR email = $2)
	`, userName, email).Scan(&exists)
	return exists, err
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, full_name = $2, avatar_url = $3, cover_image_url = $4, updated_at = $5
		WHERE id = $6
	`, u.Email, u.FullName, u.AvatarURL, u.CoverImageURL, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetRefreshToken(ctx context.Context, id, token string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET refresh_token = $1, updated_at = now() WHERE id = $2
	`, token, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// SwapRefreshToken is a compare-and-swap: the stored token must still equal
// old for the rotation to take effect.
func (r *UserRepository) SwapRefreshToken(ctx context.Context, id, old, next string) (bool, error) {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET refresh_token = $1, updated_at = now()
		WHERE id = $2 AND refresh_token = $3
	`, next, id, old)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() == 1, nil
}

func (r *UserRepository) ChannelProfile(ctx context.Context, userName, viewerID string) (*entity.ChannelProfile, error) {
	p := &entity.ChannelProfile{}
	err := r.pool.QueryRow(ctx, `
		SELECT u.id, u.user_name, u.full_name, u.avatar_url, u.cover_image_url,
		       (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id),
		       (SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.id),
		       EXISTS (SELECT 1 FROM subscriptions s
		               WHERE s.channel_id = u.id AND s.subscriber_id::text = $2)
		FROM users u
		WHERE u.user_name = $1
	`, userName, viewerID).Scan(&p.ID, &p.UserName, &p.FullName, &p.AvatarURL, &p.CoverImageURL,
		&p.SubscribersCount, &p.SubscribedToCount, &p.IsSubscribed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// AddWatchHistory is an idempotent set add: repeat views refresh the
// timestamp but never duplicate the entry.
func (r *UserRepository) AddWatchHistory(ctx context.Context, userID, videoID string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watch_history (user_id, video_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()
	`, userID, videoID)
	return err
}

func (r *UserRepository) WatchHistory(ctx context.Context, userID string, page, limit int) (*entity.VideoPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM watch_history WHERE user_id = $1
	`, userID).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT v.id, v.video_url, v.thumbnail_url, v.title, v.description, v.duration,
		       v.views, v.is_published, v.created_at, v.updated_at,
		       o.id, o.user_name, o.full_name, o.avatar_url
		FROM watch_history h
		JOIN videos v ON v.id = h.video_id
		JOIN users o ON o.id = v.owner_id
		WHERE h.user_id = $1
		ORDER BY h.watched_at DESC
		OFFSET $2 LIMIT $3
	`, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]entity.Video, 0, limit)
	for rows.Next() {
		var v entity.Video
		if err := rows.Scan(&v.ID, &v.VideoURL, &v.ThumbnailURL, &v.Title, &v.Description,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt,
			&v.Owner.ID, &v.Owner.UserName, &v.Owner.FullName, &v.Owner.AvatarURL); err != nil {
			return nil, err
		}
		v.OwnerID = v.Owner.ID
		docs = append(docs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildPage(docs, total, page, limit), nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
