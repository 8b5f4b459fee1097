package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type SubscriptionRepository struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{pool: pool}
}

func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriberID, channelID string) (bool, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var deleted string
	err = tx.QueryRow(ctx, `
		DELETE FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2
		RETURNING subscriber_id::text
	`, subscriberID, channelID).Scan(&deleted)
	switch {
	case err == nil:
		if err := tx.Commit(ctx); err != nil {
			return false, err
		}
		return false, nil
	case errors.Is(err, pgx.ErrNoRows):
		// not subscribed yet
	default:
		return false, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, subscriberID, channelID); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *SubscriptionRepository) Subscribers(ctx context.Context, channelID string) ([]entity.OwnerSummary, error) {
	return r.listUsers(ctx, `
		SELECT u.id, u.user_name, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
		ORDER BY s.created_at DESC
	`, channelID)
}

func (r *SubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID string) ([]entity.OwnerSummary, error) {
	return r.listUsers(ctx, `
		SELECT u.id, u.user_name, u.full_name, u.avatar_url
		FROM subscriptions s
		JOIN users u ON u.id = s.channel_id
		WHERE s.subscriber_id = $1
		ORDER BY s.created_at DESC
	`, subscriberID)
}

func (r *SubscriptionRepository) listUsers(ctx context.Context, query, arg string) ([]entity.OwnerSummary, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.OwnerSummary{}
	for rows.Next() {
		var u entity.OwnerSummary
		if err := rows.Scan(&u.ID, &u.UserName, &u.FullName, &u.AvatarURL); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *SubscriptionRepository) SubscriberEmails(ctx context.Context, channelID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.email
		FROM subscriptions s
		JOIN users u ON u.id = s.subscriber_id
		WHERE s.channel_id = $1
	`, channelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		out = append(out, email)
	}
	return out, rows.Err()
}

var _ repository.SubscriptionRepository = (*SubscriptionRepository)(nil)
