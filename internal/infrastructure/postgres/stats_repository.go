package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/domain/repository"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

func (r *StatsRepository) ChannelStats(ctx context.Context, ownerID string) (*entity.ChannelStats, error) {
	s := &entity.ChannelStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT count(*) FROM videos v WHERE v.owner_id = $1),
		       (SELECT COALESCE(sum(v.views), 0) FROM videos v WHERE v.owner_id = $1),
		       (SELECT count(*) FROM subscriptions s WHERE s.channel_id = $1),
		       (SELECT count(*) FROM likes l JOIN videos v ON v.id = l.video_id WHERE v.owner_id = $1)
	`, ownerID).Scan(&s.TotalVideos, &s.TotalViews, &s.TotalSubscribers, &s.TotalLikes)
	if err != nil {
		return nil, err
	}
	return s, nil
}

var _ repository.StatsRepository = (*StatsRepository)(nil)
