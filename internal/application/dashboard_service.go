package application

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/streamvault/streamvault/internal/domain/entity"
	repo "github.com/streamvault/streamvault/internal/domain/repository"
	"github.com/streamvault/streamvault/pkg/helpers"
)

const statsCacheTTL = 30 * time.Second

// DashboardService serves channel owners their own aggregates. Stats are
// cached briefly in Redis since the query fans out over four tables.
type DashboardService struct {
	Stats  repo.StatsRepository
	Videos *VideoService
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewDashboardService(stats repo.StatsRepository, videos *VideoService, rdb *redis.Client, logger *logrus.Logger) *DashboardService {
	return &DashboardService{Stats: stats, Videos: videos, Redis: rdb, Logger: logger}
}

func (s *DashboardService) ChannelStats(ctx context.Context, ownerID string) (*entity.ChannelStats, error) {
	key := "dashboard:stats:" + ownerID
	if s.Redis != nil {
		var cached entity.ChannelStats
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	stats, err := s.Stats.ChannelStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, stats, statsCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("stats cache write failed")
		}
	}
	return stats, nil
}

func (s *DashboardService) ChannelVideos(ctx context.Context, ownerID string, page, limit int) (*entity.VideoPage, error) {
	return s.Videos.ChannelVideos(ctx, ownerID, page, limit)
}
