package router

import (
	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/container"
	pginfra "github.com/streamvault/streamvault/internal/infrastructure/postgres"
	handlers "github.com/streamvault/streamvault/internal/interface/http"
	"github.com/streamvault/streamvault/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it. Called once during startup, after the container is filled.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	pool := container.GetPGPool()
	logger := container.GetLogger()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	videoRepo := pginfra.NewVideoRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)
	postRepo := pginfra.NewPostRepository(pool)
	likeRepo := pginfra.NewLikeRepository(pool)
	playlistRepo := pginfra.NewPlaylistRepository(pool)
	subRepo := pginfra.NewSubscriptionRepository(pool)
	statsRepo := pginfra.NewStatsRepository(pool)

	uploader := application.NewGCSUploader(container.GetGCS(), cfg.GCSBucket)

	userSvc := application.NewUserService(userRepo, jwt, uploader, container.GetRabbitPub(), logger, cfg.MailSendEnabled)
	videoSvc := application.NewVideoService(videoRepo, userRepo, uploader, container.GetRabbitPub(), logger, container.GetES(), cfg.ESVideosIndex)
	commentSvc := application.NewCommentService(commentRepo, videoRepo)
	postSvc := application.NewPostService(postRepo)
	likeSvc := application.NewLikeService(likeRepo)
	playlistSvc := application.NewPlaylistService(playlistRepo, videoRepo)
	subSvc := application.NewSubscriptionService(subRepo, userRepo)
	dashSvc := application.NewDashboardService(statsRepo, videoSvc, container.GetRedis(), logger)

	userHandler := handlers.NewUserHandler(userSvc, logger, cfg.CookieDomain, cfg.CookieSecure)
	videoHandler := handlers.NewVideoHandler(videoSvc, logger)
	commentHandler := handlers.NewCommentHandler(commentSvc)
	likeHandler := handlers.NewLikeHandler(likeSvc)
	postHandler := handlers.NewPostHandler(postSvc)
	playlistHandler := handlers.NewPlaylistHandler(playlistSvc)
	subHandler := handlers.NewSubscriptionHandler(subSvc)
	dashHandler := handlers.NewDashboardHandler(dashSvc)
	healthHandler := handlers.NewHealthcheckHandler(pool, container.GetRedis())

	r.Add(modules.NewHealthcheckModule(healthHandler))
	r.Add(modules.NewUserModule(userHandler, jwt))
	r.Add(modules.NewVideoModule(videoHandler, jwt))
	r.Add(modules.NewEngagementModule(commentHandler, likeHandler, postHandler, subHandler, jwt))
	r.Add(modules.NewPlaylistModule(playlistHandler, jwt))
	r.Add(modules.NewDashboardModule(dashHandler, jwt))
}
