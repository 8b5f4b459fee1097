package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/container"
	handlers "github.com/streamvault/streamvault/internal/interface/http"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/helpers"
)

// VideoModule wires the video catalog. Reads are public with optional
// identity so like state personalizes; mutations require auth.
type VideoModule struct {
	Handler *handlers.VideoHandler
	JWT     *helpers.JWTManager
}

func NewVideoModule(h *handlers.VideoHandler, jwt *helpers.JWTManager) *VideoModule {
	return &VideoModule{Handler: h, JWT: jwt}
}

func (m *VideoModule) Register(rg *gin.RouterGroup) {
	videos := rg.Group("/videos")

	optional := middleware.OptionalAuth(m.JWT)
	videos.GET("", optional, m.Handler.List)
	videos.GET("/search", optional, m.Handler.Search)
	videos.GET("/:videoId", optional, m.Handler.Get)

	auth := videos.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("", m.Handler.Publish)
		auth.PATCH("/:videoId", m.Handler.Update)
		auth.DELETE("/:videoId", m.Handler.Delete)
		auth.PATCH("/toggle/publish/:videoId", m.Handler.TogglePublish)
	}
}
