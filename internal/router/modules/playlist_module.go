package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/container"
	handlers "github.com/streamvault/streamvault/internal/interface/http"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/helpers"
)

// PlaylistModule wires playlist CRUD and membership routes.
type PlaylistModule struct {
	Handler *handlers.PlaylistHandler
	JWT     *helpers.JWTManager
}

func NewPlaylistModule(h *handlers.PlaylistHandler, jwt *helpers.JWTManager) *PlaylistModule {
	return &PlaylistModule{Handler: h, JWT: jwt}
}

func (m *PlaylistModule) Register(rg *gin.RouterGroup) {
	playlists := rg.Group("/playlist")
	playlists.Use(middleware.RequireAuth(m.JWT))
	playlists.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		playlists.POST("", m.Handler.Create)
		playlists.GET("/user/:userId", m.Handler.ListByUser)
		playlists.GET("/:playlistId", m.Handler.Get)
		playlists.PATCH("/:playlistId", m.Handler.Update)
		playlists.DELETE("/:playlistId", m.Handler.Delete)
		playlists.PATCH("/add/:videoId/:playlistId", m.Handler.AddVideo)
		playlists.PATCH("/remove/:videoId/:playlistId", m.Handler.RemoveVideo)
	}
}
