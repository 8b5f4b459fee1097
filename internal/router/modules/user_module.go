package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/container"
	handlers "github.com/streamvault/streamvault/internal/interface/http"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/helpers"
)

// UserModule wires account and session routes.
// Public: register, login, refresh-tokens, channel profile.
// Protected: logout, change-password, current-user, update-account,
// avatar, cover-image, watch-history.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	users := rg.Group("/users")

	users.POST("/register", registerLimiter, m.Handler.Register)
	users.POST("/login", loginLimiter, m.Handler.Login)
	users.POST("/refresh-tokens", refreshLimiter, m.Handler.RefreshTokens)
	users.GET("/channel/:userName", middleware.OptionalAuth(m.JWT), m.Handler.Channel)

	auth := users.Group("/")
	auth.Use(middleware.RequireAuth(m.JWT))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.POST("/change-password", m.Handler.ChangePassword)
		auth.GET("/current-user", m.Handler.CurrentUser)
		auth.PATCH("/update-account", m.Handler.UpdateAccount)
		auth.PATCH("/avatar", m.Handler.UpdateAvatar)
		auth.PATCH("/cover-image", m.Handler.UpdateCoverImage)
		auth.GET("/watch-history", m.Handler.WatchHistory)
	}
}
