package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/container"
	handlers "github.com/streamvault/streamvault/internal/interface/http"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/helpers"
)

// EngagementModule wires comments, likes, posts, and subscriptions. Every
// route requires auth; this mirrors the client, which only surfaces these
// features to signed-in users.
type EngagementModule struct {
	Comments      *handlers.CommentHandler
	Likes         *handlers.LikeHandler
	Posts         *handlers.PostHandler
	Subscriptions *handlers.SubscriptionHandler
	JWT           *helpers.JWTManager
}

func NewEngagementModule(comments *handlers.CommentHandler, likes *handlers.LikeHandler, posts *handlers.PostHandler, subs *handlers.SubscriptionHandler, jwt *helpers.JWTManager) *EngagementModule {
	return &EngagementModule{Comments: comments, Likes: likes, Posts: posts, Subscriptions: subs, JWT: jwt}
}

func (m *EngagementModule) Register(rg *gin.RouterGroup) {
	auth := middleware.RequireAuth(m.JWT)
	limiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil)

	comments := rg.Group("/comments", auth, limiter)
	{
		comments.GET("/:videoId", m.Comments.ListByVideo)
		comments.POST("/:videoId", m.Comments.Add)
		comments.PATCH("/channel/:commentId", m.Comments.Update)
		comments.DELETE("/channel/:commentId", m.Comments.Delete)
	}

	likes := rg.Group("/likes", auth, limiter)
	{
		likes.POST("/toggle/v/:videoId", m.Likes.ToggleVideo)
		likes.POST("/toggle/c/:commentId", m.Likes.ToggleComment)
		likes.POST("/toggle/p/:postId", m.Likes.TogglePost)
		likes.GET("/videos", m.Likes.LikedVideos)
	}

	posts := rg.Group("/posts", auth, limiter)
	{
		posts.POST("", m.Posts.Create)
		posts.GET("/user/:userId", m.Posts.ListByUser)
		posts.PATCH("/:postId", m.Posts.Update)
		posts.DELETE("/:postId", m.Posts.Delete)
	}

	subs := rg.Group("/subscriptions", auth, limiter)
	{
		subs.POST("/c/:channelId", m.Subscriptions.Toggle)
		subs.GET("/c/:channelId", m.Subscriptions.Subscribers)
		subs.GET("/u/:subscriberId", m.Subscriptions.SubscribedChannels)
	}
}
