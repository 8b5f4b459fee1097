package modules

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	handlers "github.com/streamvault/streamvault/internal/interface/http"
	"github.com/streamvault/streamvault/pkg/helpers"
)

func registeredRoutes(t *testing.T) map[string]bool {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	jwt := helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
	m := NewEngagementModule(&handlers.CommentHandler{}, &handlers.LikeHandler{}, &handlers.PostHandler{}, &handlers.SubscriptionHandler{}, jwt)
	m.Register(r.Group("/api/v1"))

	out := map[string]bool{}
	for _, ri := range r.Routes() {
		out[ri.Method+" "+ri.Path] = true
	}
	return out
}

func TestCommentMutationPaths(t *testing.T) {
	routes := registeredRoutes(t)

	assert.True(t, routes[http.MethodPatch+" /api/v1/comments/channel/:commentId"])
	assert.True(t, routes[http.MethodDelete+" /api/v1/comments/channel/:commentId"])
	assert.True(t, routes[http.MethodGet+" /api/v1/comments/:videoId"])
	assert.True(t, routes[http.MethodPost+" /api/v1/comments/:videoId"])
}

func TestLikeTogglePaths(t *testing.T) {
	routes := registeredRoutes(t)

	assert.True(t, routes[http.MethodPost+" /api/v1/likes/toggle/v/:videoId"])
	assert.True(t, routes[http.MethodPost+" /api/v1/likes/toggle/c/:commentId"])
	assert.True(t, routes[http.MethodPost+" /api/v1/likes/toggle/p/:postId"])
	assert.True(t, routes[http.MethodGet+" /api/v1/likes/videos"])
}
