package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/response"
)

type LikeHandler struct {
	Svc *application.LikeService
}

func NewLikeHandler(svc *application.LikeService) *LikeHandler {
	return &LikeHandler{Svc: svc}
}

func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, entity.LikeVideo, c.Param("videoId"))
}

func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, entity.LikeComment, c.Param("commentId"))
}

func (h *LikeHandler) TogglePost(c *gin.Context) {
	h.toggle(c, entity.LikePost, c.Param("postId"))
}

func (h *LikeHandler) toggle(c *gin.Context, target entity.LikeTarget, targetID string) {
	id, _ := middleware.IdentityFrom(c)
	liked, err := h.Svc.Toggle(c.Request.Context(), target, targetID, id.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	msg := "unliked successfully"
	if liked {
		msg = "liked successfully"
	}
	response.Success(c, http.StatusOK, gin.H{"isLiked": liked}, msg, nil)
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	videos, err := h.Svc.LikedVideos(c.Request.Context(), id.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, videos, "liked videos fetched successfully", nil)
}
