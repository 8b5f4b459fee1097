package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/response"
	"github.com/streamvault/streamvault/pkg/validation"
)

type CommentHandler struct {
	Svc *application.CommentService
}

func NewCommentHandler(svc *application.CommentService) *CommentHandler {
	return &CommentHandler{Svc: svc}
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) ListByVideo(c *gin.Context) {
	page, limit := pagination(c)
	comments, total, err := h.Svc.ListByVideo(c.Request.Context(), c.Param("videoId"), page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, comments, "comments fetched successfully", gin.H{
		"totalDocs": total,
		"page":      page,
		"limit":     limit,
	})
}

func (h *CommentHandler) Add(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	comment, err := h.Svc.Add(c.Request.Context(), c.Param("videoId"), id.UserID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment added successfully", nil)
}

func (h *CommentHandler) Update(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	comment, err := h.Svc.Update(c.Request.Context(), c.Param("commentId"), id.UserID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, comment, "comment updated successfully", nil)
}

func (h *CommentHandler) Delete(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("commentId"), id.UserID); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "comment deleted successfully", nil)
}
