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

type PostHandler struct {
	Svc *application.PostService
}

func NewPostHandler(svc *application.PostService) *PostHandler {
	return &PostHandler{Svc: svc}
}

type postRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	p, err := h.Svc.Create(c.Request.Context(), id.UserID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, p, "post created successfully", nil)
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	posts, err := h.Svc.ListByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, posts, "posts fetched successfully", nil)
}

func (h *PostHandler) Update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	p, err := h.Svc.Update(c.Request.Context(), c.Param("postId"), id.UserID, req.Content)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, p, "post updated successfully", nil)
}

func (h *PostHandler) Delete(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("postId"), id.UserID); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "post deleted successfully", nil)
}
