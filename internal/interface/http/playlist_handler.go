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

type PlaylistHandler struct {
	Svc *application.PlaylistService
}

func NewPlaylistHandler(svc *application.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{Svc: svc}
}

type createPlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type updatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *PlaylistHandler) Create(c *gin.Context) {
	var req createPlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	p, err := h.Svc.Create(c.Request.Context(), id.UserID, req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, p, "playlist created successfully", nil)
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("playlistId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, p, "playlist fetched successfully", nil)
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	playlists, err := h.Svc.ListByOwner(c.Request.Context(), c.Param("userId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, playlists, "playlists fetched successfully", nil)
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	var req updatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest("invalid payload", validation.ToDetails(err)))
		return
	}
	id, _ := middleware.IdentityFrom(c)
	p, err := h.Svc.Update(c.Request.Context(), c.Param("playlistId"), id.UserID, req.Name, req.Description)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, p, "playlist updated successfully", nil)
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("playlistId"), id.UserID); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "playlist deleted successfully", nil)
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	p, err := h.Svc.AddVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), id.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, p, "video added to playlist", nil)
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	p, err := h.Svc.RemoveVideo(c.Request.Context(), c.Param("playlistId"), c.Param("videoId"), id.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, p, "video removed from playlist", nil)
}
