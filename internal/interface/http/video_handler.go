package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/domain/entity"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/apperror"
	"github.com/streamvault/streamvault/pkg/response"
)

type VideoHandler struct {
	Svc    *application.VideoService
	Logger *logrus.Logger
}

func NewVideoHandler(svc *application.VideoService, logger *logrus.Logger) *VideoHandler {
	return &VideoHandler{Svc: svc, Logger: logger}
}

// List serves the published video feed with search, sort, and pagination.
func (h *VideoHandler) List(c *gin.Context) {
	page, limit := pagination(c)
	f := entity.VideoFilter{
		Query:   c.Query("query"),
		OwnerID: c.Query("userId"),
		SortBy:  c.Query("sortBy"),
		SortAsc: c.Query("sortType") == "asc",
		Page:    page,
		Limit:   limit,
	}
	videos, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, videos, "videos fetched successfully", nil)
}

func (h *VideoHandler) Publish(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)

	duration, _ := strconv.ParseFloat(c.PostForm("duration"), 64)
	in := application.PublishVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Duration:    duration,
	}

	videoFH, err := c.FormFile("videoFile")
	if err != nil {
		_ = c.Error(apperror.BadRequest("video file is required"))
		return
	}
	videoFile, closeVideo, err := fileInput(videoFH)
	if err != nil {
		_ = c.Error(apperror.BadRequest("video file is unreadable"))
		return
	}
	defer closeVideo()
	in.VideoFile = videoFile

	thumbFH, err := c.FormFile("thumbnail")
	if err != nil {
		_ = c.Error(apperror.BadRequest("thumbnail is required"))
		return
	}
	thumb, closeThumb, err := fileInput(thumbFH)
	if err != nil {
		_ = c.Error(apperror.BadRequest("thumbnail is unreadable"))
		return
	}
	defer closeThumb()
	in.Thumbnail = thumb

	v, err := h.Svc.Publish(c.Request.Context(), id.UserID, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, v, "video published successfully", nil)
}

func (h *VideoHandler) Get(c *gin.Context) {
	viewerID := ""
	if id, ok := middleware.IdentityFrom(c); ok {
		viewerID = id.UserID
	}
	v, err := h.Svc.Get(c.Request.Context(), c.Param("videoId"), viewerID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, v, "video fetched successfully", nil)
}

func (h *VideoHandler) Update(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	in := application.UpdateVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}
	if fh, err := c.FormFile("thumbnail"); err == nil {
		thumb, closeThumb, err := fileInput(fh)
		if err != nil {
			_ = c.Error(apperror.BadRequest("thumbnail is unreadable"))
			return
		}
		defer closeThumb()
		in.Thumbnail = thumb
	}

	v, err := h.Svc.Update(c.Request.Context(), c.Param("videoId"), id.UserID, in)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, v, "video updated successfully", nil)
}

func (h *VideoHandler) Delete(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	if err := h.Svc.Delete(c.Request.Context(), c.Param("videoId"), id.UserID); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "video deleted successfully", nil)
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	v, err := h.Svc.TogglePublish(c.Request.Context(), c.Param("videoId"), id.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, v, "publish status toggled successfully", nil)
}

// Search serves full-text results from the search index.
func (h *VideoHandler) Search(c *gin.Context) {
	q := c.Query("query")
	if q == "" {
		_ = c.Error(apperror.BadRequest("query is required"))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results fetched successfully", nil)
}
