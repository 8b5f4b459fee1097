package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/response"
)

type DashboardHandler struct {
	Svc *application.DashboardService
}

func NewDashboardHandler(svc *application.DashboardService) *DashboardHandler {
	return &DashboardHandler{Svc: svc}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	stats, err := h.Svc.ChannelStats(c.Request.Context(), id.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, stats, "channel stats fetched successfully", nil)
}

// Videos lists the requester's own videos, drafts included.
func (h *DashboardHandler) Videos(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	page, limit := pagination(c)
	videos, err := h.Svc.ChannelVideos(c.Request.Context(), id.UserID, page, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, videos, "channel videos fetched successfully", nil)
}
