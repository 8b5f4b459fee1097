package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/streamvault/streamvault/internal/application"
	"github.com/streamvault/streamvault/internal/interface/middleware"
	"github.com/streamvault/streamvault/pkg/response"
)

type SubscriptionHandler struct {
	Svc *application.SubscriptionService
}

func NewSubscriptionHandler(svc *application.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{Svc: svc}
}

func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	subscribed, err := h.Svc.Toggle(c.Request.Context(), id.UserID, c.Param("channelId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	msg := "unsubscribed successfully"
	if subscribed {
		msg = "subscribed successfully"
	}
	response.Success(c, http.StatusOK, gin.H{"subscribed": subscribed}, msg, nil)
}

func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	subs, err := h.Svc.Subscribers(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, subs, "subscribers fetched successfully", nil)
}

func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	channels, err := h.Svc.SubscribedChannels(c.Request.Context(), c.Param("subscriberId"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, channels, "subscribed channels fetched successfully", nil)
}
