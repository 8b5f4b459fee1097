package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/streamvault/streamvault/pkg/response"
)

type HealthcheckHandler struct {
	Pool  *pgxpool.Pool
	Redis *redis.Client
}

func NewHealthcheckHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthcheckHandler {
	return &HealthcheckHandler{Pool: pool, Redis: rdb}
}

// Check reports liveness plus the state of the backing stores.
func (h *HealthcheckHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	checks := gin.H{"status": "ok"}

	if h.Pool != nil {
		if err := h.Pool.Ping(ctx); err != nil {
			checks["postgres"] = "down"
		} else {
			checks["postgres"] = "up"
		}
	}
	if h.Redis != nil {
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	}
	response.Success(c, http.StatusOK, checks, "service is healthy", nil)
}
