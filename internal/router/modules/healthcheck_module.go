package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/streamvault/streamvault/internal/interface/http"
)

// HealthcheckModule wires the public liveness endpoint.
type HealthcheckModule struct {
	Handler *handlers.HealthcheckHandler
}

func NewHealthcheckModule(h *handlers.HealthcheckHandler) *HealthcheckModule {
	return &HealthcheckModule{Handler: h}
}

func (m *HealthcheckModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthcheck", m.Handler.Check)
}
