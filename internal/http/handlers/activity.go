package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/janhavi-28/SEO-Agent/internal/http/response"
	"github.com/janhavi-28/SEO-Agent/pkg/registry"
)

type ActivityHandler struct {
	registry *registry.ActivityRegistry
}

func NewActivityHandler(reg *registry.ActivityRegistry) *ActivityHandler {
	return &ActivityHandler{registry: reg}
}

func (h *ActivityHandler) ListActivities(c *gin.Context) {
	response.RespondOK(c, h.registry)
}
