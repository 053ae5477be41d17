package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	Deps
}

func (h CacheHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Stats())
}

func (h CacheHandler) Health(c *gin.Context) {
	mode := "full"
	if h.LiteMode {
		mode = "lite"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "ai-dev-infrastructure",
		"mode":    mode,
	})
}
