package webserver

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/handlers"
)

func New(deps handlers.Deps) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery(), cors.Default())
	attachRoutes(g, deps)
	return g
}
