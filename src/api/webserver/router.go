package webserver

import (
	"github.com/gin-gonic/gin"

	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/handlers"
	"github.com/Dan-MapMAchina/ai-dev-infrastructure/src/api/middleware"
)

func attachRoutes(g *gin.Engine, deps handlers.Deps) {
	routeH := handlers.Route{Deps: deps}
	agentsH := handlers.AgentsHandler{Deps: deps}
	toolsH := handlers.ToolsHandler{Deps: deps}
	cacheH := handlers.CacheHandler{Deps: deps}

	g.GET("/health", cacheH.Health)

	v1 := g.Group("/v1")
	{
		v1.POST("/route-query", routeH.RouteQuery)
		v1.POST("/execute-task", routeH.ExecuteTask)

		v1.GET("/agents", agentsH.List)
		v1.GET("/agents/:id", agentsH.Get)

		v1.POST("/recommend-tools", toolsH.Recommend)
		v1.GET("/projects/:id/tools", toolsH.ProjectTools)

		v1.GET("/cache/stats", cacheH.Stats)

		secured := v1.Group("", middleware.JWT([]byte(deps.Cfg.JWTSecret)))
		secured.POST("/agents", agentsH.Create)
		secured.POST("/projects/:id/tools", toolsH.AddProjectTool)
	}
}
