package httpapi

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig configures the HTTP router.
type RouterConfig struct {
	Handlers     *Handlers
	AllowOrigins []string
	Mode         string
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode == "prod" || cfg.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	h := cfg.Handlers

	router.GET("/healthcheck", Healthcheck)

	api := router.Group("/api")
	api.GET("/stats", h.SiteStats)

	authed := api.Group("/")
	authed.Use(RequireUser())
	{
		authed.POST("/paths/generate", h.GeneratePath)
		authed.POST("/quickdive", h.QuickDive)
		authed.POST("/paths", h.SavePath)
		authed.GET("/paths", h.ListPaths)
		authed.GET("/paths/:id", h.GetPath)
		authed.POST("/paths/:id/toggle", h.ToggleItem)
		authed.POST("/paths/:id/restart", h.RestartPath)
		authed.DELETE("/paths/:id", h.ArchivePath)
		authed.GET("/achievements", h.ListAchievements)
	}

	return router
}
