package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seojin-dev/newsradar/app/cfg"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	api := r.Group("/api")
	{
		api.GET("/articles", handler.GetArticles)
		api.GET("/sources", handler.GetSources)
		api.GET("/keywords/stats", handler.GetKeywordStats)
		api.GET("/keywords/network", handler.GetKeywordNetwork)
		api.GET("/categories/stats", handler.GetCategoryStats)
		api.POST("/favorites/add", handler.AddFavorite)
		api.DELETE("/favorites/:id", handler.RemoveFavorite)
		api.POST("/collect-news-now", handler.CollectNow)
	}

	// Health and status endpoints
	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "NewsRadar",
			"version":     cfg.GetVersion(),
			"description": "News feed collector with rule-based classification and keyword analysis",
			"endpoints": map[string]string{
				"articles":        "/api/articles",
				"sources":         "/api/sources",
				"keyword_stats":   "/api/keywords/stats",
				"keyword_network": "/api/keywords/network",
				"category_stats":  "/api/categories/stats",
				"favorites":       "/api/favorites/add (POST), /api/favorites/<id> (DELETE)",
				"collect":         "/api/collect-news-now (POST)",
				"health":          "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
