package handlers

import (
	"net/http"

	"codebliss/internal/middleware"
	"codebliss/internal/services"

	"github.com/gin-gonic/gin"
)

func (h *Handler) SetupRouter(rateLimiter *services.IPRateLimiter, metrics *middleware.Metrics) *gin.Engine {
	r := gin.Default()

	// Middleware
	if metrics != nil {
		r.Use(metrics.Middleware())
	}
	r.Use(middleware.CORS(h.cfg.CORSOrigin))
	r.Use(middleware.BodyLimit(h.cfg.JSONPayloadLimit))
	if rateLimiter != nil {
		r.Use(middleware.RateLimit(rateLimiter))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	if metrics != nil {
		r.GET("/metrics", metrics.Handler())
	}

	users := r.Group("/api/users")
	{
		users.POST("/signup", h.Signup)
		users.POST("/signin", h.Signin)
		users.POST("/signout", h.AuthRequired(), h.Signout)
		users.GET("/profile", h.AuthRequired(), h.Profile)
	}

	projects := r.Group("/api/projects")
	projects.Use(h.AuthRequired())
	{
		projects.POST("/create", h.CreateProject)
		projects.GET("/my", h.ListMyProjects)
		projects.GET("/my/:projectId", h.FetchProject)
		projects.PATCH("/update/name", h.UpdateProjectName)
		projects.PATCH("/update/code", h.UpdateProjectCode)
		projects.DELETE("/delete/:projectId", h.DeleteProject)
		projects.POST("/fork", h.ForkProject)
		projects.GET("/preview/:projectId", h.PreviewProject)
		projects.GET("/download/:projectId", h.DownloadProject)
		projects.GET("/qr/:projectId", h.ProjectQRCode)
	}

	r.NoRoute(func(c *gin.Context) {
		h.respondError(c, errRouteNotFound)
	})

	return r
}
