package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zahid-akhtar7979/wildlife-api/config"
	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/media"
	"github.com/zahid-akhtar7979/wildlife-api/middleware"
	"github.com/zahid-akhtar7979/wildlife-api/services"
)

// uploadBodyLimit leaves room for the multipart framing around the largest
// accepted video.
const uploadBodyLimit = media.MaxVideoBytes + 1<<20

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewRouter creates and configures the Gin router
func NewRouter(svc *services.Services, h *helper.HTTPHelper, cfg *config.Config, health HealthChecker, log zerolog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging(log))
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		h.SendNotFoundError(c, "API endpoint not found")
	})

	authHandler := NewAuthHandler(svc.Auth, h)
	userHandler := NewUserHandler(svc.Users, h)
	articleHandler := NewArticleHandler(svc.Articles, h)
	uploadHandler := NewUploadHandler(svc.Media, h)

	authenticated := middleware.AuthMiddleware(svc.Auth, h)
	requireAdmin := middleware.RequireAdmin(h)
	requireContributor := middleware.RequireContributor(h)
	jsonLimit := middleware.BodyLimit(cfg.Server.MaxBodyBytes)

	router.GET("/health", healthCheck(health))

	api := router.Group("/api")
	{
		auth := api.Group("/auth", jsonLimit)
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authenticated, authHandler.GetProfile)
		}

		articles := api.Group("/articles", jsonLimit)
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/featured", articleHandler.GetFeatured)
			articles.GET("/tags", articleHandler.GetTags)
			articles.GET("/categories", articleHandler.GetCategories)
			articles.GET("/:id", articleHandler.GetArticle)
			articles.GET("/author/:authorId", authenticated, articleHandler.GetAuthorArticles)

			write := articles.Group("", authenticated, requireContributor)
			write.POST("", articleHandler.CreateArticle)
			write.PUT("/:id", articleHandler.UpdateArticle)
			write.PATCH("/:id/publish", articleHandler.PublishArticle)
			write.DELETE("/:id", articleHandler.DeleteArticle)
		}

		users := api.Group("/users", jsonLimit, authenticated, requireAdmin)
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/stats", userHandler.GetStats)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.PATCH("/:id/approve", userHandler.ApproveUser)
			users.PATCH("/:id/reset-password", userHandler.ResetPassword)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		upload := api.Group("/upload", middleware.BodyLimit(uploadBodyLimit), authenticated, requireContributor)
		{
			upload.POST("/image", uploadHandler.UploadImage)
			upload.POST("/video", uploadHandler.UploadVideo)
			upload.POST("/multiple-images", uploadHandler.UploadImages)
			upload.DELETE("/delete/*publicId", uploadHandler.DeleteFile)
			upload.POST("/transform-image/*publicId", uploadHandler.TransformImage)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(health HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, code := "OK", http.StatusOK
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := health.HealthCheck(ctx); err != nil {
				status, code = "DEGRADED", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "wildlife-api",
		})
	}
}
